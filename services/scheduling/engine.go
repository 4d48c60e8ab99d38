package scheduling

import (
	"errors"
	"fmt"
	"time"

	registrationRepo "opdcare/database/repository/registration"
	staffRepo "opdcare/database/repository/staff"
	"opdcare/utils"

	"go.uber.org/zap"
)

// Engine decides whether a registration request is permissible and, when it
// is, assigns the next queue token for the doctor's day.
type Engine interface {
	Evaluate(req Request) (Decision, error)
}

// DefaultEngine evaluates requests against the doctor's configuration and
// the registrations already recorded for the target day.
//
// Evaluation is not serialized: two concurrent requests for the same doctor
// and day can both pass the capacity check or receive the same token. Front
// desk traffic makes this rare in practice and staff can correct it; callers
// needing strict uniqueness must serialize externally.
type DefaultEngine struct {
	Staff         staffRepo.StaffRepository
	Registrations registrationRepo.RegistrationRepository

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// NewDefaultEngine constructs an Engine over the given repositories.
func NewDefaultEngine(staff staffRepo.StaffRepository, regs registrationRepo.RegistrationRepository) *DefaultEngine {
	return &DefaultEngine{Staff: staff, Registrations: regs}
}

func (e *DefaultEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Evaluate runs the full gate sequence: doctor lookup, manual availability,
// visit-time resolution, weekday gate, visiting-hours gate, daily capacity,
// then token assignment. A rejection is a normal Decision, not an error;
// the error return is reserved for malformed input and store failures.
func (e *DefaultEngine) Evaluate(req Request) (Decision, error) {
	logger := utils.GetLogger().With(zap.String("doctorID", req.DoctorID))

	doctor, err := e.Staff.GetDoctorByID(req.DoctorID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrNotFound) {
			return rejected(ReasonDoctorNotFound, "doctor not found"), nil
		}
		return Decision{}, fmt.Errorf("error loading doctor %s: %w", req.DoctorID, err)
	}

	if !doctor.Available() {
		msg := "doctor is currently unavailable"
		if doctor.UnavailableReason != "" {
			msg = fmt.Sprintf("doctor is currently unavailable: %s", doctor.UnavailableReason)
		}
		d := rejected(ReasonDoctorUnavailable, msg)
		d.DoctorName = doctor.FullName
		return d, nil
	}

	visitTime, err := ResolveVisitTime(req.VisitDate, req.VisitTime, e.now())
	if err != nil {
		return Decision{}, err
	}

	if !IsDateAvailable(doctor, visitTime) {
		d := rejected(ReasonDateUnavailable, fmt.Sprintf(
			"Dr. %s does not accept visits on %s", doctor.FullName, visitTime.Weekday()))
		d.DoctorName = doctor.FullName
		return d, nil
	}

	if !IsTimeAvailable(doctor, visitTime, req.VisitTime) {
		d := rejected(ReasonTimeUnavailable, fmt.Sprintf(
			"requested time %s is outside Dr. %s's visiting hours", req.VisitTime, doctor.FullName))
		d.DoctorName = doctor.FullName
		return d, nil
	}

	dayStart, dayEnd := DayWindow(visitTime)
	count, err := e.Registrations.CountForDoctorInWindow(doctor.ID, dayStart, dayEnd)
	if err != nil {
		return Decision{}, fmt.Errorf("error counting registrations for doctor %s: %w", doctor.ID, err)
	}

	// A non-positive limit means the doctor has no daily cap.
	if doctor.DailyPatientLimit > 0 && count >= doctor.DailyPatientLimit {
		logger.Info("registration rejected: daily limit reached",
			zap.Int("currentCount", count),
			zap.Int("limit", doctor.DailyPatientLimit))
		d := rejected(ReasonLimitReached, fmt.Sprintf(
			"Dr. %s has reached the daily patient limit (%d/%d)",
			doctor.FullName, count, doctor.DailyPatientLimit))
		d.DoctorName = doctor.FullName
		d.CurrentCount = count
		d.Limit = doctor.DailyPatientLimit
		return d, nil
	}

	maxToken, err := e.Registrations.MaxTokenInWindow(doctor.ID, dayStart, dayEnd)
	if err != nil {
		return Decision{}, fmt.Errorf("error finding last token for doctor %s: %w", doctor.ID, err)
	}

	decision := Decision{
		Accepted:     true,
		DoctorName:   doctor.FullName,
		CurrentCount: count,
		Limit:        doctor.DailyPatientLimit,
		TokenNumber:  maxToken + 1,
		VisitTime:    visitTime,
	}
	if doctor.DailyPatientLimit > 0 {
		decision.RemainingSlots = doctor.DailyPatientLimit - count - 1
	}
	logger.Debug("registration accepted",
		zap.Int("tokenNumber", decision.TokenNumber),
		zap.Time("visitTime", visitTime))
	return decision, nil
}
