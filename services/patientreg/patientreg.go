package patientreg

import (
	"fmt"
	"time"

	registrationRepo "opdcare/database/repository/registration"
	staffRepo "opdcare/database/repository/staff"
	"opdcare/models"
	"opdcare/services/notification"
	"opdcare/services/scheduling"
	"opdcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRequest carries the front-desk form for a new OPD registration.
// VisitDate/VisitTime are optional; omitting both registers the patient for
// the current moment.
type RegisterRequest struct {
	FullName     string  `json:"fullName" binding:"required"`
	MobileNumber string  `json:"mobileNumber" binding:"required"`
	Address      string  `json:"address"`
	Age          int     `json:"age"`
	Gender       string  `json:"gender"`
	Disease      string  `json:"disease"`
	DoctorID     string  `json:"doctorId" binding:"required"`
	Fees         float64 `json:"fees"`
	FeeStatus    string  `json:"feeStatus"`
	IsRecheck    bool    `json:"isRecheck"`
	VisitDate    string  `json:"visitDate"`
	VisitTime    string  `json:"visitTime"`
}

// RegisterResult is returned on acceptance; on policy rejection the Decision
// alone is returned so the handler can render the reason.
type RegisterResult struct {
	Patient  *models.Patient     `json:"patient"`
	Decision scheduling.Decision `json:"decision"`
}

// PatientService defines business logic for OPD registrations.
type PatientService interface {
	// Register runs the scheduling engine and, if accepted, persists the
	// registration and queues a confirmation SMS. A rejected Decision is
	// returned with a nil error.
	Register(req RegisterRequest) (*models.Patient, scheduling.Decision, error)
	GetByID(id string) (*models.Patient, error)
	// TodayQueue lists a doctor's registrations for the current day in token
	// order.
	TodayQueue(doctorID string) ([]models.Patient, error)
	QueueForDate(doctorID string, date time.Time) ([]models.Patient, error)
	ListAll() ([]models.Patient, error)
	UpdateStatus(id, status string) (*models.Patient, error)
	Cancel(id, reason string) (*models.Patient, error)
	RecordPayment(id string, amount float64) (*models.Patient, error)
}

// DefaultPatientService is the production implementation.
type DefaultPatientService struct {
	Engine        scheduling.Engine
	Registrations registrationRepo.RegistrationRepository
	Staff         staffRepo.StaffRepository
	Notifier      notification.NotificationService
}

func (s *DefaultPatientService) Register(req RegisterRequest) (*models.Patient, scheduling.Decision, error) {
	logger := utils.GetLogger().With(zap.String("doctorID", req.DoctorID))

	decision, err := s.Engine.Evaluate(scheduling.Request{
		DoctorID:  req.DoctorID,
		VisitDate: req.VisitDate,
		VisitTime: req.VisitTime,
	})
	if err != nil {
		return nil, scheduling.Decision{}, err
	}
	if !decision.Accepted {
		return nil, decision, nil
	}

	feeStatus := req.FeeStatus
	if feeStatus == "" {
		feeStatus = models.FeePending
	}
	now := time.Now()
	patient := &models.Patient{
		ID:               uuid.New().String(),
		FullName:         req.FullName,
		MobileNumber:     req.MobileNumber,
		Address:          req.Address,
		Age:              req.Age,
		Gender:           req.Gender,
		Disease:          req.Disease,
		DoctorID:         req.DoctorID,
		DoctorName:       decision.DoctorName,
		Fees:             req.Fees,
		FeeStatus:        feeStatus,
		TokenNumber:      decision.TokenNumber,
		RegistrationDate: decision.VisitTime,
		Status:           models.PatientWaiting,
		IsRecheck:        req.IsRecheck,
		CreatedAt:        now,
	}
	if err := s.Registrations.Create(patient); err != nil {
		return nil, scheduling.Decision{}, fmt.Errorf("failed to save registration: %w", err)
	}

	logger.Info("patient registered",
		zap.String("patientID", patient.ID),
		zap.Int("tokenNumber", patient.TokenNumber),
		zap.Time("visitTime", patient.RegistrationDate))

	// Confirmation is best-effort; the registration stands even if the
	// queue is down.
	if s.Notifier != nil {
		body := fmt.Sprintf(
			"Dear %s, your OPD registration with Dr. %s is confirmed for %s. Your token number is %d.",
			patient.FullName, patient.DoctorName,
			patient.RegistrationDate.Format("02 Jan 2006 03:04 PM"), patient.TokenNumber)
		if err := s.Notifier.Queue(models.MessagePayload{
			Channel: models.ChannelSMS,
			To:      patient.MobileNumber,
			Body:    body,
			Ref:     patient.ID,
			RefKind: "registration",
		}); err != nil {
			logger.Warn("failed to queue registration SMS", zap.Error(err))
		}
	}

	return patient, decision, nil
}

func (s *DefaultPatientService) GetByID(id string) (*models.Patient, error) {
	return s.Registrations.GetByID(id)
}

func (s *DefaultPatientService) TodayQueue(doctorID string) ([]models.Patient, error) {
	return s.QueueForDate(doctorID, time.Now())
}

func (s *DefaultPatientService) QueueForDate(doctorID string, date time.Time) ([]models.Patient, error) {
	if _, err := s.Staff.GetDoctorByID(doctorID); err != nil {
		return nil, err
	}
	start, end := scheduling.DayWindow(date)
	patients, err := s.Registrations.ListForDoctorInWindow(doctorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue for doctor %s: %w", doctorID, err)
	}
	return patients, nil
}

func (s *DefaultPatientService) ListAll() ([]models.Patient, error) {
	return s.Registrations.ListAll()
}

var validStatuses = map[string]bool{
	models.PatientWaiting:    true,
	models.PatientInProgress: true,
	models.PatientCompleted:  true,
	models.PatientCancelled:  true,
}

func (s *DefaultPatientService) UpdateStatus(id, status string) (*models.Patient, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid patient status %q", status)
	}
	patient, err := s.Registrations.GetByID(id)
	if err != nil {
		return nil, err
	}
	patient.Status = status
	if err := s.Registrations.Update(patient); err != nil {
		return nil, fmt.Errorf("failed to update patient %s: %w", id, err)
	}
	return patient, nil
}

func (s *DefaultPatientService) Cancel(id, reason string) (*models.Patient, error) {
	patient, err := s.Registrations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if patient.IsCancelled {
		return nil, fmt.Errorf("registration %s is already cancelled", id)
	}
	now := time.Now()
	patient.Status = models.PatientCancelled
	patient.IsCancelled = true
	patient.CancelledAt = &now
	patient.CancellationReason = reason
	if err := s.Registrations.Update(patient); err != nil {
		return nil, fmt.Errorf("failed to cancel registration %s: %w", id, err)
	}
	utils.GetLogger().Info("registration cancelled",
		zap.String("patientID", id), zap.String("reason", reason))
	return patient, nil
}

func (s *DefaultPatientService) RecordPayment(id string, amount float64) (*models.Patient, error) {
	patient, err := s.Registrations.GetByID(id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	patient.FeeStatus = models.FeePaid
	patient.PaymentDate = &now
	patient.PaymentAmount = amount
	if err := s.Registrations.Update(patient); err != nil {
		return nil, fmt.Errorf("failed to record payment for %s: %w", id, err)
	}
	return patient, nil
}
