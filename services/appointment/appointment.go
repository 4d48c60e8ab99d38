package appointment

import (
	"fmt"
	"time"

	appointmentRepo "opdcare/database/repository/appointment"
	staffRepo "opdcare/database/repository/staff"
	"opdcare/models"
	"opdcare/services/notification"
	"opdcare/services/scheduling"
	"opdcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateRequest is the booking form for a future visit.
type CreateRequest struct {
	PatientName     string `json:"patientName" binding:"required"`
	MobileNumber    string `json:"mobileNumber" binding:"required"`
	Email           string `json:"email"`
	DoctorID        string `json:"doctorId" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

// UpdateRequest carries the editable appointment fields; empty values are
// left unchanged.
type UpdateRequest struct {
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

// AppointmentService defines business logic for pre-booked visits.
type AppointmentService interface {
	Create(req CreateRequest) (*models.Appointment, error)
	GetByID(id string) (*models.Appointment, error)
	List(f appointmentRepo.Filter) ([]models.Appointment, error)
	Update(id string, req UpdateRequest) (*models.Appointment, error)
	Delete(id string) error
	// ResendSMS queues the confirmation message again, regardless of the
	// sms_sent flag.
	ResendSMS(id string) error
	// MarkSMSSent records a successful delivery; called from the worker.
	MarkSMSSent(id string) error
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo     appointmentRepo.AppointmentRepository
	Staff    staffRepo.StaffRepository
	Notifier notification.NotificationService
}

var validStatuses = map[string]bool{
	models.AppointmentScheduled: true,
	models.AppointmentConfirmed: true,
	models.AppointmentCompleted: true,
	models.AppointmentCancelled: true,
}

func (s *DefaultAppointmentService) Create(req CreateRequest) (*models.Appointment, error) {
	doctor, err := s.Staff.GetDoctorByID(req.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.Available() {
		return nil, fmt.Errorf("Dr. %s is currently unavailable", doctor.FullName)
	}

	visitTime, err := scheduling.ResolveVisitTime(req.AppointmentDate, req.AppointmentTime, time.Now())
	if err != nil {
		return nil, err
	}
	if !scheduling.IsDateAvailable(doctor, visitTime) {
		return nil, fmt.Errorf("Dr. %s does not accept visits on %s", doctor.FullName, visitTime.Weekday())
	}
	if !scheduling.IsTimeAvailable(doctor, visitTime, req.AppointmentTime) {
		return nil, fmt.Errorf("requested time %s is outside Dr. %s's visiting hours",
			req.AppointmentTime, doctor.FullName)
	}

	now := time.Now()
	appt := &models.Appointment{
		ID:              uuid.New().String(),
		PatientName:     req.PatientName,
		MobileNumber:    req.MobileNumber,
		Email:           req.Email,
		AppointmentDate: visitTime,
		AppointmentTime: req.AppointmentTime,
		DoctorID:        doctor.ID,
		DoctorName:      doctor.FullName,
		Reason:          req.Reason,
		Notes:           req.Notes,
		Status:          models.AppointmentScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(appt); err != nil {
		return nil, fmt.Errorf("failed to save appointment: %w", err)
	}

	utils.GetLogger().Info("appointment created",
		zap.String("appointmentID", appt.ID),
		zap.String("doctorID", appt.DoctorID),
		zap.Time("appointmentDate", appt.AppointmentDate))

	s.queueConfirmation(appt)
	return appt, nil
}

func (s *DefaultAppointmentService) queueConfirmation(appt *models.Appointment) {
	if s.Notifier == nil {
		return
	}
	body := fmt.Sprintf(
		"Dear %s, your appointment with Dr. %s is booked for %s at %s.",
		appt.PatientName, appt.DoctorName,
		appt.AppointmentDate.Format("02 Jan 2006"), appt.AppointmentTime)
	err := s.Notifier.Queue(models.MessagePayload{
		Channel: models.ChannelSMS,
		To:      appt.MobileNumber,
		Body:    body,
		Ref:     appt.ID,
		RefKind: "appointment",
	})
	if err != nil {
		utils.GetLogger().Warn("failed to queue appointment SMS",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}

func (s *DefaultAppointmentService) GetByID(id string) (*models.Appointment, error) {
	return s.Repo.GetByID(id)
}

func (s *DefaultAppointmentService) List(f appointmentRepo.Filter) ([]models.Appointment, error) {
	return s.Repo.List(f)
}

func (s *DefaultAppointmentService) Update(id string, req UpdateRequest) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.AppointmentDate != "" || req.AppointmentTime != "" {
		dateStr := req.AppointmentDate
		if dateStr == "" {
			dateStr = appt.AppointmentDate.Format("2006-01-02")
		}
		timeStr := req.AppointmentTime
		if timeStr == "" {
			timeStr = appt.AppointmentTime
		}
		doctor, err := s.Staff.GetDoctorByID(appt.DoctorID)
		if err != nil {
			return nil, err
		}
		visitTime, err := scheduling.ResolveVisitTime(dateStr, timeStr, time.Now())
		if err != nil {
			return nil, err
		}
		if !scheduling.IsDateAvailable(doctor, visitTime) {
			return nil, fmt.Errorf("Dr. %s does not accept visits on %s", doctor.FullName, visitTime.Weekday())
		}
		if !scheduling.IsTimeAvailable(doctor, visitTime, timeStr) {
			return nil, fmt.Errorf("requested time %s is outside Dr. %s's visiting hours",
				timeStr, doctor.FullName)
		}
		appt.AppointmentDate = visitTime
		appt.AppointmentTime = timeStr
	}
	if req.Status != "" {
		if !validStatuses[req.Status] {
			return nil, fmt.Errorf("invalid appointment status %q", req.Status)
		}
		appt.Status = req.Status
	}
	if req.Notes != "" {
		appt.Notes = req.Notes
	}

	if err := s.Repo.Update(appt); err != nil {
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	return appt, nil
}

func (s *DefaultAppointmentService) Delete(id string) error {
	return s.Repo.Delete(id)
}

func (s *DefaultAppointmentService) ResendSMS(id string) error {
	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	s.queueConfirmation(appt)
	return nil
}

func (s *DefaultAppointmentService) MarkSMSSent(id string) error {
	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	now := time.Now()
	appt.SMSSent = true
	appt.SMSSentAt = &now
	return s.Repo.Update(appt)
}
