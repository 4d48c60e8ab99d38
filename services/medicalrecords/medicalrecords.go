package medicalrecords

import (
	"fmt"
	"time"

	registrationRepo "opdcare/database/repository/registration"
	"opdcare/models"
)

// Pagination describes one page of a history listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// HistoryPage is one page of prescribed registrations.
type HistoryPage struct {
	Records    []models.Patient `json:"records"`
	Pagination Pagination       `json:"pagination"`
}

// Stats summarizes prescription volume for the records dashboard.
type Stats struct {
	TotalPrescriptions int `json:"totalPrescriptions"`
	TodayPrescriptions int `json:"todayPrescriptions"`
}

// RecordsService exposes the cross-patient prescription history. It is a
// read-only view: prescriptions are written through the prescription
// service.
type RecordsService interface {
	History(search string, page, limit int) (*HistoryPage, error)
	Stats() (*Stats, error)
	// GetRecord returns the registration carrying the prescription, or
	// ErrNotFound when the registration has none.
	GetRecord(patientID string) (*models.Patient, error)
}

// DefaultRecordsService is the production implementation.
type DefaultRecordsService struct {
	Registrations registrationRepo.RegistrationRepository
	Now           func() time.Time
}

func (s *DefaultRecordsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultRecordsService) History(search string, page, limit int) (*HistoryPage, error) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	records, total, err := s.Registrations.ListPrescribed(search, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescription history: %w", err)
	}
	return &HistoryPage{
		Records: records,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: (total + limit - 1) / limit,
		},
	}, nil
}

func (s *DefaultRecordsService) Stats() (*Stats, error) {
	total, err := s.Registrations.CountPrescribed(nil)
	if err != nil {
		return nil, err
	}
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.Registrations.CountPrescribed(&midnight)
	if err != nil {
		return nil, err
	}
	return &Stats{TotalPrescriptions: total, TodayPrescriptions: today}, nil
}

func (s *DefaultRecordsService) GetRecord(patientID string) (*models.Patient, error) {
	patient, err := s.Registrations.GetByID(patientID)
	if err != nil {
		return nil, err
	}
	if patient.Prescription == nil {
		return nil, registrationRepo.ErrNotFound
	}
	return patient, nil
}
