package registrationRepo

import (
	"errors"
	"time"

	"opdcare/models"
)

// ErrNotFound is returned when no registration matches the query.
var ErrNotFound = errors.New("registration not found")

// RegistrationRepository stores patient registrations. The window queries
// feed the capacity gate and token allocator: both take a half-open
// [start, end) range derived from the intended visit date.
type RegistrationRepository interface {
	Create(p *models.Patient) error
	GetByID(id string) (*models.Patient, error)
	Update(p *models.Patient) error
	CountForDoctorInWindow(doctorID string, start, end time.Time) (int, error)
	// MaxTokenInWindow returns the highest token number assigned to the
	// doctor inside the window, or 0 when no registration exists yet.
	MaxTokenInWindow(doctorID string, start, end time.Time) (int, error)
	ListForDoctorInWindow(doctorID string, start, end time.Time) ([]models.Patient, error)
	ListAll() ([]models.Patient, error)
	// ListPrescribed returns registrations that carry a prescription, newest
	// prescription first. Search matches the patient name or mobile number.
	ListPrescribed(search string, page, limit int) ([]models.Patient, int, error)
	// CountPrescribed counts prescribed registrations; a non-nil since limits
	// the count to prescriptions written at or after that instant.
	CountPrescribed(since *time.Time) (int, error)
}
