package appointmentRepo

import (
	"errors"
	"time"

	"opdcare/models"
)

// ErrNotFound is returned when no appointment matches the query.
var ErrNotFound = errors.New("appointment not found")

// Filter narrows appointment listings. Zero values mean "no constraint";
// a non-nil Date selects the calendar day [Date, Date+24h).
type Filter struct {
	DoctorID string
	Status   string
	Date     *time.Time
}

type AppointmentRepository interface {
	Create(a *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	Update(a *models.Appointment) error
	Delete(id string) error
	List(f Filter) ([]models.Appointment, error)
}
