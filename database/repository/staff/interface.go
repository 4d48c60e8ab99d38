package staffRepo

import (
	"errors"

	"opdcare/models"
)

// ErrNotFound is returned when no staff document matches the query.
var ErrNotFound = errors.New("staff not found")

type StaffRepository interface {
	Create(s *models.Staff) error
	GetByID(id string) (*models.Staff, error)
	GetByEmail(email string) (*models.Staff, error)
	GetByEmailAndRole(email, role string) (*models.Staff, error)
	// GetDoctorByID resolves a staff member and verifies the doctor role;
	// a non-doctor match is reported as ErrNotFound.
	GetDoctorByID(id string) (*models.Staff, error)
	Update(s *models.Staff) error
	Delete(id string) error
	ListByRoles(roles []string) ([]models.Staff, error)
	ListActiveDoctors() ([]models.Staff, error)
}
