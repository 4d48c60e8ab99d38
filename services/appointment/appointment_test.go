package appointment

import (
	"testing"

	appointmentRepo "opdcare/database/repository/appointment"
	staffRepo "opdcare/database/repository/staff"
	"opdcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStaffRepo struct {
	doctors map[string]*models.Staff
}

func (f *fakeStaffRepo) Create(s *models.Staff) error { return nil }
func (f *fakeStaffRepo) Update(s *models.Staff) error { return nil }
func (f *fakeStaffRepo) Delete(id string) error       { return nil }
func (f *fakeStaffRepo) GetByID(id string) (*models.Staff, error) {
	return f.GetDoctorByID(id)
}
func (f *fakeStaffRepo) GetByEmail(email string) (*models.Staff, error) {
	return nil, staffRepo.ErrNotFound
}
func (f *fakeStaffRepo) GetByEmailAndRole(email, role string) (*models.Staff, error) {
	return nil, staffRepo.ErrNotFound
}
func (f *fakeStaffRepo) GetDoctorByID(id string) (*models.Staff, error) {
	if d, ok := f.doctors[id]; ok {
		return d, nil
	}
	return nil, staffRepo.ErrNotFound
}
func (f *fakeStaffRepo) ListByRoles(roles []string) ([]models.Staff, error) { return nil, nil }
func (f *fakeStaffRepo) ListActiveDoctors() ([]models.Staff, error)         { return nil, nil }

type fakeAppointmentRepo struct {
	appointments map[string]*models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[string]*models.Appointment{}}
}

func (f *fakeAppointmentRepo) Create(a *models.Appointment) error {
	copied := *a
	f.appointments[a.ID] = &copied
	return nil
}

func (f *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	if a, ok := f.appointments[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, appointmentRepo.ErrNotFound
}

func (f *fakeAppointmentRepo) Update(a *models.Appointment) error {
	if _, ok := f.appointments[a.ID]; !ok {
		return appointmentRepo.ErrNotFound
	}
	copied := *a
	f.appointments[a.ID] = &copied
	return nil
}

func (f *fakeAppointmentRepo) Delete(id string) error {
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentRepo) List(filter appointmentRepo.Filter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		out = append(out, *a)
	}
	return out, nil
}

func newService(doctors ...*models.Staff) (*DefaultAppointmentService, *fakeAppointmentRepo) {
	staff := &fakeStaffRepo{doctors: map[string]*models.Staff{}}
	for _, d := range doctors {
		staff.doctors[d.ID] = d
	}
	repo := newFakeAppointmentRepo()
	return &DefaultAppointmentService{Repo: repo, Staff: staff}, repo
}

func validCreate() CreateRequest {
	return CreateRequest{
		PatientName:     "Meena Iyer",
		MobileNumber:    "9876543210",
		DoctorID:        "d1",
		AppointmentDate: "2026-01-06",
		AppointmentTime: "09:30",
	}
}

func TestCreateRejectsUnknownDoctor(t *testing.T) {
	svc, repo := newService()
	_, err := svc.Create(validCreate())
	assert.ErrorIs(t, err, staffRepo.ErrNotFound)
	assert.Empty(t, repo.appointments)
}

func TestCreateRejectsUnavailableDoctor(t *testing.T) {
	off := false
	svc, _ := newService(&models.Staff{
		ID: "d1", FullName: "Asha Rao", Role: models.RoleDoctor, IsAvailable: &off,
	})
	_, err := svc.Create(validCreate())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")
}

func TestCreateRejectsBlockedDayAndOffHours(t *testing.T) {
	svc, _ := newService(&models.Staff{
		ID: "d1", FullName: "Asha Rao", Role: models.RoleDoctor,
		WeeklySchedule: map[string]*bool{"monday": boolPtr(false)},
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning": {Enabled: true, StartTime: "09:00", EndTime: "11:00"},
		},
	})

	req := validCreate()
	req.AppointmentDate = "2026-01-05" // a Monday
	_, err := svc.Create(req)
	assert.Error(t, err)

	req = validCreate()
	req.AppointmentTime = "16:00"
	_, err = svc.Create(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "visiting hours")
}

func TestCreateStoresAndDefaults(t *testing.T) {
	svc, repo := newService(&models.Staff{
		ID: "d1", FullName: "Asha Rao", Role: models.RoleDoctor,
	})

	appt, err := svc.Create(validCreate())
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentScheduled, appt.Status)
	assert.Equal(t, "Asha Rao", appt.DoctorName)
	assert.Equal(t, "2026-01-06", appt.AppointmentDate.Format("2006-01-02"))
	assert.Contains(t, repo.appointments, appt.ID)
}

func TestUpdateRevalidatesDateAndTime(t *testing.T) {
	svc, _ := newService(&models.Staff{
		ID: "d1", FullName: "Asha Rao", Role: models.RoleDoctor,
		WeeklySchedule: map[string]*bool{"monday": boolPtr(false)},
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning": {Enabled: true, StartTime: "09:00", EndTime: "11:00"},
		},
	})

	appt, err := svc.Create(validCreate())
	require.NoError(t, err)

	// Moving onto a blocked weekday fails.
	_, err = svc.Update(appt.ID, UpdateRequest{AppointmentDate: "2026-01-05"})
	assert.Error(t, err)

	// Changing only the time keeps the stored date and re-checks the hours.
	_, err = svc.Update(appt.ID, UpdateRequest{AppointmentTime: "16:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "visiting hours")

	updated, err := svc.Update(appt.ID, UpdateRequest{AppointmentTime: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, "10:00", updated.AppointmentTime)
	assert.Equal(t, "2026-01-06", updated.AppointmentDate.Format("2006-01-02"))
}

func TestUpdateValidatesStatus(t *testing.T) {
	svc, _ := newService(&models.Staff{ID: "d1", FullName: "Asha Rao", Role: models.RoleDoctor})
	appt, err := svc.Create(validCreate())
	require.NoError(t, err)

	_, err = svc.Update(appt.ID, UpdateRequest{Status: "bogus"})
	assert.Error(t, err)

	updated, err := svc.Update(appt.ID, UpdateRequest{Status: models.AppointmentConfirmed})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, updated.Status)
}

func boolPtr(b bool) *bool { return &b }
