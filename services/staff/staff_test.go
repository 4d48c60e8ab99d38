package staff

import (
	"testing"

	staffRepo "opdcare/database/repository/staff"
	"opdcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeStaffRepo struct {
	byID    map[string]*models.Staff
	byEmail map[string]*models.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{
		byID:    map[string]*models.Staff{},
		byEmail: map[string]*models.Staff{},
	}
}

func (f *fakeStaffRepo) Create(s *models.Staff) error {
	copied := *s
	f.byID[s.ID] = &copied
	f.byEmail[s.Email] = &copied
	return nil
}

func (f *fakeStaffRepo) GetByID(id string) (*models.Staff, error) {
	if s, ok := f.byID[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, staffRepo.ErrNotFound
}

func (f *fakeStaffRepo) GetByEmail(email string) (*models.Staff, error) {
	if s, ok := f.byEmail[email]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, staffRepo.ErrNotFound
}

func (f *fakeStaffRepo) GetByEmailAndRole(email, role string) (*models.Staff, error) {
	s, err := f.GetByEmail(email)
	if err != nil || s.Role != role {
		return nil, staffRepo.ErrNotFound
	}
	return s, nil
}

func (f *fakeStaffRepo) GetDoctorByID(id string) (*models.Staff, error) {
	s, err := f.GetByID(id)
	if err != nil || s.Role != models.RoleDoctor {
		return nil, staffRepo.ErrNotFound
	}
	return s, nil
}

func (f *fakeStaffRepo) Update(s *models.Staff) error {
	if _, ok := f.byID[s.ID]; !ok {
		return staffRepo.ErrNotFound
	}
	copied := *s
	f.byID[s.ID] = &copied
	f.byEmail[s.Email] = &copied
	return nil
}

func (f *fakeStaffRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeStaffRepo) ListByRoles(roles []string) ([]models.Staff, error) { return nil, nil }
func (f *fakeStaffRepo) ListActiveDoctors() ([]models.Staff, error)         { return nil, nil }

func createDoctor(t *testing.T, svc *DefaultStaffService) *models.Staff {
	t.Helper()
	doctor, err := svc.Create(models.Staff{
		FullName: "Asha Rao",
		Email:    "asha@clinic.test",
		Password: "secret123",
		Role:     models.RoleDoctor,
	})
	require.NoError(t, err)
	return doctor
}

func TestCreateDoctorDefaults(t *testing.T) {
	svc := &DefaultStaffService{Repo: newFakeStaffRepo()}
	doctor := createDoctor(t, svc)

	assert.NotEmpty(t, doctor.ID)
	assert.True(t, doctor.IsActive)
	assert.Equal(t, 20, doctor.DailyPatientLimit, "new doctors get the default daily limit")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte("secret123")))
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc := &DefaultStaffService{Repo: newFakeStaffRepo()}
	createDoctor(t, svc)

	_, err := svc.Create(models.Staff{
		FullName: "Other",
		Email:    "asha@clinic.test",
		Password: "pw123456",
		Role:     models.RoleReceptionist,
	})
	assert.Error(t, err)
}

func TestAuthenticateChecksRoleAndPassword(t *testing.T) {
	svc := &DefaultStaffService{Repo: newFakeStaffRepo()}
	createDoctor(t, svc)

	resp, err := svc.Authenticate("asha@clinic.test", "secret123", models.RoleDoctor)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleDoctor, resp.Staff.Role)

	_, err = svc.Authenticate("asha@clinic.test", "wrong", models.RoleDoctor)
	assert.Error(t, err)

	_, err = svc.Authenticate("asha@clinic.test", "secret123", models.RoleAdmin)
	assert.Error(t, err, "role must match")
}

func TestSetDailyLimitBounds(t *testing.T) {
	svc := &DefaultStaffService{Repo: newFakeStaffRepo()}
	doctor := createDoctor(t, svc)

	updated, err := svc.SetDailyLimit(doctor.ID, 35)
	require.NoError(t, err)
	assert.Equal(t, 35, updated.DailyPatientLimit)

	_, err = svc.SetDailyLimit(doctor.ID, 0)
	assert.Error(t, err)
	_, err = svc.SetDailyLimit(doctor.ID, 101)
	assert.Error(t, err)
}

func TestSetScheduleValidation(t *testing.T) {
	svc := &DefaultStaffService{Repo: newFakeStaffRepo()}
	doctor := createDoctor(t, svc)

	off := false
	updated, err := svc.SetSchedule(doctor.ID, ScheduleRequest{
		WeeklySchedule: map[string]*bool{"sunday": &off},
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning": {Enabled: true, StartTime: "09:00", EndTime: "12:00"},
		},
	})
	require.NoError(t, err)
	assert.NotNil(t, updated.WeeklySchedule["sunday"])

	_, err = svc.SetSchedule(doctor.ID, ScheduleRequest{
		WeeklySchedule: map[string]*bool{"funday": &off},
	})
	assert.Error(t, err)

	_, err = svc.SetSchedule(doctor.ID, ScheduleRequest{
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning": {Enabled: true, StartTime: "9am", EndTime: "12:00"},
		},
	})
	assert.Error(t, err)

	_, err = svc.SetSchedule(doctor.ID, ScheduleRequest{
		VisitingHours: map[string]*models.VisitingPeriod{
			"evening": {Enabled: true, StartTime: "18:00", EndTime: "17:00"},
		},
	})
	assert.Error(t, err, "period must end after it starts")
}
