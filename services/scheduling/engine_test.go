package scheduling

import (
	"testing"
	"time"

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

type fakeRegistrationRepo struct {
	patients []*models.Patient
}

func (f *fakeRegistrationRepo) Create(p *models.Patient) error {
	f.patients = append(f.patients, p)
	return nil
}
func (f *fakeRegistrationRepo) GetByID(id string) (*models.Patient, error) { return nil, nil }
func (f *fakeRegistrationRepo) Update(p *models.Patient) error             { return nil }
func (f *fakeRegistrationRepo) CountForDoctorInWindow(doctorID string, start, end time.Time) (int, error) {
	return len(f.inWindow(doctorID, start, end)), nil
}
func (f *fakeRegistrationRepo) MaxTokenInWindow(doctorID string, start, end time.Time) (int, error) {
	max := 0
	for _, p := range f.inWindow(doctorID, start, end) {
		if p.TokenNumber > max {
			max = p.TokenNumber
		}
	}
	return max, nil
}
func (f *fakeRegistrationRepo) ListForDoctorInWindow(doctorID string, start, end time.Time) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range f.inWindow(doctorID, start, end) {
		out = append(out, *p)
	}
	return out, nil
}
func (f *fakeRegistrationRepo) ListAll() ([]models.Patient, error) { return nil, nil }
func (f *fakeRegistrationRepo) ListPrescribed(search string, page, limit int) ([]models.Patient, int, error) {
	return nil, 0, nil
}
func (f *fakeRegistrationRepo) CountPrescribed(since *time.Time) (int, error) { return 0, nil }

func (f *fakeRegistrationRepo) inWindow(doctorID string, start, end time.Time) []*models.Patient {
	var out []*models.Patient
	for _, p := range f.patients {
		if p.DoctorID == doctorID && !p.RegistrationDate.Before(start) && p.RegistrationDate.Before(end) {
			out = append(out, p)
		}
	}
	return out
}

func newEngine(doctor *models.Staff, regs *fakeRegistrationRepo) *DefaultEngine {
	staff := &fakeStaffRepo{doctors: map[string]*models.Staff{}}
	if doctor != nil {
		staff.doctors[doctor.ID] = doctor
	}
	e := NewDefaultEngine(staff, regs)
	e.Now = func() time.Time { return clock }
	return e
}

func TestEvaluateDoctorNotFound(t *testing.T) {
	e := newEngine(nil, &fakeRegistrationRepo{})
	d, err := e.Evaluate(Request{DoctorID: "missing"})
	require.NoError(t, err)
	assert.False(t, d.Accepted)
	assert.Equal(t, ReasonDoctorNotFound, d.Reason)
}

func TestEvaluateDoctorUnavailable(t *testing.T) {
	off := false
	doctor := &models.Staff{
		ID: "d1", FullName: "Asha Rao", Role: models.RoleDoctor,
		IsAvailable: &off, UnavailableReason: "on leave",
	}
	e := newEngine(doctor, &fakeRegistrationRepo{})
	d, err := e.Evaluate(Request{DoctorID: "d1"})
	require.NoError(t, err)
	assert.Equal(t, ReasonDoctorUnavailable, d.Reason)
	assert.Contains(t, d.Message, "on leave")
	assert.Equal(t, "Asha Rao", d.DoctorName)
}

func TestEvaluateDateUnavailable(t *testing.T) {
	doctor := &models.Staff{
		ID: "d1", FullName: "Asha Rao", Role: models.RoleDoctor,
		WeeklySchedule: map[string]*bool{"monday": boolPtr(false)},
	}
	e := newEngine(doctor, &fakeRegistrationRepo{})
	d, err := e.Evaluate(Request{DoctorID: "d1", VisitDate: "2026-01-05"})
	require.NoError(t, err)
	assert.Equal(t, ReasonDateUnavailable, d.Reason)
}

func TestEvaluateTimeUnavailable(t *testing.T) {
	doctor := &models.Staff{
		ID: "d1", FullName: "Asha Rao", Role: models.RoleDoctor,
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning": {Enabled: true, StartTime: "09:00", EndTime: "10:00"},
		},
	}
	e := newEngine(doctor, &fakeRegistrationRepo{})
	d, err := e.Evaluate(Request{DoctorID: "d1", VisitDate: "2026-01-06", VisitTime: "15:00"})
	require.NoError(t, err)
	assert.Equal(t, ReasonTimeUnavailable, d.Reason)
}

func TestEvaluateSequentialTokensAndLimit(t *testing.T) {
	doctor := &models.Staff{
		ID: "d1", FullName: "Asha Rao", Role: models.RoleDoctor,
		DailyPatientLimit: 2,
	}
	regs := &fakeRegistrationRepo{}
	e := newEngine(doctor, regs)
	req := Request{DoctorID: "d1", VisitDate: "2026-01-06"}

	for want := 1; want <= 2; want++ {
		d, err := e.Evaluate(req)
		require.NoError(t, err)
		require.True(t, d.Accepted)
		assert.Equal(t, want, d.TokenNumber)
		assert.Equal(t, 2-want, d.RemainingSlots)
		require.NoError(t, regs.Create(&models.Patient{
			DoctorID:         "d1",
			TokenNumber:      d.TokenNumber,
			RegistrationDate: d.VisitTime,
		}))
	}

	d, err := e.Evaluate(req)
	require.NoError(t, err)
	assert.False(t, d.Accepted)
	assert.Equal(t, ReasonLimitReached, d.Reason)
	assert.Equal(t, 2, d.CurrentCount)
	assert.Equal(t, 2, d.Limit)
}

func TestEvaluateTokensAreScopedPerDoctorPerDay(t *testing.T) {
	doctor := &models.Staff{ID: "d1", FullName: "Asha Rao", Role: models.RoleDoctor, DailyPatientLimit: 10}
	other := &models.Staff{ID: "d2", FullName: "Vikram Shah", Role: models.RoleDoctor, DailyPatientLimit: 10}
	regs := &fakeRegistrationRepo{}
	staff := &fakeStaffRepo{doctors: map[string]*models.Staff{"d1": doctor, "d2": other}}
	e := NewDefaultEngine(staff, regs)
	e.Now = func() time.Time { return clock }

	first, err := e.Evaluate(Request{DoctorID: "d1", VisitDate: "2026-01-06"})
	require.NoError(t, err)
	require.NoError(t, regs.Create(&models.Patient{
		DoctorID: "d1", TokenNumber: first.TokenNumber, RegistrationDate: first.VisitTime,
	}))

	sameDayOtherDoctor, err := e.Evaluate(Request{DoctorID: "d2", VisitDate: "2026-01-06"})
	require.NoError(t, err)
	assert.Equal(t, 1, sameDayOtherDoctor.TokenNumber, "token sequence is per doctor")

	nextDaySameDoctor, err := e.Evaluate(Request{DoctorID: "d1", VisitDate: "2026-01-07"})
	require.NoError(t, err)
	assert.Equal(t, 1, nextDaySameDoctor.TokenNumber, "token sequence resets per day")
}

func TestEvaluateZeroLimitMeansUnlimited(t *testing.T) {
	doctor := &models.Staff{ID: "d1", FullName: "Asha Rao", Role: models.RoleDoctor}
	regs := &fakeRegistrationRepo{}
	for i := 1; i <= 40; i++ {
		regs.Create(&models.Patient{
			DoctorID:         "d1",
			TokenNumber:      i,
			RegistrationDate: time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC),
		})
	}
	e := newEngine(doctor, regs)
	d, err := e.Evaluate(Request{DoctorID: "d1", VisitDate: "2026-01-06"})
	require.NoError(t, err)
	assert.True(t, d.Accepted)
	assert.Equal(t, 41, d.TokenNumber)
	assert.Zero(t, d.RemainingSlots)
}

func TestEvaluateRejectsMalformedVisitDate(t *testing.T) {
	doctor := &models.Staff{ID: "d1", FullName: "Asha Rao", Role: models.RoleDoctor}
	e := newEngine(doctor, &fakeRegistrationRepo{})
	_, err := e.Evaluate(Request{DoctorID: "d1", VisitDate: "06/01/2026"})
	assert.Error(t, err)
}
