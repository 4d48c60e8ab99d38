package medicalrecords

import (
	"strings"
	"testing"
	"time"

	registrationRepo "opdcare/database/repository/registration"
	"opdcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrationRepo struct {
	patients []*models.Patient
}

func (f *fakeRegistrationRepo) Create(p *models.Patient) error {
	f.patients = append(f.patients, p)
	return nil
}

func (f *fakeRegistrationRepo) GetByID(id string) (*models.Patient, error) {
	for _, p := range f.patients {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, registrationRepo.ErrNotFound
}

func (f *fakeRegistrationRepo) Update(p *models.Patient) error { return nil }
func (f *fakeRegistrationRepo) CountForDoctorInWindow(doctorID string, start, end time.Time) (int, error) {
	return 0, nil
}
func (f *fakeRegistrationRepo) MaxTokenInWindow(doctorID string, start, end time.Time) (int, error) {
	return 0, nil
}
func (f *fakeRegistrationRepo) ListForDoctorInWindow(doctorID string, start, end time.Time) ([]models.Patient, error) {
	return nil, nil
}
func (f *fakeRegistrationRepo) ListAll() ([]models.Patient, error) { return nil, nil }

func (f *fakeRegistrationRepo) prescribed(search string) []*models.Patient {
	var out []*models.Patient
	for _, p := range f.patients {
		if p.Prescription == nil {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.FullName), strings.ToLower(search)) &&
			!strings.Contains(p.MobileNumber, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (f *fakeRegistrationRepo) ListPrescribed(search string, page, limit int) ([]models.Patient, int, error) {
	matched := f.prescribed(search)
	start := (page - 1) * limit
	var out []models.Patient
	for i := start; i < len(matched) && i < start+limit; i++ {
		out = append(out, *matched[i])
	}
	return out, len(matched), nil
}

func (f *fakeRegistrationRepo) CountPrescribed(since *time.Time) (int, error) {
	n := 0
	for _, p := range f.prescribed("") {
		if since == nil || !p.Prescription.CreatedAt.Before(*since) {
			n++
		}
	}
	return n, nil
}

func prescribedPatient(id, name, mobile string, writtenAt time.Time) *models.Patient {
	return &models.Patient{
		ID:           id,
		FullName:     name,
		MobileNumber: mobile,
		Prescription: &models.Prescription{
			Diagnosis: "fever",
			CreatedAt: writtenAt,
		},
	}
}

func TestHistoryPaginatesAndFilters(t *testing.T) {
	written := time.Date(2026, 2, 10, 11, 0, 0, 0, time.UTC)
	repo := &fakeRegistrationRepo{patients: []*models.Patient{
		prescribedPatient("p1", "Meena Iyer", "9876543210", written),
		prescribedPatient("p2", "Ravi Kumar", "9123456780", written),
		prescribedPatient("p3", "Meena Pillai", "9000000000", written),
		{ID: "p4", FullName: "No Prescription Yet"},
	}}
	svc := &DefaultRecordsService{Registrations: repo}

	page, err := svc.History("", 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Records, 2)
	assert.Equal(t, 3, page.Pagination.Total, "unprescribed registrations stay out")
	assert.Equal(t, 2, page.Pagination.Pages)

	page, err = svc.History("meena", 1, 50)
	require.NoError(t, err)
	assert.Len(t, page.Records, 2)

	page, err = svc.History("", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 50, page.Pagination.Limit)
}

func TestStatsCountsTodaySeparately(t *testing.T) {
	now := time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC)
	repo := &fakeRegistrationRepo{patients: []*models.Patient{
		prescribedPatient("p1", "A", "1111111111", now.Add(-2*time.Hour)),
		prescribedPatient("p2", "B", "2222222222", now.AddDate(0, 0, -3)),
	}}
	svc := &DefaultRecordsService{
		Registrations: repo,
		Now:           func() time.Time { return now },
	}

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPrescriptions)
	assert.Equal(t, 1, stats.TodayPrescriptions)
}

func TestGetRecordRequiresPrescription(t *testing.T) {
	repo := &fakeRegistrationRepo{patients: []*models.Patient{
		prescribedPatient("p1", "A", "1111111111", time.Now()),
		{ID: "p2", FullName: "B"},
	}}
	svc := &DefaultRecordsService{Registrations: repo}

	record, err := svc.GetRecord("p1")
	require.NoError(t, err)
	assert.NotNil(t, record.Prescription)

	_, err = svc.GetRecord("p2")
	assert.ErrorIs(t, err, registrationRepo.ErrNotFound, "registration without a prescription is not a record")

	_, err = svc.GetRecord("missing")
	assert.ErrorIs(t, err, registrationRepo.ErrNotFound)
}
