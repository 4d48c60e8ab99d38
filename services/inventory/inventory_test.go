package inventory

import (
	"strings"
	"testing"
	"time"

	medicineRepo "opdcare/database/repository/medicine"
	"opdcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMedicineRepo struct {
	medicines map[string]*models.Medicine
	ledger    []models.InventoryTransaction
}

func newFakeMedicineRepo(meds ...*models.Medicine) *fakeMedicineRepo {
	repo := &fakeMedicineRepo{medicines: map[string]*models.Medicine{}}
	for _, m := range meds {
		repo.medicines[m.ID] = m
	}
	return repo
}

func (f *fakeMedicineRepo) Create(m *models.Medicine) error {
	f.medicines[m.ID] = m
	return nil
}

func (f *fakeMedicineRepo) GetByID(id string) (*models.Medicine, error) {
	if m, ok := f.medicines[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, medicineRepo.ErrNotFound
}

func (f *fakeMedicineRepo) GetActiveByName(name string) (*models.Medicine, error) {
	for _, m := range f.medicines {
		if m.IsActive && strings.EqualFold(m.Name, name) {
			copied := *m
			return &copied, nil
		}
	}
	return nil, medicineRepo.ErrNotFound
}

func (f *fakeMedicineRepo) Update(m *models.Medicine) error {
	if _, ok := f.medicines[m.ID]; !ok {
		return medicineRepo.ErrNotFound
	}
	copied := *m
	f.medicines[m.ID] = &copied
	return nil
}

func (f *fakeMedicineRepo) List(filter medicineRepo.Filter) ([]models.Medicine, int, error) {
	var out []models.Medicine
	for _, m := range f.medicines {
		out = append(out, *m)
	}
	return out, len(out), nil
}

func (f *fakeMedicineRepo) ListActive() ([]models.Medicine, error) {
	var out []models.Medicine
	for _, m := range f.medicines {
		if m.IsActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMedicineRepo) Suggest(query string, limit int) ([]models.Medicine, error) {
	return nil, nil
}

func (f *fakeMedicineRepo) SetStock(m *models.Medicine, newStock int, tx *models.InventoryTransaction) error {
	stored, ok := f.medicines[m.ID]
	if !ok {
		return medicineRepo.ErrNotFound
	}
	stored.StockQuantity = newStock
	m.StockQuantity = newStock
	f.ledger = append(f.ledger, *tx)
	return nil
}

func (f *fakeMedicineRepo) ListTransactions(medicineID string, page, limit int) ([]models.InventoryTransaction, int, error) {
	return f.ledger, len(f.ledger), nil
}

func TestAdjustStockRestock(t *testing.T) {
	repo := newFakeMedicineRepo(&models.Medicine{
		ID: "m1", Name: "Paracetamol 500mg", StockQuantity: 5, IsActive: true,
	})
	svc := &DefaultInventoryService{Repo: repo}

	m, err := svc.AdjustStock("m1", AdjustRequest{Quantity: 20, Type: models.TxRestock, PerformedBy: "s1"})
	require.NoError(t, err)
	assert.Equal(t, 25, m.StockQuantity)

	require.Len(t, repo.ledger, 1)
	tx := repo.ledger[0]
	assert.Equal(t, models.TxRestock, tx.Type)
	assert.Equal(t, 5, tx.PreviousStock)
	assert.Equal(t, 25, tx.NewStock)
}

func TestAdjustStockClampsAtZero(t *testing.T) {
	repo := newFakeMedicineRepo(&models.Medicine{
		ID: "m1", Name: "Paracetamol 500mg", StockQuantity: 3, IsActive: true,
	})
	svc := &DefaultInventoryService{Repo: repo}

	m, err := svc.AdjustStock("m1", AdjustRequest{Quantity: -10, Type: models.TxDamaged})
	require.NoError(t, err)
	assert.Equal(t, 0, m.StockQuantity, "stock never goes negative")
	assert.Equal(t, 0, repo.ledger[0].NewStock)
}

func TestAdjustStockRejectsBadInput(t *testing.T) {
	repo := newFakeMedicineRepo(&models.Medicine{ID: "m1", Name: "X", IsActive: true})
	svc := &DefaultInventoryService{Repo: repo}

	_, err := svc.AdjustStock("m1", AdjustRequest{Quantity: 0, Type: models.TxRestock})
	assert.Error(t, err)

	_, err = svc.AdjustStock("m1", AdjustRequest{Quantity: 5, Type: "bogus"})
	assert.Error(t, err)

	_, err = svc.AdjustStock("missing", AdjustRequest{Quantity: 5, Type: models.TxRestock})
	assert.ErrorIs(t, err, medicineRepo.ErrNotFound)
}

func TestDispenseSkipsMissingAndOutOfStock(t *testing.T) {
	repo := newFakeMedicineRepo(
		&models.Medicine{ID: "m1", Name: "Paracetamol 500mg", StockQuantity: 10, IsActive: true},
		&models.Medicine{ID: "m2", Name: "Amoxicillin 250mg", StockQuantity: 0, IsActive: true},
	)
	svc := &DefaultInventoryService{Repo: repo}

	report, err := svc.Dispense([]models.PrescribedMedicine{
		{Name: "paracetamol 500mg"},
		{Name: "Amoxicillin 250mg"},
		{Name: "Unknown Syrup"},
	}, "p1", "s1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Paracetamol 500mg"}, report.Dispensed)
	assert.Equal(t, []string{"Amoxicillin 250mg"}, report.OutOfStock)
	assert.Equal(t, []string{"Unknown Syrup"}, report.Missing)

	require.Len(t, repo.ledger, 1)
	tx := repo.ledger[0]
	assert.Equal(t, models.TxPrescription, tx.Type)
	assert.Equal(t, -1, tx.Quantity)
	assert.Equal(t, 9, tx.NewStock)
	assert.Equal(t, "p1", tx.PatientID)
	assert.Equal(t, 9, repo.medicines["m1"].StockQuantity)
}

func TestStatsClassifiesCatalog(t *testing.T) {
	now := time.Now()
	expired := now.AddDate(0, 0, -1)
	soon := now.AddDate(0, 0, 10)
	far := now.AddDate(1, 0, 0)
	repo := newFakeMedicineRepo(
		&models.Medicine{ID: "m1", Name: "A", StockQuantity: 2, MinStockLevel: 5, ExpiryDate: &far, IsActive: true},
		&models.Medicine{ID: "m2", Name: "B", StockQuantity: 50, MinStockLevel: 5, ExpiryDate: &soon, IsActive: true},
		&models.Medicine{ID: "m3", Name: "C", StockQuantity: 50, MinStockLevel: 5, ExpiryDate: &expired, IsActive: true},
		&models.Medicine{ID: "m4", Name: "D", StockQuantity: 50, MinStockLevel: 5, IsActive: false},
	)
	svc := &DefaultInventoryService{Repo: repo}

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total, "inactive medicines stay out of stats")
	assert.Equal(t, 1, stats.LowStock)
	assert.Equal(t, 1, stats.ExpiringSoon)
	assert.Equal(t, 1, stats.Expired)
}
