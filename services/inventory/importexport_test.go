package inventory

import (
	"testing"

	"opdcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCreatesAndSkips(t *testing.T) {
	repo := newFakeMedicineRepo(&models.Medicine{
		ID: "m1", Name: "Paracetamol 500mg", StockQuantity: 40, IsActive: true,
	})
	svc := &DefaultInventoryService{Repo: repo}

	result, err := svc.Import([]models.Medicine{
		{Name: "Amoxicillin 250mg", Form: "capsules", StockQuantity: 30},
		{Name: "paracetamol 500mg", StockQuantity: 99},
		{Form: "Tablet"},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 2, result.Skipped, "existing entry and nameless entry are skipped")
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "missing medicine name")

	imported, err := repo.GetActiveByName("Amoxicillin 250mg")
	require.NoError(t, err)
	assert.NotEmpty(t, imported.ID)
	assert.True(t, imported.IsActive)
	assert.Equal(t, "Capsule", imported.Form)
	assert.Equal(t, 10, imported.MinStockLevel, "default minimum stock applies")
	assert.Equal(t, 40, repo.medicines["m1"].StockQuantity, "existing stock untouched without overwrite")
}

func TestImportOverwriteLedgersStockChange(t *testing.T) {
	repo := newFakeMedicineRepo(&models.Medicine{
		ID: "m1", Name: "Paracetamol 500mg", StockQuantity: 40, Price: 2, IsActive: true,
	})
	svc := &DefaultInventoryService{Repo: repo}

	result, err := svc.Import([]models.Medicine{
		{Name: "Paracetamol 500mg", StockQuantity: 55, Price: 3},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	updated := repo.medicines["m1"]
	assert.Equal(t, 55, updated.StockQuantity)
	assert.Equal(t, float64(3), updated.Price)

	require.Len(t, repo.ledger, 1)
	tx := repo.ledger[0]
	assert.Equal(t, models.TxAdjustment, tx.Type)
	assert.Equal(t, 15, tx.Quantity)
	assert.Equal(t, 40, tx.PreviousStock)
	assert.Equal(t, 55, tx.NewStock)
}

func TestImportOverwriteSameStockSkipsLedger(t *testing.T) {
	repo := newFakeMedicineRepo(&models.Medicine{
		ID: "m1", Name: "Paracetamol 500mg", StockQuantity: 40, IsActive: true,
	})
	svc := &DefaultInventoryService{Repo: repo}

	_, err := svc.Import([]models.Medicine{
		{Name: "Paracetamol 500mg", StockQuantity: 40, Price: 4},
	}, true)
	require.NoError(t, err)
	assert.Empty(t, repo.ledger, "no stock movement, no ledger entry")
}

func TestExportReturnsActiveCatalog(t *testing.T) {
	repo := newFakeMedicineRepo(
		&models.Medicine{ID: "m1", Name: "A", IsActive: true},
		&models.Medicine{ID: "m2", Name: "B", IsActive: false},
	)
	svc := &DefaultInventoryService{Repo: repo}

	medicines, err := svc.Export()
	require.NoError(t, err)
	require.Len(t, medicines, 1)
	assert.Equal(t, "A", medicines[0].Name)
}

func TestSyncRequiresURL(t *testing.T) {
	svc := &DefaultInventoryService{Repo: newFakeMedicineRepo()}
	_, err := svc.Sync("")
	assert.Error(t, err)
}

func TestNormalizeForm(t *testing.T) {
	cases := map[string]string{
		"capsules":        "Capsule",
		"Oral Suspension": "Syrup",
		"INJECTION":       "Injection",
		"eye drops":       "Drops",
		"ointment":        "Cream",
		"":                "Tablet",
		"lozenge":         "Tablet",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeForm(in), in)
	}
}
