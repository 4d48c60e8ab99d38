package medicineRepo

import (
	"errors"

	"opdcare/models"
)

// ErrNotFound is returned when no medicine matches the query.
var ErrNotFound = errors.New("medicine not found")

// Filter narrows medicine listings. Page is 1-based; a zero Limit defaults
// to 50 in the implementation.
type Filter struct {
	Search       string
	Category     string
	LowStock     bool
	ExpiringSoon bool
	Expired      bool
	Page         int
	Limit        int
	SortBy       string
	SortDesc     bool
}

// Stats summarizes the active catalog for the inventory dashboard.
type Stats struct {
	Total        int `json:"total"`
	LowStock     int `json:"lowStock"`
	ExpiringSoon int `json:"expiringSoon"`
	Expired      int `json:"expired"`
}

type MedicineRepository interface {
	Create(m *models.Medicine) error
	GetByID(id string) (*models.Medicine, error)
	GetActiveByName(name string) (*models.Medicine, error)
	Update(m *models.Medicine) error
	List(f Filter) ([]models.Medicine, int, error)
	ListActive() ([]models.Medicine, error)
	Suggest(query string, limit int) ([]models.Medicine, error)
	// SetStock updates the stock level and records the movement in the
	// transaction ledger as a single logical operation.
	SetStock(m *models.Medicine, newStock int, tx *models.InventoryTransaction) error
	ListTransactions(medicineID string, page, limit int) ([]models.InventoryTransaction, int, error)
}
