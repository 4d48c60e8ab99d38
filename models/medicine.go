package models

import "time"

// Inventory transaction types.
const (
	TxPrescription = "prescription"
	TxRestock      = "restock"
	TxAdjustment   = "adjustment"
	TxExpired      = "expired"
	TxDamaged      = "damaged"
)

// Medicine is one catalog entry in the pharmacy inventory.
type Medicine struct {
	ID            string     `bson:"id" json:"id"`
	Name          string     `bson:"name" json:"name"`
	GenericName   string     `bson:"generic_name,omitempty" json:"genericName,omitempty"`
	BrandName     string     `bson:"brand_name,omitempty" json:"brandName,omitempty"`
	Manufacturer  string     `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Form          string     `bson:"form,omitempty" json:"form,omitempty"`
	Strength      string     `bson:"strength,omitempty" json:"strength,omitempty"`
	Unit          string     `bson:"unit,omitempty" json:"unit,omitempty"`
	StockQuantity int        `bson:"stock_quantity" json:"stockQuantity"`
	MinStockLevel int        `bson:"min_stock_level" json:"minStockLevel"`
	MaxStockLevel int        `bson:"max_stock_level,omitempty" json:"maxStockLevel,omitempty"`
	ExpiryDate    *time.Time `bson:"expiry_date,omitempty" json:"expiryDate,omitempty"`
	BatchNumber   string     `bson:"batch_number,omitempty" json:"batchNumber,omitempty"`
	Price         float64    `bson:"price" json:"price"`
	Category      string     `bson:"category,omitempty" json:"category,omitempty"`
	Description   string     `bson:"description,omitempty" json:"description,omitempty"`
	IsActive      bool       `bson:"is_active" json:"isActive"`
	CreatedAt     time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updatedAt"`
}

// IsLowStock reports whether the stock is at or below the minimum level.
func (m *Medicine) IsLowStock() bool {
	min := m.MinStockLevel
	if min == 0 {
		min = 10
	}
	return m.StockQuantity <= min
}

// IsExpired reports whether the medicine's expiry date has passed.
func (m *Medicine) IsExpired(now time.Time) bool {
	return m.ExpiryDate != nil && m.ExpiryDate.Before(now)
}

// IsExpiringSoon reports whether the medicine expires within 30 days.
func (m *Medicine) IsExpiringSoon(now time.Time) bool {
	if m.ExpiryDate == nil {
		return false
	}
	return m.ExpiryDate.After(now) && !m.ExpiryDate.After(now.AddDate(0, 0, 30))
}

// InventoryTransaction is one ledger entry recording a stock movement.
type InventoryTransaction struct {
	ID            string    `bson:"id" json:"id"`
	MedicineID    string    `bson:"medicine_id" json:"medicineId"`
	MedicineName  string    `bson:"medicine_name" json:"medicineName"`
	Type          string    `bson:"type" json:"type"`
	Quantity      int       `bson:"quantity" json:"quantity"`
	PreviousStock int       `bson:"previous_stock" json:"previousStock"`
	NewStock      int       `bson:"new_stock" json:"newStock"`
	PatientID     string    `bson:"patient_id,omitempty" json:"patientId,omitempty"`
	PerformedBy   string    `bson:"performed_by" json:"performedBy"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}
