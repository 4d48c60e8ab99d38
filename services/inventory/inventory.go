package inventory

import (
	"fmt"
	"time"

	medicineRepo "opdcare/database/repository/medicine"
	"opdcare/models"
	"opdcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdjustRequest changes a medicine's stock by a signed quantity. Type names
// the reason (restock, adjustment, expired, damaged).
type AdjustRequest struct {
	Quantity    int    `json:"quantity" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Notes       string `json:"notes"`
	PerformedBy string `json:"performedBy"`
}

// DispenseReport summarizes a prescription dispense run.
type DispenseReport struct {
	Dispensed  []string `json:"dispensed"`
	Missing    []string `json:"missing"`
	OutOfStock []string `json:"outOfStock"`
}

// InventoryService defines business logic for the pharmacy catalog.
type InventoryService interface {
	Create(m *models.Medicine) (*models.Medicine, error)
	GetByID(id string) (*models.Medicine, error)
	Update(m *models.Medicine) (*models.Medicine, error)
	Deactivate(id string) error
	List(f medicineRepo.Filter) ([]models.Medicine, int, error)
	Stats() (*medicineRepo.Stats, error)
	Suggest(query string, limit int) ([]models.Medicine, error)
	AdjustStock(id string, req AdjustRequest) (*models.Medicine, error)
	// Dispense decrements one unit per prescription line by medicine name.
	// Unknown names and exhausted stock are reported, not errors: the
	// prescription itself is already written.
	Dispense(lines []models.PrescribedMedicine, patientID, performedBy string) (*DispenseReport, error)
	Transactions(medicineID string, page, limit int) ([]models.InventoryTransaction, int, error)
	// Import bulk-loads catalog entries. Entries matching an existing active
	// medicine by name are updated only when overwrite is set.
	Import(entries []models.Medicine, overwrite bool) (*ImportResult, error)
	Export() ([]models.Medicine, error)
	// Sync fetches a JSON catalog from an external URL and imports it
	// without overwriting existing entries.
	Sync(url string) (*ImportResult, error)
}

// DefaultInventoryService is the production implementation.
type DefaultInventoryService struct {
	Repo medicineRepo.MedicineRepository
}

var validTxTypes = map[string]bool{
	models.TxRestock:    true,
	models.TxAdjustment: true,
	models.TxExpired:    true,
	models.TxDamaged:    true,
}

func (s *DefaultInventoryService) Create(m *models.Medicine) (*models.Medicine, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("medicine name is required")
	}
	if m.StockQuantity < 0 {
		return nil, fmt.Errorf("stock quantity cannot be negative")
	}
	m.ID = uuid.New().String()
	m.IsActive = true
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := s.Repo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *DefaultInventoryService) GetByID(id string) (*models.Medicine, error) {
	return s.Repo.GetByID(id)
}

func (s *DefaultInventoryService) Update(m *models.Medicine) (*models.Medicine, error) {
	existing, err := s.Repo.GetByID(m.ID)
	if err != nil {
		return nil, err
	}
	// Stock changes go through AdjustStock so the ledger stays complete.
	m.StockQuantity = existing.StockQuantity
	m.CreatedAt = existing.CreatedAt
	if err := s.Repo.Update(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *DefaultInventoryService) Deactivate(id string) error {
	m, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	m.IsActive = false
	return s.Repo.Update(m)
}

func (s *DefaultInventoryService) List(f medicineRepo.Filter) ([]models.Medicine, int, error) {
	return s.Repo.List(f)
}

// Stats walks the active catalog once and classifies in memory; the catalog
// for a single clinic is small enough that this beats four counting queries.
func (s *DefaultInventoryService) Stats() (*medicineRepo.Stats, error) {
	medicines, err := s.Repo.ListActive()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	stats := &medicineRepo.Stats{Total: len(medicines)}
	for i := range medicines {
		m := &medicines[i]
		if m.IsLowStock() {
			stats.LowStock++
		}
		if m.IsExpired(now) {
			stats.Expired++
		} else if m.IsExpiringSoon(now) {
			stats.ExpiringSoon++
		}
	}
	return stats, nil
}

func (s *DefaultInventoryService) Suggest(query string, limit int) ([]models.Medicine, error) {
	if query == "" {
		return nil, nil
	}
	return s.Repo.Suggest(query, limit)
}

func (s *DefaultInventoryService) AdjustStock(id string, req AdjustRequest) (*models.Medicine, error) {
	if !validTxTypes[req.Type] {
		return nil, fmt.Errorf("invalid transaction type %q", req.Type)
	}
	if req.Quantity == 0 {
		return nil, fmt.Errorf("adjustment quantity cannot be zero")
	}
	m, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	newStock := m.StockQuantity + req.Quantity
	if newStock < 0 {
		newStock = 0
	}
	tx := &models.InventoryTransaction{
		ID:            uuid.New().String(),
		MedicineID:    m.ID,
		MedicineName:  m.Name,
		Type:          req.Type,
		Quantity:      req.Quantity,
		PreviousStock: m.StockQuantity,
		NewStock:      newStock,
		PerformedBy:   req.PerformedBy,
		Notes:         req.Notes,
		CreatedAt:     time.Now(),
	}
	if err := s.Repo.SetStock(m, newStock, tx); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("stock adjusted",
		zap.String("medicineID", m.ID),
		zap.String("type", req.Type),
		zap.Int("quantity", req.Quantity),
		zap.Int("newStock", newStock))
	return m, nil
}

func (s *DefaultInventoryService) Dispense(lines []models.PrescribedMedicine, patientID, performedBy string) (*DispenseReport, error) {
	report := &DispenseReport{}
	for _, line := range lines {
		if line.Name == "" {
			continue
		}
		m, err := s.Repo.GetActiveByName(line.Name)
		if err != nil {
			if err == medicineRepo.ErrNotFound {
				report.Missing = append(report.Missing, line.Name)
				continue
			}
			return nil, err
		}
		if m.StockQuantity <= 0 {
			report.OutOfStock = append(report.OutOfStock, line.Name)
			continue
		}
		tx := &models.InventoryTransaction{
			ID:            uuid.New().String(),
			MedicineID:    m.ID,
			MedicineName:  m.Name,
			Type:          models.TxPrescription,
			Quantity:      -1,
			PreviousStock: m.StockQuantity,
			NewStock:      m.StockQuantity - 1,
			PatientID:     patientID,
			PerformedBy:   performedBy,
			CreatedAt:     time.Now(),
		}
		if err := s.Repo.SetStock(m, m.StockQuantity-1, tx); err != nil {
			return nil, err
		}
		report.Dispensed = append(report.Dispensed, m.Name)
	}
	if len(report.Missing) > 0 || len(report.OutOfStock) > 0 {
		utils.GetLogger().Warn("dispense completed with gaps",
			zap.String("patientID", patientID),
			zap.Strings("missing", report.Missing),
			zap.Strings("outOfStock", report.OutOfStock))
	}
	return report, nil
}

func (s *DefaultInventoryService) Transactions(medicineID string, page, limit int) ([]models.InventoryTransaction, int, error) {
	return s.Repo.ListTransactions(medicineID, page, limit)
}
