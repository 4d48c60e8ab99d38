package inventory

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	medicineRepo "opdcare/database/repository/medicine"
	"opdcare/models"
	"opdcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportResult tallies the outcome of a bulk catalog import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

var syncClient = &http.Client{Timeout: 30 * time.Second}

// normalizeForm maps free-text dosage forms from external datasets onto the
// catalog's fixed vocabulary.
func normalizeForm(form string) string {
	f := strings.ToLower(form)
	switch {
	case strings.Contains(f, "capsule"):
		return "Capsule"
	case strings.Contains(f, "syrup"), strings.Contains(f, "suspension"):
		return "Syrup"
	case strings.Contains(f, "injection"):
		return "Injection"
	case strings.Contains(f, "cream"), strings.Contains(f, "ointment"):
		return "Cream"
	case strings.Contains(f, "drop"):
		return "Drops"
	case strings.Contains(f, "inhaler"):
		return "Inhaler"
	default:
		return "Tablet"
	}
}

func (s *DefaultInventoryService) Import(entries []models.Medicine, overwrite bool) (*ImportResult, error) {
	result := &ImportResult{}
	for i := range entries {
		entry := entries[i]
		if entry.Name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d: missing medicine name", i+1))
			continue
		}
		entry.Form = normalizeForm(entry.Form)
		if entry.MinStockLevel <= 0 {
			entry.MinStockLevel = 10
		}
		if entry.StockQuantity < 0 {
			entry.StockQuantity = 0
		}

		existing, err := s.Repo.GetActiveByName(entry.Name)
		switch {
		case err == medicineRepo.ErrNotFound:
			entry.ID = uuid.New().String()
			entry.IsActive = true
			now := time.Now()
			entry.CreatedAt = now
			entry.UpdatedAt = now
			if err := s.Repo.Create(&entry); err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", entry.Name, err))
				continue
			}
			result.Imported++
		case err != nil:
			return nil, err
		case !overwrite:
			result.Skipped++
		default:
			if err := s.overwriteFromImport(existing, entry); err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", entry.Name, err))
				continue
			}
			result.Updated++
		}
	}
	utils.GetLogger().Info("catalog import completed",
		zap.Int("imported", result.Imported),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// overwriteFromImport merges the imported fields onto the stored medicine.
// Stock differences go through the ledger so the import leaves an audit
// trail like any other adjustment.
func (s *DefaultInventoryService) overwriteFromImport(existing *models.Medicine, entry models.Medicine) error {
	entry.ID = existing.ID
	entry.IsActive = true
	entry.CreatedAt = existing.CreatedAt
	newStock := entry.StockQuantity
	entry.StockQuantity = existing.StockQuantity
	if err := s.Repo.Update(&entry); err != nil {
		return err
	}
	if newStock == existing.StockQuantity {
		return nil
	}
	tx := &models.InventoryTransaction{
		ID:            uuid.New().String(),
		MedicineID:    existing.ID,
		MedicineName:  entry.Name,
		Type:          models.TxAdjustment,
		Quantity:      newStock - existing.StockQuantity,
		PreviousStock: existing.StockQuantity,
		NewStock:      newStock,
		Notes:         "bulk import",
		CreatedAt:     time.Now(),
	}
	return s.Repo.SetStock(&entry, newStock, tx)
}

func (s *DefaultInventoryService) Export() ([]models.Medicine, error) {
	return s.Repo.ListActive()
}

// syncEnvelope accepts either a bare array or a {"data": [...]} wrapper from
// the remote dataset.
type syncEnvelope struct {
	Data []models.Medicine `json:"data"`
}

func (s *DefaultInventoryService) Sync(url string) (*ImportResult, error) {
	if url == "" {
		return nil, fmt.Errorf("sync URL is required")
	}
	resp, err := syncClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog data: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog data: %w", err)
	}

	var entries []models.Medicine
	if err := json.Unmarshal(body, &entries); err != nil {
		var envelope syncEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil || envelope.Data == nil {
			return nil, fmt.Errorf("catalog source returned an unrecognized format")
		}
		entries = envelope.Data
	}
	return s.Import(entries, false)
}
