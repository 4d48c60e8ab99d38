package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	medicineRepo "opdcare/database/repository/medicine"
	"opdcare/models"
	"opdcare/services/inventory"
	"opdcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InventoryHandler serves the pharmacy catalog endpoints.
type InventoryHandler struct {
	Inventory inventory.InventoryService
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

// ListMedicinesHandler handles GET /api/inventory/medicines.
func (h *InventoryHandler) ListMedicinesHandler(c *gin.Context) {
	f := medicineRepo.Filter{
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		LowStock:     c.Query("lowStock") == "true",
		ExpiringSoon: c.Query("expiringSoon") == "true",
		Expired:      c.Query("expired") == "true",
		Page:         intQuery(c, "page", 1),
		Limit:        intQuery(c, "limit", 50),
		SortBy:       c.Query("sortBy"),
		SortDesc:     c.Query("sortOrder") == "desc",
	}

	medicines, total, err := h.Inventory.List(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"medicines": medicines,
		"total":     total,
		"page":      f.Page,
		"limit":     f.Limit,
	})
}

// InventoryStatsHandler handles GET /api/inventory/stats.
func (h *InventoryHandler) InventoryStatsHandler(c *gin.Context) {
	stats, err := h.Inventory.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CreateMedicineHandler handles POST /api/inventory/medicines.
func (h *InventoryHandler) CreateMedicineHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var m models.Medicine
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	created, err := h.Inventory.Create(&m)
	if err != nil {
		logger.Error("Failed to create medicine", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetMedicineHandler handles GET /api/inventory/medicines/:id.
func (h *InventoryHandler) GetMedicineHandler(c *gin.Context) {
	m, err := h.Inventory.GetByID(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if err == medicineRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

// UpdateMedicineHandler handles PUT /api/inventory/medicines/:id.
func (h *InventoryHandler) UpdateMedicineHandler(c *gin.Context) {
	var m models.Medicine
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	m.ID = c.Param("id")
	updated, err := h.Inventory.Update(&m)
	if err != nil {
		status := http.StatusBadRequest
		if err == medicineRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeactivateMedicineHandler handles DELETE /api/inventory/medicines/:id.
// The record is kept for the transaction ledger; only the active flag drops.
func (h *InventoryHandler) DeactivateMedicineHandler(c *gin.Context) {
	if err := h.Inventory.Deactivate(c.Param("id")); err != nil {
		status := http.StatusInternalServerError
		if err == medicineRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medicine deactivated"})
}

// AdjustStockHandler handles POST /api/inventory/medicines/:id/adjust.
func (h *InventoryHandler) AdjustStockHandler(c *gin.Context) {
	var req inventory.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if staffID, ok := c.Get("staffID"); ok && req.PerformedBy == "" {
		req.PerformedBy, _ = staffID.(string)
	}

	m, err := h.Inventory.AdjustStock(c.Param("id"), req)
	if err != nil {
		status := http.StatusBadRequest
		if err == medicineRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

// SuggestMedicinesHandler handles GET /api/inventory/suggest?q=...
func (h *InventoryHandler) SuggestMedicinesHandler(c *gin.Context) {
	medicines, err := h.Inventory.Suggest(c.Query("q"), intQuery(c, "limit", 20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, medicines)
}

// ListTransactionsHandler handles GET /api/inventory/transactions.
func (h *InventoryHandler) ListTransactionsHandler(c *gin.Context) {
	txs, total, err := h.Inventory.Transactions(
		c.Query("medicineId"), intQuery(c, "page", 1), intQuery(c, "limit", 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs, "total": total})
}

type importRequest struct {
	Medicines []models.Medicine `json:"medicines" binding:"required"`
	Overwrite bool              `json:"overwrite"`
}

// ImportMedicinesHandler handles POST /api/inventory/import.
func (h *InventoryHandler) ImportMedicinesHandler(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: expected an array of medicines"})
		return
	}
	result, err := h.Inventory.Import(req.Medicines, req.Overwrite)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Import completed: %d imported, %d updated, %d skipped",
			result.Imported, result.Updated, result.Skipped),
		"result": result,
	})
}

// ExportMedicinesHandler handles GET /api/inventory/export.
func (h *InventoryHandler) ExportMedicinesHandler(c *gin.Context) {
	medicines, err := h.Inventory.Export()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": medicines, "count": len(medicines)})
}

type syncRequest struct {
	URL string `json:"url" binding:"required"`
}

// SyncMedicinesHandler handles POST /api/inventory/sync.
func (h *InventoryHandler) SyncMedicinesHandler(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: url is required"})
		return
	}
	result, err := h.Inventory.Sync(req.URL)
	if err != nil {
		utils.GetLogger().Error("catalog sync failed", zap.String("url", req.URL), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catalog synchronized", "result": result})
}
