package cron

import (
	medicineRepo "opdcare/database/repository/medicine"
	"opdcare/services/inventory"
	"opdcare/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InitInventorySweep schedules the daily stock review: every morning before
// OPD hours it logs the low-stock, expiring and expired counts so the
// medical store sees them at open. Returns the scheduler so the caller can
// stop it on shutdown.
func InitInventorySweep(inv inventory.InventoryService) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("0 7 * * *", func() { runInventorySweep(inv) })
	if err != nil {
		utils.GetLogger().Error("failed to schedule inventory sweep", zap.Error(err))
		return c
	}
	c.Start()
	return c
}

func runInventorySweep(inv inventory.InventoryService) {
	logger := utils.GetLogger()
	stats, err := inv.Stats()
	if err != nil {
		logger.Error("inventory sweep failed", zap.Error(err))
		return
	}
	logger.Info("daily inventory review",
		zap.Int("total", stats.Total),
		zap.Int("lowStock", stats.LowStock),
		zap.Int("expiringSoon", stats.ExpiringSoon),
		zap.Int("expired", stats.Expired))

	if stats.LowStock == 0 && stats.Expired == 0 {
		return
	}
	low, _, err := inv.List(medicineRepo.Filter{LowStock: true, Limit: 100})
	if err != nil {
		logger.Error("failed to list low-stock medicines", zap.Error(err))
		return
	}
	for _, m := range low {
		logger.Warn("medicine low on stock",
			zap.String("medicineID", m.ID),
			zap.String("name", m.Name),
			zap.Int("stockQuantity", m.StockQuantity),
			zap.Int("minStockLevel", m.MinStockLevel))
	}
}
