package handlers

import (
	"net/http"

	registrationRepo "opdcare/database/repository/registration"
	"opdcare/services/medicalrecords"

	"github.com/gin-gonic/gin"
)

// MedicalRecordsHandler serves the read-only prescription history endpoints
// used by the records team.
type MedicalRecordsHandler struct {
	Records medicalrecords.RecordsService
}

// ListPrescriptionRecordsHandler handles
// GET /api/medical-records/prescriptions?search=&page=&limit=.
func (h *MedicalRecordsHandler) ListPrescriptionRecordsHandler(c *gin.Context) {
	page, err := h.Records.History(c.Query("search"), intQuery(c, "page", 1), intQuery(c, "limit", 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// PrescriptionStatsHandler handles GET /api/medical-records/stats.
func (h *MedicalRecordsHandler) PrescriptionStatsHandler(c *gin.Context) {
	stats, err := h.Records.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetPrescriptionRecordHandler handles
// GET /api/medical-records/prescriptions/:id.
func (h *MedicalRecordsHandler) GetPrescriptionRecordHandler(c *gin.Context) {
	record, err := h.Records.GetRecord(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if err == registrationRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}
