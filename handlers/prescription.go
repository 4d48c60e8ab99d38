package handlers

import (
	"net/http"

	registrationRepo "opdcare/database/repository/registration"
	"opdcare/services/prescription"
	"opdcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PrescriptionHandler serves prescription endpoints.
type PrescriptionHandler struct {
	Prescriptions prescription.PrescriptionService
}

// SavePrescriptionHandler handles PUT /api/patients/:id/prescription.
func (h *PrescriptionHandler) SavePrescriptionHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req prescription.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	patient, err := h.Prescriptions.Save(c.Param("id"), req)
	if err != nil {
		logger.Error("Failed to save prescription",
			zap.String("patientID", c.Param("id")), zap.Error(err))
		status := http.StatusBadRequest
		if err == registrationRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patient)
}

type dispenseRequest struct {
	PerformedBy string `json:"performedBy"`
}

// DispensePrescriptionHandler handles POST /api/patients/:id/dispense.
func (h *PrescriptionHandler) DispensePrescriptionHandler(c *gin.Context) {
	var req dispenseRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if staffID, ok := c.Get("staffID"); ok && req.PerformedBy == "" {
		req.PerformedBy, _ = staffID.(string)
	}

	report, err := h.Prescriptions.Dispense(c.Param("id"), req.PerformedBy)
	if err != nil {
		status := http.StatusBadRequest
		if err == registrationRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// PrescriptionPDFHandler handles GET /api/patients/:id/prescription/pdf.
func (h *PrescriptionHandler) PrescriptionPDFHandler(c *gin.Context) {
	url, err := h.Prescriptions.PDFURL(c.Param("id"))
	if err != nil {
		status := http.StatusNotFound
		if err == registrationRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
