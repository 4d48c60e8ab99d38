package handlers

import (
	"net/http"
	"time"

	registrationRepo "opdcare/database/repository/registration"
	staffRepo "opdcare/database/repository/staff"
	"opdcare/services/patientreg"
	"opdcare/services/scheduling"
	"opdcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PatientHandler serves OPD registration endpoints.
type PatientHandler struct {
	Patients patientreg.PatientService
}

// RegisterPatientHandler handles POST /api/patients. A policy rejection is
// returned as 409 with the decision body so the front desk can show the
// reason; doctor-not-found maps to 404.
func (h *PatientHandler) RegisterPatientHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req patientreg.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	patient, decision, err := h.Patients.Register(req)
	if err != nil {
		logger.Error("Registration failed", zap.String("doctorID", req.DoctorID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !decision.Accepted {
		status := http.StatusConflict
		if decision.Reason == scheduling.ReasonDoctorNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": decision.Message, "decision": decision})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"patient": patient, "decision": decision})
}

// GetPatientHandler handles GET /api/patients/:id.
func (h *PatientHandler) GetPatientHandler(c *gin.Context) {
	patient, err := h.Patients.GetByID(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if err == registrationRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patient)
}

// QueueHandler handles GET /api/doctors/:id/queue?date=YYYY-MM-DD. Without a
// date it returns today's queue.
func (h *PatientHandler) QueueHandler(c *gin.Context) {
	doctorID := c.Param("id")
	date := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	patients, err := h.Patients.QueueForDate(doctorID, date)
	if err != nil {
		status := http.StatusInternalServerError
		if err == staffRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients, "count": len(patients)})
}

// ListPatientsHandler handles GET /api/patients.
func (h *PatientHandler) ListPatientsHandler(c *gin.Context) {
	patients, err := h.Patients.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patients)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePatientStatusHandler handles PATCH /api/patients/:id/status.
func (h *PatientHandler) UpdatePatientStatusHandler(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	patient, err := h.Patients.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		status := http.StatusBadRequest
		if err == registrationRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patient)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// CancelPatientHandler handles POST /api/patients/:id/cancel.
func (h *PatientHandler) CancelPatientHandler(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	patient, err := h.Patients.Cancel(c.Param("id"), req.Reason)
	if err != nil {
		status := http.StatusBadRequest
		if err == registrationRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patient)
}
