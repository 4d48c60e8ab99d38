package handlers

import (
	"net/http"
	"time"

	appointmentRepo "opdcare/database/repository/appointment"
	staffRepo "opdcare/database/repository/staff"
	"opdcare/services/appointment"
	"opdcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves appointment booking endpoints.
type AppointmentHandler struct {
	Appointments appointment.AppointmentService
}

// CreateAppointmentHandler handles POST /api/appointments.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req appointment.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Appointments.Create(req)
	if err != nil {
		logger.Warn("Appointment booking failed",
			zap.String("doctorID", req.DoctorID), zap.Error(err))
		status := http.StatusConflict
		if err == staffRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// GetAppointmentHandler handles GET /api/appointments/:id.
func (h *AppointmentHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := h.Appointments.GetByID(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if err == appointmentRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListAppointmentsHandler handles GET /api/appointments with optional
// doctorId, status and date query filters.
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	f := appointmentRepo.Filter{
		DoctorID: c.Query("doctorId"),
		Status:   c.Query("status"),
	}
	if d := c.Query("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: expected YYYY-MM-DD"})
			return
		}
		f.Date = &parsed
	}

	appointments, err := h.Appointments.List(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments, "count": len(appointments)})
}

// UpdateAppointmentHandler handles PATCH /api/appointments/:id.
func (h *AppointmentHandler) UpdateAppointmentHandler(c *gin.Context) {
	var req appointment.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	appt, err := h.Appointments.Update(c.Param("id"), req)
	if err != nil {
		status := http.StatusBadRequest
		if err == appointmentRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DeleteAppointmentHandler handles DELETE /api/appointments/:id.
func (h *AppointmentHandler) DeleteAppointmentHandler(c *gin.Context) {
	if err := h.Appointments.Delete(c.Param("id")); err != nil {
		status := http.StatusInternalServerError
		if err == appointmentRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}

// ResendAppointmentSMSHandler handles POST /api/appointments/:id/resend-sms.
func (h *AppointmentHandler) ResendAppointmentSMSHandler(c *gin.Context) {
	if err := h.Appointments.ResendSMS(c.Param("id")); err != nil {
		status := http.StatusInternalServerError
		if err == appointmentRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Confirmation SMS queued"})
}
