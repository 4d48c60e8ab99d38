package handlers

import (
	"net/http"
	"time"

	registrationRepo "opdcare/database/repository/registration"
	staffRepo "opdcare/database/repository/staff"
	"opdcare/models"
	"opdcare/services/scheduling"
	"opdcare/services/staff"
	"opdcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoctorHandler serves doctor profile and scheduling-configuration
// endpoints.
type DoctorHandler struct {
	Staff         staff.StaffService
	StaffRepo     staffRepo.StaffRepository
	Registrations registrationRepo.RegistrationRepository
}

// ListDoctorsHandler handles GET /api/doctors.
func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	doctors, err := h.Staff.ListDoctors()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// GetDoctorHandler handles GET /api/doctors/:id.
func (h *DoctorHandler) GetDoctorHandler(c *gin.Context) {
	doctor, err := h.StaffRepo.GetDoctorByID(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if err == staffRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// UpdateDoctorHandler handles PUT /api/doctors/:id.
func (h *DoctorHandler) UpdateDoctorHandler(c *gin.Context) {
	var member models.Staff
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	member.ID = c.Param("id")
	updated, err := h.Staff.Update(member)
	if err != nil {
		status := http.StatusBadRequest
		if err == staffRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

type limitRequest struct {
	DailyPatientLimit int `json:"dailyPatientLimit" binding:"required"`
}

// SetDailyLimitHandler handles PATCH /api/doctors/:id/limit.
func (h *DoctorHandler) SetDailyLimitHandler(c *gin.Context) {
	var req limitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	doctor, err := h.Staff.SetDailyLimit(c.Param("id"), req.DailyPatientLimit)
	if err != nil {
		status := http.StatusBadRequest
		if err == staffRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// SetAvailabilityHandler handles PATCH /api/doctors/:id/availability.
func (h *DoctorHandler) SetAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req staff.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	doctor, err := h.Staff.SetAvailability(c.Param("id"), req)
	if err != nil {
		status := http.StatusBadRequest
		if err == staffRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	logger.Info("Doctor availability changed",
		zap.String("doctorID", doctor.ID), zap.Bool("isAvailable", req.IsAvailable))
	c.JSON(http.StatusOK, doctor)
}

// SetScheduleHandler handles PUT /api/doctors/:id/schedule.
func (h *DoctorHandler) SetScheduleHandler(c *gin.Context) {
	var req staff.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	doctor, err := h.Staff.SetSchedule(c.Param("id"), req)
	if err != nil {
		status := http.StatusBadRequest
		if err == staffRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// AvailableSlotsHandler handles GET /api/doctors/:id/slots?date=YYYY-MM-DD.
func (h *DoctorHandler) AvailableSlotsHandler(c *gin.Context) {
	doctor, err := h.StaffRepo.GetDoctorByID(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if err == staffRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	slots := scheduling.ListAvailableSlots(doctor, date)
	c.JSON(http.StatusOK, gin.H{
		"doctorId":      doctor.ID,
		"date":          date.Format("2006-01-02"),
		"dateAvailable": scheduling.IsDateAvailable(doctor, date),
		"slots":         slots,
	})
}

// DoctorStatsHandler handles GET /api/doctors/:id/stats?date=YYYY-MM-DD.
// It reports the queue load for the given day against the doctor's limit.
func (h *DoctorHandler) DoctorStatsHandler(c *gin.Context) {
	doctor, err := h.StaffRepo.GetDoctorByID(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if err == staffRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	start, end := scheduling.DayWindow(date)
	count, err := h.Registrations.CountForDoctorInWindow(doctor.ID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	limit := doctor.DailyPatientLimit
	remaining := 0
	limitReached := false
	if limit > 0 {
		remaining = limit - count
		if remaining < 0 {
			remaining = 0
		}
		limitReached = count >= limit
	}
	c.JSON(http.StatusOK, gin.H{
		"doctorId":     doctor.ID,
		"doctorName":   doctor.FullName,
		"date":         start.Format("2006-01-02"),
		"patientCount": count,
		"dailyLimit":   limit,
		"remaining":    remaining,
		"limitReached": limitReached,
	})
}
