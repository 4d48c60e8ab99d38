package handlers

import (
	"net/http"

	"opdcare/models"
	"opdcare/services/staff"
	"opdcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves login and staff account management.
type AuthHandler struct {
	Staff staff.StaffService
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Staff.Authenticate(req.Email, req.Password, req.Role)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.String("role", req.Role))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MeHandler handles GET /api/auth/me. The staff record is attached to the
// context by the JWT middleware.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	member, ok := c.Get("staff")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, member)
}

// CreateStaffHandler handles POST /api/staff.
func (h *AuthHandler) CreateStaffHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var member models.Staff
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Staff.Create(member)
	if err != nil {
		logger.Error("Failed to create staff", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListStaffHandler handles GET /api/staff?role=doctor&role=receptionist.
// The role parameter repeats per value; with none given, all roles are
// listed.
func (h *AuthHandler) ListStaffHandler(c *gin.Context) {
	roles := c.QueryArray("role")
	if len(roles) == 0 {
		roles = []string{models.RoleAdmin, models.RoleDoctor, models.RoleReceptionist, models.RoleMedical}
	}
	members, err := h.Staff.ListByRoles(roles)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, members)
}

// DeleteStaffHandler handles DELETE /api/staff/:id.
func (h *AuthHandler) DeleteStaffHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Staff.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff deleted"})
}
