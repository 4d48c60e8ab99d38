package staff

import (
	"fmt"
	"strings"
	"time"

	staffRepo "opdcare/database/repository/staff"
	"opdcare/models"
	"opdcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// defaultDailyPatientLimit applies to newly created doctors until an admin
// changes it.
const defaultDailyPatientLimit = 20

// AuthResponse contains the authenticated staff member and their JWT.
type AuthResponse struct {
	Staff *models.Staff `json:"staff"`
	Token string        `json:"token"`
}

// ScheduleRequest updates a doctor's weekly schedule and visiting hours.
// Nil maps leave the corresponding configuration untouched.
type ScheduleRequest struct {
	WeeklySchedule map[string]*bool                  `json:"weeklySchedule"`
	VisitingHours  map[string]*models.VisitingPeriod `json:"visitingHours"`
}

// AvailabilityRequest toggles a doctor's manual availability flag.
type AvailabilityRequest struct {
	IsAvailable bool   `json:"isAvailable"`
	Reason      string `json:"reason"`
}

// StaffService defines business logic for staff accounts and doctor
// configuration.
type StaffService interface {
	Create(s models.Staff) (*models.Staff, error)
	// Authenticate verifies credentials for the given role and returns a
	// signed token.
	Authenticate(email, password, role string) (*AuthResponse, error)
	GetByID(id string) (*models.Staff, error)
	Update(s models.Staff) (*models.Staff, error)
	Delete(id string) error
	ListDoctors() ([]models.Staff, error)
	ListByRoles(roles []string) ([]models.Staff, error)
	SetDailyLimit(doctorID string, limit int) (*models.Staff, error)
	SetAvailability(doctorID string, req AvailabilityRequest) (*models.Staff, error)
	SetSchedule(doctorID string, req ScheduleRequest) (*models.Staff, error)
}

// DefaultStaffService is the production implementation.
type DefaultStaffService struct {
	Repo staffRepo.StaffRepository
}

var validRoles = map[string]bool{
	models.RoleAdmin:        true,
	models.RoleDoctor:       true,
	models.RoleReceptionist: true,
	models.RoleMedical:      true,
}

var weekdayNames = map[string]bool{
	"sunday": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true,
}

var periodNames = map[string]bool{
	"morning": true, "afternoon": true, "evening": true,
}

func (s *DefaultStaffService) Create(member models.Staff) (*models.Staff, error) {
	if member.Email == "" || member.Password == "" {
		return nil, fmt.Errorf("staff email and password are required")
	}
	if member.FullName == "" {
		return nil, fmt.Errorf("staff full name is required")
	}
	if !validRoles[member.Role] {
		return nil, fmt.Errorf("invalid staff role %q", member.Role)
	}

	member.Email = strings.ToLower(strings.TrimSpace(member.Email))
	if existing, err := s.Repo.GetByEmail(member.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("staff with email %s already exists", member.Email)
	} else if err != nil && err != staffRepo.ErrNotFound {
		return nil, fmt.Errorf("failed to check for existing staff: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(member.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	member.Password = string(hashed)

	member.ID = uuid.New().String()
	member.IsActive = true
	if member.Role == models.RoleDoctor && member.DailyPatientLimit == 0 {
		member.DailyPatientLimit = defaultDailyPatientLimit
	}
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now

	if err := s.Repo.Create(&member); err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	utils.GetLogger().Info("staff created",
		zap.String("staffID", member.ID), zap.String("role", member.Role))
	return &member, nil
}

func (s *DefaultStaffService) Authenticate(email, password, role string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	member, err := s.Repo.GetByEmailAndRole(email, role)
	if err != nil {
		if err == staffRepo.ErrNotFound {
			return nil, fmt.Errorf("invalid credentials")
		}
		return nil, fmt.Errorf("failed to look up staff: %w", err)
	}
	if !member.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := utils.GenerateToken(member.ID, member.Role, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{Staff: member, Token: token}, nil
}

func (s *DefaultStaffService) GetByID(id string) (*models.Staff, error) {
	return s.Repo.GetByID(id)
}

func (s *DefaultStaffService) Update(member models.Staff) (*models.Staff, error) {
	existing, err := s.Repo.GetByID(member.ID)
	if err != nil {
		return nil, err
	}
	// Credentials and role changes go through dedicated flows.
	member.Password = existing.Password
	member.Role = existing.Role
	member.CreatedAt = existing.CreatedAt
	member.UpdatedAt = time.Now()
	if err := s.Repo.Update(&member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *DefaultStaffService) Delete(id string) error {
	return s.Repo.Delete(id)
}

func (s *DefaultStaffService) ListDoctors() ([]models.Staff, error) {
	return s.Repo.ListActiveDoctors()
}

func (s *DefaultStaffService) ListByRoles(roles []string) ([]models.Staff, error) {
	for _, r := range roles {
		if !validRoles[r] {
			return nil, fmt.Errorf("invalid staff role %q", r)
		}
	}
	return s.Repo.ListByRoles(roles)
}

func (s *DefaultStaffService) SetDailyLimit(doctorID string, limit int) (*models.Staff, error) {
	if limit < 1 || limit > 100 {
		return nil, fmt.Errorf("daily patient limit must be between 1 and 100")
	}
	doctor, err := s.Repo.GetDoctorByID(doctorID)
	if err != nil {
		return nil, err
	}
	doctor.DailyPatientLimit = limit
	doctor.UpdatedAt = time.Now()
	if err := s.Repo.Update(doctor); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("daily patient limit updated",
		zap.String("doctorID", doctorID), zap.Int("limit", limit))
	return doctor, nil
}

func (s *DefaultStaffService) SetAvailability(doctorID string, req AvailabilityRequest) (*models.Staff, error) {
	doctor, err := s.Repo.GetDoctorByID(doctorID)
	if err != nil {
		return nil, err
	}
	doctor.IsAvailable = &req.IsAvailable
	if req.IsAvailable {
		doctor.UnavailableReason = ""
	} else {
		doctor.UnavailableReason = req.Reason
	}
	doctor.UpdatedAt = time.Now()
	if err := s.Repo.Update(doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *DefaultStaffService) SetSchedule(doctorID string, req ScheduleRequest) (*models.Staff, error) {
	doctor, err := s.Repo.GetDoctorByID(doctorID)
	if err != nil {
		return nil, err
	}

	if req.WeeklySchedule != nil {
		for day := range req.WeeklySchedule {
			if !weekdayNames[day] {
				return nil, fmt.Errorf("invalid weekday %q in weekly schedule", day)
			}
		}
		doctor.WeeklySchedule = req.WeeklySchedule
	}
	if req.VisitingHours != nil {
		for name, period := range req.VisitingHours {
			if !periodNames[name] {
				return nil, fmt.Errorf("invalid visiting period %q", name)
			}
			if period == nil || !period.Enabled {
				continue
			}
			start, err := parseHHMM(period.StartTime)
			if err != nil {
				return nil, fmt.Errorf("invalid start time for %s: %w", name, err)
			}
			end, err := parseHHMM(period.EndTime)
			if err != nil {
				return nil, fmt.Errorf("invalid end time for %s: %w", name, err)
			}
			if end <= start {
				return nil, fmt.Errorf("visiting period %s must end after it starts", name)
			}
		}
		doctor.VisitingHours = req.VisitingHours
	}

	doctor.UpdatedAt = time.Now()
	if err := s.Repo.Update(doctor); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("doctor schedule updated", zap.String("doctorID", doctorID))
	return doctor, nil
}

func parseHHMM(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", v)
	}
	return t.Hour()*60 + t.Minute(), nil
}
