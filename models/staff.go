package models

import "time"

// Staff roles used across the API.
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleReceptionist = "receptionist"
	RoleMedical      = "medical"
)

// VisitingPeriod describes one configurable block of a doctor's day
// (morning, afternoon or evening). Times are "HH:MM" on a 24-hour clock.
type VisitingPeriod struct {
	Enabled   bool   `bson:"enabled" json:"enabled"`
	StartTime string `bson:"start_time" json:"startTime"`
	EndTime   string `bson:"end_time" json:"endTime"`
}

// Staff represents a hospital staff account. Doctors carry the scheduling
// configuration (daily limit, weekly schedule, visiting hours); other roles
// leave those fields empty.
//
// Absence has a documented meaning for the optional scheduling fields:
//   - WeeklySchedule nil, or a weekday entry missing/nil: the doctor accepts
//     visits that weekday. Only an explicit false blocks a weekday.
//   - VisitingHours nil or a period missing/disabled: no time restriction
//     for that period; a doctor with no configured hours at all is bookable
//     at any time.
//
// Doctors created before these fields existed therefore remain fully
// bookable.
type Staff struct {
	ID                string                     `bson:"id" json:"id"`
	FullName          string                     `bson:"full_name" json:"fullName"`
	Email             string                     `bson:"email" json:"email"`
	Password          string                     `bson:"password" json:"-"`
	Role              string                     `bson:"role" json:"role"`
	Specialization    string                     `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Qualification     string                     `bson:"qualification,omitempty" json:"qualification,omitempty"`
	Fees              float64                    `bson:"fees,omitempty" json:"fees,omitempty"`
	MobileNumber      string                     `bson:"mobile_number,omitempty" json:"mobileNumber,omitempty"`
	ClinicAddress     string                     `bson:"clinic_address,omitempty" json:"clinicAddress,omitempty"`
	IsActive          bool                       `bson:"is_active" json:"isActive"`
	IsAvailable       *bool                      `bson:"is_available,omitempty" json:"isAvailable,omitempty"`
	UnavailableReason string                     `bson:"unavailable_reason,omitempty" json:"unavailableReason,omitempty"`
	DailyPatientLimit int                        `bson:"daily_patient_limit,omitempty" json:"dailyPatientLimit,omitempty"`
	WeeklySchedule    map[string]*bool           `bson:"weekly_schedule,omitempty" json:"weeklySchedule,omitempty"`
	VisitingHours     map[string]*VisitingPeriod `bson:"visiting_hours,omitempty" json:"visitingHours,omitempty"`
	CreatedAt         time.Time                  `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time                  `bson:"updated_at" json:"updatedAt"`
}

// Available reports the doctor's manual availability toggle; an unset flag
// means available.
func (s *Staff) Available() bool {
	return s.IsAvailable == nil || *s.IsAvailable
}
