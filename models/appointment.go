package models

import "time"

// Appointment status values.
const (
	AppointmentScheduled = "scheduled"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a pre-booked future visit, distinct from a same-day OPD
// registration. AppointmentDate carries the calendar date; AppointmentTime
// is the requested "HH:MM" wall-clock time.
type Appointment struct {
	ID              string     `bson:"id" json:"id"`
	PatientName     string     `bson:"patient_name" json:"patientName"`
	MobileNumber    string     `bson:"mobile_number" json:"mobileNumber"`
	Email           string     `bson:"email,omitempty" json:"email,omitempty"`
	AppointmentDate time.Time  `bson:"appointment_date" json:"appointmentDate"`
	AppointmentTime string     `bson:"appointment_time" json:"appointmentTime"`
	DoctorID        string     `bson:"doctor_id" json:"doctorId"`
	DoctorName      string     `bson:"doctor_name,omitempty" json:"doctorName,omitempty"`
	Reason          string     `bson:"reason,omitempty" json:"reason,omitempty"`
	Notes           string     `bson:"notes,omitempty" json:"notes,omitempty"`
	Status          string     `bson:"status" json:"status"`
	SMSSent         bool       `bson:"sms_sent" json:"smsSent"`
	SMSSentAt       *time.Time `bson:"sms_sent_at,omitempty" json:"smsSentAt,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updatedAt"`
}
