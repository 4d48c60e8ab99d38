package scheduling

import "time"

// RejectReason identifies which constraint blocked a registration. The
// values are part of the API response contract.
type RejectReason string

const (
	ReasonDoctorNotFound    RejectReason = "doctor-not-found"
	ReasonDoctorUnavailable RejectReason = "doctor-unavailable"
	ReasonDateUnavailable   RejectReason = "date-unavailable"
	ReasonTimeUnavailable   RejectReason = "time-unavailable"
	ReasonLimitReached      RejectReason = "limit-reached"
)

// Request is a registration attempt against a doctor's queue. VisitDate
// ("YYYY-MM-DD") and VisitTime ("HH:MM") are optional; both empty means
// "now".
type Request struct {
	DoctorID  string
	VisitDate string
	VisitTime string
}

// Decision is the engine's verdict on a Request. On acceptance TokenNumber
// and VisitTime are set; on rejection Reason and Message carry enough
// context to render an actionable error (doctor name, counts, limits).
type Decision struct {
	Accepted bool         `json:"accepted"`
	Reason   RejectReason `json:"reason,omitempty"`
	Message  string       `json:"message,omitempty"`

	DoctorName   string `json:"doctorName,omitempty"`
	CurrentCount int    `json:"currentCount,omitempty"`
	Limit        int    `json:"limit,omitempty"`

	TokenNumber    int       `json:"tokenNumber,omitempty"`
	VisitTime      time.Time `json:"visitTime,omitempty"`
	RemainingSlots int       `json:"remainingSlots,omitempty"`
}

func rejected(reason RejectReason, message string) Decision {
	return Decision{Reason: reason, Message: message}
}
