package models

import "time"

// Patient status values.
const (
	PatientWaiting    = "waiting"
	PatientInProgress = "in-progress"
	PatientCompleted  = "completed"
	PatientCancelled  = "cancelled"
)

// Fee status values.
const (
	FeePaid        = "paid"
	FeePending     = "pending"
	FeeNotRequired = "not_required"
)

// PrescribedMedicine is one line of a prescription.
type PrescribedMedicine struct {
	Name     string `bson:"name" json:"name"`
	Dosage   string `bson:"dosage,omitempty" json:"dosage,omitempty"`
	Duration string `bson:"duration,omitempty" json:"duration,omitempty"`
}

// Prescription is written by the doctor onto a patient registration.
type Prescription struct {
	Diagnosis   string               `bson:"diagnosis" json:"diagnosis"`
	Medicines   []PrescribedMedicine `bson:"medicines" json:"medicines"`
	Notes       string               `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
	PDFPublicID string               `bson:"pdf_public_id,omitempty" json:"pdfPublicId,omitempty"`
}

// Patient is a single OPD registration: one visit by one patient to one
// doctor on one day. TokenNumber is the queue position for that doctor on
// the calendar day of RegistrationDate.
type Patient struct {
	ID                 string        `bson:"id" json:"id"`
	FullName           string        `bson:"full_name" json:"fullName"`
	MobileNumber       string        `bson:"mobile_number" json:"mobileNumber"`
	Address            string        `bson:"address" json:"address"`
	Age                int           `bson:"age" json:"age"`
	Gender             string        `bson:"gender,omitempty" json:"gender,omitempty"`
	Disease            string        `bson:"disease" json:"disease"`
	DoctorID           string        `bson:"doctor_id" json:"doctorId"`
	DoctorName         string        `bson:"doctor_name,omitempty" json:"doctorName,omitempty"`
	Fees               float64       `bson:"fees" json:"fees"`
	FeeStatus          string        `bson:"fee_status" json:"feeStatus"`
	PaymentDate        *time.Time    `bson:"payment_date,omitempty" json:"paymentDate,omitempty"`
	PaymentAmount      float64       `bson:"payment_amount,omitempty" json:"paymentAmount,omitempty"`
	TokenNumber        int           `bson:"token_number" json:"tokenNumber"`
	RegistrationDate   time.Time     `bson:"registration_date" json:"registrationDate"`
	Status             string        `bson:"status" json:"status"`
	IsRecheck          bool          `bson:"is_recheck,omitempty" json:"isRecheck,omitempty"`
	IsCancelled        bool          `bson:"is_cancelled,omitempty" json:"isCancelled,omitempty"`
	CancelledAt        *time.Time    `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancellationReason string        `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	Prescription       *Prescription `bson:"prescription,omitempty" json:"prescription,omitempty"`
	CreatedAt          time.Time     `bson:"created_at" json:"createdAt"`
}
