package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"opdcare/config"
	counterRepo "opdcare/database/repository/counter"
	"opdcare/models"
	"opdcare/services/patientreg"
	"opdcare/utils"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// PaymentService defines business logic for collecting consultation fees
// through the payment gateway.
type PaymentService interface {
	// CreateOrder opens a gateway order for the registration's fee and
	// returns the fields the checkout widget needs.
	CreateOrder(patientID string) (*models.PaymentOrder, error)
	// Verify checks the gateway callback signature and, when valid, marks
	// the registration paid.
	Verify(patientID string, v models.PaymentVerification) error
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Patients  patientreg.PatientService
	Sequences counterRepo.SequenceRepository
	client    *razorpay.Client
}

// NewDefaultPaymentService builds the service from the application config.
func NewDefaultPaymentService(patients patientreg.PatientService, sequences counterRepo.SequenceRepository) (*DefaultPaymentService, error) {
	cfg := config.AppConfig
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		return nil, fmt.Errorf("razorpay credentials not set in configuration")
	}
	return &DefaultPaymentService{
		Patients:  patients,
		Sequences: sequences,
		client:    razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
	}, nil
}

func (s *DefaultPaymentService) CreateOrder(patientID string) (*models.PaymentOrder, error) {
	patient, err := s.Patients.GetByID(patientID)
	if err != nil {
		return nil, err
	}
	if patient.FeeStatus == models.FeePaid {
		return nil, fmt.Errorf("registration %s is already paid", patientID)
	}
	if patient.Fees <= 0 {
		return nil, fmt.Errorf("registration %s has no fee to collect", patientID)
	}

	seq, err := s.Sequences.Next("payment_receipt")
	if err != nil {
		return nil, err
	}
	receipt := fmt.Sprintf("opd-rcpt-%06d", seq)

	// Gateway amounts are in the smallest currency unit.
	amount := int64(patient.Fees * 100)
	body, err := s.client.Order.Create(map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  receipt,
		"notes": map[string]interface{}{
			"patientId": patient.ID,
			"doctorId":  patient.DoctorID,
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}
	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("payment gateway returned no order id")
	}

	utils.GetLogger().Info("payment order created",
		zap.String("patientID", patient.ID),
		zap.String("orderID", orderID),
		zap.Int64("amount", amount))

	return &models.PaymentOrder{
		OrderID:  orderID,
		Amount:   amount,
		Currency: "INR",
		Receipt:  receipt,
		Key:      config.AppConfig.RazorpayKeyID,
	}, nil
}

func (s *DefaultPaymentService) Verify(patientID string, v models.PaymentVerification) error {
	if !VerifySignature(v, config.AppConfig.RazorpayKeySecret) {
		utils.GetLogger().Warn("payment signature mismatch",
			zap.String("patientID", patientID),
			zap.String("orderID", v.OrderID))
		return fmt.Errorf("payment signature verification failed")
	}

	patient, err := s.Patients.GetByID(patientID)
	if err != nil {
		return err
	}
	if _, err := s.Patients.RecordPayment(patientID, patient.Fees); err != nil {
		return err
	}
	utils.GetLogger().Info("payment verified",
		zap.String("patientID", patientID),
		zap.String("paymentID", v.PaymentID))
	return nil
}

// VerifySignature checks the gateway's HMAC-SHA256 over "orderID|paymentID"
// with the key secret, in constant time.
func VerifySignature(v models.PaymentVerification, secret string) bool {
	if v.OrderID == "" || v.PaymentID == "" || v.Signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(v.OrderID + "|" + v.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(v.Signature))
}
