package prescription

import (
	"context"
	"fmt"
	"time"

	registrationRepo "opdcare/database/repository/registration"
	"opdcare/models"
	"opdcare/services/inventory"
	"opdcare/services/storage"
	"opdcare/utils"

	"go.uber.org/zap"
)

// SaveRequest is the doctor's prescription form for one registration.
type SaveRequest struct {
	Diagnosis string                      `json:"diagnosis" binding:"required"`
	Medicines []models.PrescribedMedicine `json:"medicines"`
	Notes     string                      `json:"notes"`
	// MarkCompleted moves the registration off the waiting queue in the
	// same call.
	MarkCompleted bool `json:"markCompleted"`
}

// PrescriptionService defines business logic for writing and dispensing
// prescriptions.
type PrescriptionService interface {
	// Save writes the prescription onto the registration, renders the PDF
	// and stores it. PDF storage is best-effort: the prescription stands
	// even when the document cloud is unreachable.
	Save(patientID string, req SaveRequest) (*models.Patient, error)
	// Dispense decrements inventory for each prescription line.
	Dispense(patientID, performedBy string) (*inventory.DispenseReport, error)
	PDFURL(patientID string) (string, error)
}

// DefaultPrescriptionService is the production implementation.
type DefaultPrescriptionService struct {
	Registrations registrationRepo.RegistrationRepository
	Inventory     inventory.InventoryService
	Storage       storage.StorageService
}

func (s *DefaultPrescriptionService) Save(patientID string, req SaveRequest) (*models.Patient, error) {
	patient, err := s.Registrations.GetByID(patientID)
	if err != nil {
		return nil, err
	}
	if patient.IsCancelled {
		return nil, fmt.Errorf("cannot prescribe for cancelled registration %s", patientID)
	}

	patient.Prescription = &models.Prescription{
		Diagnosis: req.Diagnosis,
		Medicines: req.Medicines,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	if req.MarkCompleted {
		patient.Status = models.PatientCompleted
	}

	if s.Storage != nil {
		publicID, err := s.uploadPDF(patient)
		if err != nil {
			utils.GetLogger().Warn("failed to store prescription PDF",
				zap.String("patientID", patientID), zap.Error(err))
		} else {
			patient.Prescription.PDFPublicID = publicID
		}
	}

	if err := s.Registrations.Update(patient); err != nil {
		return nil, fmt.Errorf("failed to save prescription for %s: %w", patientID, err)
	}
	utils.GetLogger().Info("prescription saved",
		zap.String("patientID", patientID),
		zap.Int("medicines", len(req.Medicines)))
	return patient, nil
}

func (s *DefaultPrescriptionService) uploadPDF(patient *models.Patient) (string, error) {
	doc, err := RenderPDF(patient)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	name := fmt.Sprintf("prescription-%s-%s", patient.ID, time.Now().Format("20060102"))
	return s.Storage.UploadDocument(ctx, doc, "prescriptions", name)
}

func (s *DefaultPrescriptionService) Dispense(patientID, performedBy string) (*inventory.DispenseReport, error) {
	patient, err := s.Registrations.GetByID(patientID)
	if err != nil {
		return nil, err
	}
	if patient.Prescription == nil {
		return nil, fmt.Errorf("registration %s has no prescription", patientID)
	}
	return s.Inventory.Dispense(patient.Prescription.Medicines, patient.ID, performedBy)
}

func (s *DefaultPrescriptionService) PDFURL(patientID string) (string, error) {
	patient, err := s.Registrations.GetByID(patientID)
	if err != nil {
		return "", err
	}
	if patient.Prescription == nil || patient.Prescription.PDFPublicID == "" {
		return "", fmt.Errorf("registration %s has no stored prescription PDF", patientID)
	}
	if s.Storage == nil {
		return "", fmt.Errorf("document storage is not configured")
	}
	return s.Storage.DownloadURL(patient.Prescription.PDFPublicID)
}
