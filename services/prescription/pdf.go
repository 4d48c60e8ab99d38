package prescription

import (
	"bytes"
	"fmt"
	"io"

	"opdcare/models"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF lays out a printable prescription for the registration.
func RenderPDF(patient *models.Patient) (io.Reader, error) {
	if patient.Prescription == nil {
		return nil, fmt.Errorf("registration %s has no prescription", patient.ID)
	}
	p := patient.Prescription

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("OPD Prescription", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "OPD Prescription", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Patient: %s (%d, %s)", patient.FullName, patient.Age, patient.Gender), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Doctor: Dr. %s", patient.DoctorName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Date: %s    Token: %d", patient.RegistrationDate.Format("02 Jan 2006"), patient.TokenNumber), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Diagnosis", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, p.Diagnosis, "", "L", false)
	pdf.Ln(2)

	if len(p.Medicines) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Medicines", "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(80, 7, "Medicine", "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, "Dosage", "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, "Duration", "1", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, m := range p.Medicines {
			pdf.CellFormat(80, 7, m.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 7, m.Dosage, "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 7, m.Duration, "1", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	if p.Notes != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, p.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render prescription PDF: %w", err)
	}
	return &buf, nil
}
