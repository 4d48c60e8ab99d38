package handlers

import (
	staffRepoPkg "opdcare/database/repository/staff"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	StaffRepo staffRepoPkg.StaffRepository

	// Auth and staff administration.
	LoginHandler       gin.HandlerFunc
	MeHandler          gin.HandlerFunc
	CreateStaffHandler gin.HandlerFunc
	ListStaffHandler   gin.HandlerFunc
	DeleteStaffHandler gin.HandlerFunc

	// Doctor profiles and scheduling configuration.
	ListDoctorsHandler     gin.HandlerFunc
	GetDoctorHandler       gin.HandlerFunc
	UpdateDoctorHandler    gin.HandlerFunc
	SetDailyLimitHandler   gin.HandlerFunc
	SetAvailabilityHandler gin.HandlerFunc
	SetScheduleHandler     gin.HandlerFunc
	AvailableSlotsHandler  gin.HandlerFunc
	DoctorStatsHandler     gin.HandlerFunc
	QueueHandler           gin.HandlerFunc

	// OPD registrations.
	RegisterPatientHandler     gin.HandlerFunc
	GetPatientHandler          gin.HandlerFunc
	ListPatientsHandler        gin.HandlerFunc
	UpdatePatientStatusHandler gin.HandlerFunc
	CancelPatientHandler       gin.HandlerFunc

	// Prescriptions.
	SavePrescriptionHandler     gin.HandlerFunc
	DispensePrescriptionHandler gin.HandlerFunc
	PrescriptionPDFHandler      gin.HandlerFunc

	// Medical records.
	ListPrescriptionRecordsHandler gin.HandlerFunc
	GetPrescriptionRecordHandler   gin.HandlerFunc
	PrescriptionStatsHandler       gin.HandlerFunc

	// Payments.
	CreatePaymentOrderHandler gin.HandlerFunc
	VerifyPaymentHandler      gin.HandlerFunc

	// Appointments.
	CreateAppointmentHandler    gin.HandlerFunc
	GetAppointmentHandler       gin.HandlerFunc
	ListAppointmentsHandler     gin.HandlerFunc
	UpdateAppointmentHandler    gin.HandlerFunc
	DeleteAppointmentHandler    gin.HandlerFunc
	ResendAppointmentSMSHandler gin.HandlerFunc

	// Pharmacy inventory.
	ListMedicinesHandler      gin.HandlerFunc
	InventoryStatsHandler     gin.HandlerFunc
	CreateMedicineHandler     gin.HandlerFunc
	GetMedicineHandler        gin.HandlerFunc
	UpdateMedicineHandler     gin.HandlerFunc
	DeactivateMedicineHandler gin.HandlerFunc
	AdjustStockHandler        gin.HandlerFunc
	SuggestMedicinesHandler   gin.HandlerFunc
	ListTransactionsHandler   gin.HandlerFunc
	ImportMedicinesHandler    gin.HandlerFunc
	ExportMedicinesHandler    gin.HandlerFunc
	SyncMedicinesHandler      gin.HandlerFunc
}
