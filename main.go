package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opdcare/config"
	"opdcare/cron"
	"opdcare/database"
	appointmentRepoPkg "opdcare/database/repository/appointment"
	counterRepoPkg "opdcare/database/repository/counter"
	medicineRepoPkg "opdcare/database/repository/medicine"
	registrationRepoPkg "opdcare/database/repository/registration"
	staffRepoPkg "opdcare/database/repository/staff"
	"opdcare/handlers"
	"opdcare/routes"
	"opdcare/services/appointment"
	"opdcare/services/inventory"
	"opdcare/services/medicalrecords"
	"opdcare/services/notification"
	"opdcare/services/patientreg"
	"opdcare/services/payment"
	"opdcare/services/prescription"
	"opdcare/services/scheduling"
	"opdcare/services/staff"
	"opdcare/services/storage"
	"opdcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Document storage is optional in development; prescriptions still save
	// without a PDF copy.
	var storageSvc storage.StorageService
	if cld, err := storage.NewCloudinaryStorage(); err != nil {
		logger.Sugar().Warnf("main: document storage disabled: %v", err)
	} else {
		storageSvc = cld
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	staffRepo := staffRepoPkg.NewMongoStaffRepo()
	registrationRepo := registrationRepoPkg.NewMongoRegistrationRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	medicineRepo := medicineRepoPkg.NewMongoMedicineRepo()
	sequenceRepo := counterRepoPkg.NewMongoSequenceRepo()

	// Task queue client for outbound messages.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	notifier, err := notification.NewDefaultNotificationService(asynqClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	// Services.
	engine := scheduling.NewDefaultEngine(staffRepo, registrationRepo)
	staffService := &staff.DefaultStaffService{Repo: staffRepo}
	patientService := &patientreg.DefaultPatientService{
		Engine:        engine,
		Registrations: registrationRepo,
		Staff:         staffRepo,
		Notifier:      notifier,
	}
	appointmentService := &appointment.DefaultAppointmentService{
		Repo:     appointmentRepo,
		Staff:    staffRepo,
		Notifier: notifier,
	}
	inventoryService := &inventory.DefaultInventoryService{Repo: medicineRepo}
	prescriptionService := &prescription.DefaultPrescriptionService{
		Registrations: registrationRepo,
		Inventory:     inventoryService,
		Storage:       storageSvc,
	}
	recordsService := &medicalrecords.DefaultRecordsService{Registrations: registrationRepo}

	// The payment gateway is optional; its endpoints report unavailable
	// when credentials are missing.
	var paymentService payment.PaymentService
	if svc, err := payment.NewDefaultPaymentService(patientService, sequenceRepo); err != nil {
		logger.Sugar().Warnf("main: payment gateway disabled: %v", err)
	} else {
		paymentService = svc
	}

	// Handlers.
	authHandler := &handlers.AuthHandler{Staff: staffService}
	doctorHandler := &handlers.DoctorHandler{
		Staff:         staffService,
		StaffRepo:     staffRepo,
		Registrations: registrationRepo,
	}
	patientHandler := &handlers.PatientHandler{Patients: patientService}
	appointmentHandler := &handlers.AppointmentHandler{Appointments: appointmentService}
	inventoryHandler := &handlers.InventoryHandler{Inventory: inventoryService}
	prescriptionHandler := &handlers.PrescriptionHandler{Prescriptions: prescriptionService}
	recordsHandler := &handlers.MedicalRecordsHandler{Records: recordsService}
	paymentHandler := &handlers.PaymentHandler{Payments: paymentService}

	handlerBundle := &handlers.HandlerBundle{
		StaffRepo: staffRepo,

		LoginHandler:       authHandler.LoginHandler,
		MeHandler:          authHandler.MeHandler,
		CreateStaffHandler: authHandler.CreateStaffHandler,
		ListStaffHandler:   authHandler.ListStaffHandler,
		DeleteStaffHandler: authHandler.DeleteStaffHandler,

		ListDoctorsHandler:     doctorHandler.ListDoctorsHandler,
		GetDoctorHandler:       doctorHandler.GetDoctorHandler,
		UpdateDoctorHandler:    doctorHandler.UpdateDoctorHandler,
		SetDailyLimitHandler:   doctorHandler.SetDailyLimitHandler,
		SetAvailabilityHandler: doctorHandler.SetAvailabilityHandler,
		SetScheduleHandler:     doctorHandler.SetScheduleHandler,
		AvailableSlotsHandler:  doctorHandler.AvailableSlotsHandler,
		DoctorStatsHandler:     doctorHandler.DoctorStatsHandler,
		QueueHandler:           patientHandler.QueueHandler,

		RegisterPatientHandler:     patientHandler.RegisterPatientHandler,
		GetPatientHandler:          patientHandler.GetPatientHandler,
		ListPatientsHandler:        patientHandler.ListPatientsHandler,
		UpdatePatientStatusHandler: patientHandler.UpdatePatientStatusHandler,
		CancelPatientHandler:       patientHandler.CancelPatientHandler,

		SavePrescriptionHandler:     prescriptionHandler.SavePrescriptionHandler,
		DispensePrescriptionHandler: prescriptionHandler.DispensePrescriptionHandler,
		PrescriptionPDFHandler:      prescriptionHandler.PrescriptionPDFHandler,

		ListPrescriptionRecordsHandler: recordsHandler.ListPrescriptionRecordsHandler,
		GetPrescriptionRecordHandler:   recordsHandler.GetPrescriptionRecordHandler,
		PrescriptionStatsHandler:       recordsHandler.PrescriptionStatsHandler,

		CreatePaymentOrderHandler: paymentHandler.CreatePaymentOrderHandler,
		VerifyPaymentHandler:      paymentHandler.VerifyPaymentHandler,

		CreateAppointmentHandler:    appointmentHandler.CreateAppointmentHandler,
		GetAppointmentHandler:       appointmentHandler.GetAppointmentHandler,
		ListAppointmentsHandler:     appointmentHandler.ListAppointmentsHandler,
		UpdateAppointmentHandler:    appointmentHandler.UpdateAppointmentHandler,
		DeleteAppointmentHandler:    appointmentHandler.DeleteAppointmentHandler,
		ResendAppointmentSMSHandler: appointmentHandler.ResendAppointmentSMSHandler,

		ListMedicinesHandler:      inventoryHandler.ListMedicinesHandler,
		InventoryStatsHandler:     inventoryHandler.InventoryStatsHandler,
		CreateMedicineHandler:     inventoryHandler.CreateMedicineHandler,
		GetMedicineHandler:        inventoryHandler.GetMedicineHandler,
		UpdateMedicineHandler:     inventoryHandler.UpdateMedicineHandler,
		DeactivateMedicineHandler: inventoryHandler.DeactivateMedicineHandler,
		AdjustStockHandler:        inventoryHandler.AdjustStockHandler,
		SuggestMedicinesHandler:   inventoryHandler.SuggestMedicinesHandler,
		ListTransactionsHandler:   inventoryHandler.ListTransactionsHandler,
		ImportMedicinesHandler:    inventoryHandler.ImportMedicinesHandler,
		ExportMedicinesHandler:    inventoryHandler.ExportMedicinesHandler,
		SyncMedicinesHandler:      inventoryHandler.SyncMedicinesHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background workers: message delivery and the daily inventory sweep.
	cron.InitNotificationWorker(notification.NewTwilioSender(), appointmentService)
	inventorySweep := cron.InitInventorySweep(inventoryService)
	defer inventorySweep.Stop()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
