package routes

import (
	"net/http"
	"time"

	"opdcare/handlers"
	"opdcare/middleware"
	"opdcare/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login and staff administration endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)
		api.GET("/me", middleware.JWTAuthMiddleware(hb.StaffRepo), hb.MeHandler)
	}

	staff := r.Group("/api/staff")
	{
		staff.Use(middleware.JWTAuthMiddleware(hb.StaffRepo))
		staff.Use(middleware.RequireRoles(models.RoleAdmin))
		staff.POST("", hb.CreateStaffHandler)
		staff.GET("", hb.ListStaffHandler)
		staff.DELETE("/:id", hb.DeleteStaffHandler)
	}
}

// RegisterDoctorRoutes registers doctor profile and scheduling endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.StaffRepo))
		api.GET("", hb.ListDoctorsHandler)
		api.GET("/:id", hb.GetDoctorHandler)
		api.GET("/:id/slots", hb.AvailableSlotsHandler)
		api.GET("/:id/stats", hb.DoctorStatsHandler)
		api.GET("/:id/queue", hb.QueueHandler)

		// Configuration changes are restricted to admins and the doctors
		// themselves.
		cfg := api.Group("")
		cfg.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleDoctor))
		cfg.PUT("/:id", hb.UpdateDoctorHandler)
		cfg.PATCH("/:id/limit", hb.SetDailyLimitHandler)
		cfg.PATCH("/:id/availability", hb.SetAvailabilityHandler)
		cfg.PUT("/:id/schedule", hb.SetScheduleHandler)
	}
}

// RegisterPatientRoutes registers OPD registration, prescription and payment
// endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.StaffRepo))
		api.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleReceptionist), hb.RegisterPatientHandler)
		api.GET("", hb.ListPatientsHandler)
		api.GET("/:id", hb.GetPatientHandler)
		api.PATCH("/:id/status", hb.UpdatePatientStatusHandler)
		api.POST("/:id/cancel", middleware.RequireRoles(models.RoleAdmin, models.RoleReceptionist), hb.CancelPatientHandler)

		// Prescriptions are written by doctors and dispensed by the medical
		// store.
		api.PUT("/:id/prescription", middleware.RequireRoles(models.RoleDoctor), hb.SavePrescriptionHandler)
		api.GET("/:id/prescription/pdf", hb.PrescriptionPDFHandler)
		api.POST("/:id/dispense", middleware.RequireRoles(models.RoleAdmin, models.RoleMedical), hb.DispensePrescriptionHandler)

		// Fee collection.
		pay := api.Group("")
		pay.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleReceptionist))
		pay.POST("/:id/payment/order", hb.CreatePaymentOrderHandler)
		pay.POST("/:id/payment/verify", hb.VerifyPaymentHandler)
	}
}

// RegisterMedicalRecordRoutes registers the read-only prescription history
// endpoints.
func RegisterMedicalRecordRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/medical-records")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.StaffRepo))
		api.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleMedical, models.RoleDoctor))
		api.GET("/prescriptions", hb.ListPrescriptionRecordsHandler)
		api.GET("/prescriptions/:id", hb.GetPrescriptionRecordHandler)
		api.GET("/stats", hb.PrescriptionStatsHandler)
	}
}

// RegisterAppointmentRoutes registers appointment booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.StaffRepo))
		api.GET("", hb.ListAppointmentsHandler)
		api.GET("/:id", hb.GetAppointmentHandler)

		manage := api.Group("")
		manage.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleReceptionist))
		manage.POST("", hb.CreateAppointmentHandler)
		manage.PATCH("/:id", hb.UpdateAppointmentHandler)
		manage.DELETE("/:id", hb.DeleteAppointmentHandler)
		manage.POST("/:id/resend-sms", hb.ResendAppointmentSMSHandler)
	}
}

// RegisterInventoryRoutes registers pharmacy inventory endpoints.
func RegisterInventoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/inventory")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.StaffRepo))
		api.GET("/medicines", hb.ListMedicinesHandler)
		api.GET("/medicines/:id", hb.GetMedicineHandler)
		api.GET("/stats", hb.InventoryStatsHandler)
		api.GET("/suggest", hb.SuggestMedicinesHandler)
		api.GET("/transactions", hb.ListTransactionsHandler)

		manage := api.Group("")
		manage.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleMedical))
		manage.POST("/medicines", hb.CreateMedicineHandler)
		manage.PUT("/medicines/:id", hb.UpdateMedicineHandler)
		manage.DELETE("/medicines/:id", hb.DeactivateMedicineHandler)
		manage.POST("/medicines/:id/adjust", hb.AdjustStockHandler)

		// Bulk catalog transfer is an admin task.
		transfer := api.Group("")
		transfer.Use(middleware.RequireRoles(models.RoleAdmin))
		transfer.POST("/import", hb.ImportMedicinesHandler)
		transfer.GET("/export", hb.ExportMedicinesHandler)
		transfer.POST("/sync", hb.SyncMedicinesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "OPD service up"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterMedicalRecordRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterInventoryRoutes(r, hb)
}
