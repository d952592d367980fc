package http

import (
	"net/http"

	"healthcare-admin-api/internal/delivery/http/handler"
	"healthcare-admin-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	appointmentHandler   *handler.AppointmentHandler
	billingHandler       *handler.BillingHandler
	notificationHandler  *handler.NotificationHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	patientHandler       *handler.PatientHandler
	doctorHandler        *handler.DoctorHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	billingHandler *handler.BillingHandler,
	notificationHandler *handler.NotificationHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		appointmentHandler:   appointmentHandler,
		billingHandler:       billingHandler,
		notificationHandler:  notificationHandler,
		medicalRecordHandler: medicalRecordHandler,
		patientHandler:       patientHandler,
		doctorHandler:        doctorHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Appointment routes (any authenticated role; ownership checks in usecase)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/me", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)

	// Doctor-facing appointment views and clinical updates
	doctorAppointments := api.PathPrefix("/doctor").Subrouter()
	doctorAppointments.Use(r.authMiddleware.Authenticate)
	doctorAppointments.Use(middleware.RequireDoctor)
	doctorAppointments.HandleFunc("/appointments", r.appointmentHandler.GetDoctorAppointments).Methods(http.MethodGet)

	// Doctor directory (any authenticated user, patients pick a doctor here)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)

	// Patient profile (self-service)
	profile := api.PathPrefix("/profile").Subrouter()
	profile.Use(r.authMiddleware.Authenticate)
	profile.Use(middleware.RequirePatient)
	profile.HandleFunc("", r.patientHandler.GetMyProfile).Methods(http.MethodGet)
	profile.HandleFunc("", r.patientHandler.UpdateMyProfile).Methods(http.MethodPut)

	// Patient listing for clinical staff
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequireAdminOrDoctor)
	patients.HandleFunc("", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	patients.HandleFunc("/{patientId}/medical-records", r.medicalRecordHandler.GetPatientRecords).Methods(http.MethodGet)

	// Billing routes
	billing := api.PathPrefix("/billing").Subrouter()
	billing.Use(r.authMiddleware.Authenticate)
	billing.HandleFunc("/me", r.billingHandler.GetMyBilling).Methods(http.MethodGet)
	billing.HandleFunc("/invoice/{invoiceNumber}", r.billingHandler.GetBillingByInvoice).Methods(http.MethodGet)
	billing.HandleFunc("/{id}", r.billingHandler.GetBilling).Methods(http.MethodGet)
	billing.HandleFunc("/{id}/pay", r.billingHandler.ProcessPayment).Methods(http.MethodPost)

	// Medical records
	records := api.PathPrefix("/medical-records").Subrouter()
	records.Use(r.authMiddleware.Authenticate)
	records.HandleFunc("/me", r.medicalRecordHandler.GetMyRecords).Methods(http.MethodGet)
	records.HandleFunc("/{id}", r.medicalRecordHandler.GetRecord).Methods(http.MethodGet)

	recordsWrite := api.PathPrefix("/medical-records").Subrouter()
	recordsWrite.Use(r.authMiddleware.Authenticate)
	recordsWrite.Use(middleware.RequireAdminOrDoctor)
	recordsWrite.HandleFunc("", r.medicalRecordHandler.CreateRecord).Methods(http.MethodPost)
	recordsWrite.HandleFunc("/{id}", r.medicalRecordHandler.UpdateRecord).Methods(http.MethodPut)

	// Notifications (own inbox)
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.GetMyNotifications).Methods(http.MethodGet)
	notifications.HandleFunc("/unread-count", r.notificationHandler.GetUnreadCount).Methods(http.MethodGet)
	notifications.HandleFunc("/read-all", r.notificationHandler.MarkAllRead).Methods(http.MethodPost)
	notifications.HandleFunc("/{id}/read", r.notificationHandler.MarkRead).Methods(http.MethodPost)
	notifications.HandleFunc("/{id}", r.notificationHandler.DeleteNotification).Methods(http.MethodDelete)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Appointment administration
	admin.HandleFunc("/appointments", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)

	// Billing administration (admin issues, adjusts and removes invoices)
	admin.HandleFunc("/billing", r.billingHandler.CreateBilling).Methods(http.MethodPost)
	admin.HandleFunc("/billing", r.billingHandler.GetAllBilling).Methods(http.MethodGet)
	admin.HandleFunc("/billing/{id}", r.billingHandler.UpdateBilling).Methods(http.MethodPut)
	admin.HandleFunc("/billing/{id}", r.billingHandler.DeleteBilling).Methods(http.MethodDelete)

	// Medical record removal (admin only)
	admin.HandleFunc("/medical-records/{id}", r.medicalRecordHandler.DeleteRecord).Methods(http.MethodDelete)

	// Manual notification dispatch
	admin.HandleFunc("/notifications", r.notificationHandler.CreateNotification).Methods(http.MethodPost)

	// Audit trail
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
