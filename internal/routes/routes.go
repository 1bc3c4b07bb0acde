package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/careflowcentral/careflow-backend/internal/handlers"
	"github.com/careflowcentral/careflow-backend/internal/middleware"
	"github.com/careflowcentral/careflow-backend/internal/models"
)

// Register mounts every API route with its authentication and role
// requirements. Role allow-lists live here and nowhere else.
func Register(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handlers.Register)
		r.Post("/login", handlers.Login)
		r.With(middleware.Protect).Get("/me", handlers.GetAuthMe)

		r.Route("/caregiver", func(r chi.Router) {
			r.Post("/login", handlers.CaregiverLogin)
			r.With(middleware.Protect, middleware.Authorize(models.RoleCaregiver)).
				Put("/password", handlers.UpdateCaregiverPassword)
			r.With(middleware.Protect, middleware.Authorize(models.RoleAdmin)).
				Post("/reset-password", handlers.ResetCaregiverPassword)
		})
	})

	// Public staff application form
	r.Post("/api/staff-onboarding", handlers.SubmitOnboarding)

	r.Route("/api/clients", func(r chi.Router) {
		r.Use(middleware.Protect)
		r.With(middleware.Authorize(models.RoleAdmin)).Get("/stats", handlers.GetClientStats)
		r.With(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin)).Post("/", handlers.CreateClient)
		r.With(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin)).Get("/", handlers.GetClients)
		r.With(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin, models.RoleClient)).Get("/{id}", handlers.GetClient)
		r.With(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin, models.RoleClient)).Put("/{id}", handlers.UpdateClient)
		r.With(middleware.Authorize(models.RoleAdmin)).Delete("/{id}", handlers.DeleteClient)
	})

	r.Route("/api/patients", func(r chi.Router) {
		r.Use(middleware.Protect)
		r.With(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin)).Post("/", handlers.CreatePatient)
		r.With(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin)).Get("/", handlers.GetPatients)
		r.With(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin, models.RoleClient)).Get("/{id}", handlers.GetPatient)
		r.With(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin, models.RoleClient)).Put("/{id}", handlers.UpdatePatient)
		r.With(middleware.Authorize(models.RoleAdmin)).Delete("/{id}", handlers.DeletePatient)
	})

	r.Route("/api/staff", func(r chi.Router) {
		r.Use(middleware.Protect)
		r.With(middleware.Authorize(models.RoleAdmin)).Post("/", handlers.CreateStaff)
		r.With(middleware.Authorize(models.RoleAdmin, models.RoleStaff, models.RoleClient)).Get("/", handlers.GetAllStaff)
		r.With(middleware.Authorize(models.RoleAdmin, models.RoleStaff, models.RoleClient)).Get("/{id}", handlers.GetStaff)
		r.With(middleware.Authorize(models.RoleAdmin, models.RoleStaff)).Put("/{id}", handlers.UpdateStaff)
		r.With(middleware.Authorize(models.RoleAdmin)).Delete("/{id}", handlers.DeleteStaff)
	})

	r.Route("/api/appointments", func(r chi.Router) {
		r.Use(middleware.Protect)
		allowed := middleware.Authorize(models.RoleCaregiver, models.RoleAdmin, models.RoleClient)
		r.With(allowed).Post("/", handlers.CreateAppointment)
		r.With(allowed).Get("/", handlers.GetAppointments)
		r.With(allowed).Get("/{id}", handlers.GetAppointment)
		r.With(allowed).Put("/{id}", handlers.UpdateAppointment)
		r.With(middleware.Authorize(models.RoleAdmin)).Delete("/{id}", handlers.DeleteAppointment)
	})

	r.Route("/api/careplans", func(r chi.Router) {
		r.Use(middleware.Protect)
		r.With(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin)).Post("/", handlers.CreateCarePlan)
		r.With(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin, models.RoleClient)).Get("/", handlers.GetCarePlans)
		r.With(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin, models.RoleClient)).Get("/{id}", handlers.GetCarePlan)
		r.With(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin)).Put("/{id}", handlers.UpdateCarePlan)
		r.With(middleware.Authorize(models.RoleAdmin)).Delete("/{id}", handlers.DeleteCarePlan)
	})

	r.Route("/api/caregivers", func(r chi.Router) {
		// Availability is consulted by the booking frontend before sign-in
		r.Get("/available", handlers.GetAvailableCaregivers)
		r.With(middleware.Protect, middleware.Authorize(models.RoleCaregiver)).Get("/me", handlers.GetCaregiverMe)
		r.With(middleware.Protect, middleware.Authorize(models.RoleAdmin)).Get("/", handlers.GetAllCaregivers)
	})

	r.Route("/api/visits", func(r chi.Router) {
		r.Use(middleware.Protect)
		r.Use(middleware.Authorize(models.RoleCaregiver, models.RoleAdmin, models.RoleStaff))
		r.Post("/", handlers.CreateVisit)
		r.Get("/", handlers.GetVisits)
		r.Get("/{id}", handlers.GetVisit)
		r.Put("/{id}", handlers.UpdateVisit)
		r.Delete("/{id}", handlers.DeleteVisit)
		r.Post("/{id}/check-in", handlers.CheckInVisit)
		r.Post("/{id}/check-out", handlers.CheckOutVisit)
	})

	r.Route("/api/shifts", func(r chi.Router) {
		r.Use(middleware.Protect)
		r.Use(middleware.Authorize(models.RoleAdmin))
		r.Post("/", handlers.CreateShift)
		r.Get("/", handlers.GetShifts)
		r.Put("/{id}", handlers.UpdateShift)
		r.Delete("/{id}", handlers.DeleteShift)
	})

	r.With(middleware.Protect).Post("/api/upload", handlers.UploadFile)

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.Protect)
		r.Use(middleware.Authorize(models.RoleAdmin))
		r.Get("/", handlers.GetUsers)
		r.Get("/email/{email}", handlers.GetUserByEmail)
		r.Get("/{id}", handlers.GetUser)
		r.Put("/{id}", handlers.UpdateUser)
		r.Delete("/{id}", handlers.DeleteUser)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Protect)
		r.Use(middleware.Authorize(models.RoleAdmin))
		r.Get("/clients", handlers.AdminListClients)
		r.Get("/caregivers", handlers.AdminListCaregivers)
		r.Post("/appointments", handlers.AdminScheduleAppointment)
		r.Put("/unblock-ip", handlers.AdminUnblockIP)
	})
}
