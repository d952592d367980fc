package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" validate:"omitempty"` // defaults to the caller for patients
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	ScheduledTime   time.Time `json:"scheduled_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gte=15,lte=480"`
	Type            string    `json:"type" validate:"omitempty,oneof=consultation follow_up emergency routine_checkup procedure"`
	Reason          string    `json:"reason" validate:"omitempty,max=2000"`
	Notes           string    `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateAppointmentRequest struct {
	ScheduledTime   *time.Time `json:"scheduled_time" validate:"omitempty"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,gte=15,lte=480"`
	Type            string     `json:"type" validate:"omitempty,oneof=consultation follow_up emergency routine_checkup procedure"`
	Status          string     `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled no_show rescheduled"`
	Reason          string     `json:"reason" validate:"omitempty,max=2000"`
	Notes           string     `json:"notes" validate:"omitempty,max=2000"`
	Diagnosis       string     `json:"diagnosis" validate:"omitempty,max=5000"`
	TreatmentPlan   string     `json:"treatment_plan" validate:"omitempty,max=5000"`
}

type CancelAppointmentRequest struct {
	Reason      string `json:"reason" validate:"omitempty,max=2000"`
	CancelledBy string `json:"cancelled_by" validate:"required,oneof=patient doctor"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 uuid.UUID        `json:"id"`
	PatientID          uuid.UUID        `json:"patient_id"`
	DoctorID           uuid.UUID        `json:"doctor_id"`
	Type               string           `json:"type"`
	Status             string           `json:"status"`
	ScheduledTime      time.Time        `json:"scheduled_time"`
	DurationMinutes    int              `json:"duration_minutes"`
	EndTime            time.Time        `json:"end_time"`
	Reason             string           `json:"reason,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	Diagnosis          string           `json:"diagnosis,omitempty"`
	TreatmentPlan      string           `json:"treatment_plan,omitempty"`
	CancellationReason string           `json:"cancellation_reason,omitempty"`
	CancelledBy        string           `json:"cancelled_by,omitempty"`
	Patient            *ProfileSummary  `json:"patient,omitempty"`
	Doctor             *ProfileSummary  `json:"doctor,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ProfileSummary is the short participant view embedded in appointment
// and billing responses.
type ProfileSummary struct {
	UserID         uuid.UUID `json:"user_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Specialization string    `json:"specialization,omitempty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
