package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMedicalRecordRequest struct {
	PatientID      uuid.UUID  `json:"patient_id" validate:"required"`
	AppointmentID  *uuid.UUID `json:"appointment_id" validate:"omitempty"`
	RecordType     string     `json:"record_type" validate:"required,max=100"`
	Title          string     `json:"title" validate:"required,max=255"`
	Description    string     `json:"description" validate:"omitempty"`
	VitalSigns     string     `json:"vital_signs" validate:"omitempty"`
	Symptoms       string     `json:"symptoms" validate:"omitempty"`
	TestResults    string     `json:"test_results" validate:"omitempty"`
	Diagnosis      string     `json:"diagnosis" validate:"omitempty"`
	TreatmentNotes string     `json:"treatment_notes" validate:"omitempty"`
	FileURL        string     `json:"file_url" validate:"omitempty,max=500"`
	FileName       string     `json:"file_name" validate:"omitempty,max=255"`
	RecordedDate   *time.Time `json:"recorded_date" validate:"omitempty"`
}

type UpdateMedicalRecordRequest struct {
	RecordType     string `json:"record_type" validate:"omitempty,max=100"`
	Title          string `json:"title" validate:"omitempty,max=255"`
	Description    string `json:"description" validate:"omitempty"`
	VitalSigns     string `json:"vital_signs" validate:"omitempty"`
	Symptoms       string `json:"symptoms" validate:"omitempty"`
	TestResults    string `json:"test_results" validate:"omitempty"`
	Diagnosis      string `json:"diagnosis" validate:"omitempty"`
	TreatmentNotes string `json:"treatment_notes" validate:"omitempty"`
	FileURL        string `json:"file_url" validate:"omitempty,max=500"`
	FileName       string `json:"file_name" validate:"omitempty,max=255"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID             uuid.UUID       `json:"id"`
	PatientID      uuid.UUID       `json:"patient_id"`
	DoctorID       *uuid.UUID      `json:"doctor_id,omitempty"`
	AppointmentID  *uuid.UUID      `json:"appointment_id,omitempty"`
	RecordType     string          `json:"record_type"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	VitalSigns     string          `json:"vital_signs,omitempty"`
	Symptoms       string          `json:"symptoms,omitempty"`
	TestResults    string          `json:"test_results,omitempty"`
	Diagnosis      string          `json:"diagnosis,omitempty"`
	TreatmentNotes string          `json:"treatment_notes,omitempty"`
	FileURL        string          `json:"file_url,omitempty"`
	FileName       string          `json:"file_name,omitempty"`
	Doctor         *ProfileSummary `json:"doctor,omitempty"`
	RecordedDate   time.Time       `json:"recorded_date"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}
