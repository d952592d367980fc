package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdatePatientProfileRequest struct {
	FullName              string `json:"full_name" validate:"omitempty,min=2"`
	Phone                 string `json:"phone" validate:"omitempty,min=7,max=20"`
	DateOfBirth           string `json:"date_of_birth" validate:"omitempty"` // Format: YYYY-MM-DD
	Gender                string `json:"gender" validate:"omitempty,oneof=male female other"`
	BloodType             string `json:"blood_type" validate:"omitempty,oneof=O+ O- A+ A- B+ B- AB+ AB-"`
	HeightCM              *int   `json:"height_cm" validate:"omitempty,gte=0,lte=300"`
	WeightKG              *int   `json:"weight_kg" validate:"omitempty,gte=0,lte=700"`
	Address               string `json:"address" validate:"omitempty"`
	City                  string `json:"city" validate:"omitempty,max=100"`
	State                 string `json:"state" validate:"omitempty,max=100"`
	Country               string `json:"country" validate:"omitempty,max=100"`
	PostalCode            string `json:"postal_code" validate:"omitempty,max=20"`
	Allergies             string `json:"allergies" validate:"omitempty"`
	MedicalHistory        string `json:"medical_history" validate:"omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name" validate:"omitempty,max=255"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"omitempty,max=20"`
}

// Response DTOs

type PatientProfileResponse struct {
	UserID                uuid.UUID  `json:"user_id"`
	Email                 string     `json:"email"`
	FullName              string     `json:"full_name"`
	Phone                 string     `json:"phone,omitempty"`
	DateOfBirth           *time.Time `json:"date_of_birth,omitempty"`
	Gender                string     `json:"gender,omitempty"`
	BloodType             string     `json:"blood_type,omitempty"`
	HeightCM              int        `json:"height_cm,omitempty"`
	WeightKG              int        `json:"weight_kg,omitempty"`
	Address               string     `json:"address,omitempty"`
	City                  string     `json:"city,omitempty"`
	State                 string     `json:"state,omitempty"`
	Country               string     `json:"country,omitempty"`
	PostalCode            string     `json:"postal_code,omitempty"`
	Allergies             string     `json:"allergies,omitempty"`
	MedicalHistory        string     `json:"medical_history,omitempty"`
	EmergencyContactName  string     `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `json:"emergency_contact_phone,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientProfileResponse `json:"patients"`
	Total    int                      `json:"total"`
}
