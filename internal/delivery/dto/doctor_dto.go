package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	FullName        string `json:"full_name" validate:"required,min=2"`
	Phone           string `json:"phone" validate:"omitempty,min=7,max=20"`
	Specialization  string `json:"specialization" validate:"required"`
	LicenseNumber   string `json:"license_number" validate:"required"`
	MedicalSchool   string `json:"medical_school" validate:"omitempty"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty"` // decimal string
	Bio             string `json:"bio" validate:"omitempty"`
}

type UpdateDoctorRequest struct {
	FullName          string `json:"full_name" validate:"omitempty,min=2"`
	Phone             string `json:"phone" validate:"omitempty,min=7,max=20"`
	Specialization    string `json:"specialization" validate:"omitempty"`
	LicenseNumber     string `json:"license_number" validate:"omitempty"`
	MedicalSchool     string `json:"medical_school" validate:"omitempty"`
	YearsOfExperience *int   `json:"years_of_experience" validate:"omitempty,gte=0,lte=80"`
	OfficeAddress     string `json:"office_address" validate:"omitempty"`
	OfficePhone       string `json:"office_phone" validate:"omitempty,max=20"`
	ConsultationFee   string `json:"consultation_fee" validate:"omitempty"`
	Bio               string `json:"bio" validate:"omitempty"`
	Availability      string `json:"availability" validate:"omitempty,oneof=available unavailable on_leave"`
	IsActive          *bool  `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type DoctorProfileResponse struct {
	UserID            uuid.UUID       `json:"user_id"`
	Email             string          `json:"email"`
	FullName          string          `json:"full_name"`
	Phone             string          `json:"phone,omitempty"`
	Specialization    string          `json:"specialization"`
	LicenseNumber     string          `json:"license_number"`
	MedicalSchool     string          `json:"medical_school,omitempty"`
	YearsOfExperience int             `json:"years_of_experience,omitempty"`
	OfficeAddress     string          `json:"office_address,omitempty"`
	OfficePhone       string          `json:"office_phone,omitempty"`
	ConsultationFee   decimal.Decimal `json:"consultation_fee"`
	Bio               string          `json:"bio,omitempty"`
	Availability      string          `json:"availability"`
	IsActive          *bool           `json:"is_active,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorProfileResponse `json:"doctors"`
	Total   int                     `json:"total"`
}
