package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorAvailability is the doctor's current availability flag
type DoctorAvailability string

const (
	DoctorAvailable   DoctorAvailability = "available"
	DoctorUnavailable DoctorAvailability = "unavailable"
	DoctorOnLeave     DoctorAvailability = "on_leave"
)

// DoctorProfile represents doctor-specific profile data, 1:1 with User
type DoctorProfile struct {
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization    string    `gorm:"type:varchar(255);not null;index" json:"specialization"`
	LicenseNumber     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"license_number"`
	MedicalSchool     string    `gorm:"type:varchar(255)" json:"medical_school,omitempty"`
	YearsOfExperience int       `json:"years_of_experience,omitempty"`

	OfficeAddress   string          `gorm:"type:text" json:"office_address,omitempty"`
	OfficePhone     string          `gorm:"type:varchar(20)" json:"office_phone,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"consultation_fee"`
	Bio             string          `gorm:"type:text" json:"bio,omitempty"`

	Availability DoctorAvailability `gorm:"type:varchar(20);not null;default:'available'" json:"availability"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// Valid reports whether the availability value belongs to the closed set
func (a DoctorAvailability) Valid() bool {
	switch a {
	case DoctorAvailable, DoctorUnavailable, DoctorOnLeave:
		return true
	}
	return false
}

// DoctorFilter is a domain-level filter for querying doctors
type DoctorFilter struct {
	Name           string // matched against users.full_name (ILIKE)
	Specialization string // ILIKE
	Offset         int
	Limit          int
}
