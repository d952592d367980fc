package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfile represents patient-specific profile data, 1:1 with User
type PatientProfile struct {
	UserID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender      string     `gorm:"type:varchar(20)" json:"gender,omitempty"`
	BloodType   string     `gorm:"type:varchar(10)" json:"blood_type,omitempty"`
	HeightCM    int        `json:"height_cm,omitempty"`
	WeightKG    int        `json:"weight_kg,omitempty"`

	Address    string `gorm:"type:text" json:"address,omitempty"`
	City       string `gorm:"type:varchar(100)" json:"city,omitempty"`
	State      string `gorm:"type:varchar(100)" json:"state,omitempty"`
	Country    string `gorm:"type:varchar(100)" json:"country,omitempty"`
	PostalCode string `gorm:"type:varchar(20)" json:"postal_code,omitempty"`

	Allergies             string `gorm:"type:text" json:"allergies,omitempty"`
	MedicalHistory        string `gorm:"type:text" json:"medical_history,omitempty"`
	EmergencyContactName  string `gorm:"type:varchar(255)" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `gorm:"type:varchar(20)" json:"emergency_contact_phone,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
	Billing      []Billing     `gorm:"foreignKey:PatientID" json:"billing,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

// Blood type constants
const (
	BloodTypeOPositive  = "O+"
	BloodTypeONegative  = "O-"
	BloodTypeAPositive  = "A+"
	BloodTypeANegative  = "A-"
	BloodTypeBPositive  = "B+"
	BloodTypeBNegative  = "B-"
	BloodTypeABPositive = "AB+"
	BloodTypeABNegative = "AB-"
)
