package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord stores a clinical record for a patient, optionally linked
// to the appointment it was produced in. File contents live in external
// storage; only the reference metadata is kept here.
type MedicalRecord struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`

	RecordType  string `gorm:"type:varchar(100);not null" json:"record_type"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	VitalSigns     string `gorm:"type:text" json:"vital_signs,omitempty"`
	Symptoms       string `gorm:"type:text" json:"symptoms,omitempty"`
	TestResults    string `gorm:"type:text" json:"test_results,omitempty"`
	Diagnosis      string `gorm:"type:text" json:"diagnosis,omitempty"`
	TreatmentNotes string `gorm:"type:text" json:"treatment_notes,omitempty"`

	FileURL  string `gorm:"type:varchar(500)" json:"file_url,omitempty"`
	FileName string `gorm:"type:varchar(255)" json:"file_name,omitempty"`

	RecordedDate time.Time `gorm:"not null" json:"recorded_date"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient     PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Appointment *Appointment   `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
