package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled   AppointmentStatus = "scheduled"
	AppointmentStatusInProgress  AppointmentStatus = "in_progress"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusNoShow      AppointmentStatus = "no_show"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

// AppointmentType represents the kind of visit
type AppointmentType string

const (
	AppointmentTypeConsultation   AppointmentType = "consultation"
	AppointmentTypeFollowUp       AppointmentType = "follow_up"
	AppointmentTypeEmergency      AppointmentType = "emergency"
	AppointmentTypeRoutineCheckup AppointmentType = "routine_checkup"
	AppointmentTypeProcedure      AppointmentType = "procedure"
)

// CancelledBy identifies which party cancelled an appointment
type CancelledBy string

const (
	CancelledByPatient CancelledBy = "patient"
	CancelledByDoctor  CancelledBy = "doctor"
)

// Appointment duration bounds in minutes
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480
)

// Appointment represents a scheduled meeting between one patient and one doctor
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Type            AppointmentType   `gorm:"type:appointment_type;not null;default:'consultation'" json:"type"`
	Status          AppointmentStatus `gorm:"type:appointment_status;not null;default:'scheduled';index" json:"status"`
	ScheduledTime   time.Time         `gorm:"not null;index" json:"scheduled_time"`
	DurationMinutes int               `gorm:"not null;default:30" json:"duration_minutes"`

	Reason        string `gorm:"type:text" json:"reason,omitempty"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`
	Diagnosis     string `gorm:"type:text" json:"diagnosis,omitempty"`
	TreatmentPlan string `gorm:"type:text" json:"treatment_plan,omitempty"`

	CancellationReason string      `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledBy        CancelledBy `gorm:"type:varchar(20)" json:"cancelled_by,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// EndTime returns the exclusive end of the appointment interval
func (a *Appointment) EndTime() time.Time {
	return a.ScheduledTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// ActiveAppointmentStatuses lists the statuses that occupy a slot. Both the
// conflict check and the cancellation predicate key off this set; completed,
// cancelled, no_show and rescheduled are terminal and never in it.
func ActiveAppointmentStatuses() []AppointmentStatus {
	return []AppointmentStatus{AppointmentStatusScheduled, AppointmentStatusInProgress}
}

// IsActive reports whether the appointment occupies its slot for
// conflict-checking purposes.
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusInProgress
}

// Overlaps reports whether the appointment's half-open interval
// [ScheduledTime, EndTime) intersects [start, end).
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.ScheduledTime.Before(end) && a.EndTime().After(start)
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsScheduled checks if the appointment is still in its initial status
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// CanTransitionTo reports whether moving from the current status to next
// is a legal lifecycle transition. Cancelled, completed and no_show are
// terminal; rescheduled marks a superseded appointment and is terminal too.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled:
		switch next {
		case AppointmentStatusInProgress,
			AppointmentStatusCancelled,
			AppointmentStatusNoShow,
			AppointmentStatusRescheduled:
			return true
		}
		return false
	case AppointmentStatusInProgress:
		switch next {
		case AppointmentStatusCompleted, AppointmentStatusCancelled:
			return true
		}
		return false
	case AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
		AppointmentStatusRescheduled:
		return false
	}
	return false
}

// Valid reports whether the status value belongs to the closed set
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled,
		AppointmentStatusInProgress,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
		AppointmentStatusRescheduled:
		return true
	}
	return false
}

// Valid reports whether the appointment type belongs to the closed set
func (t AppointmentType) Valid() bool {
	switch t {
	case AppointmentTypeConsultation,
		AppointmentTypeFollowUp,
		AppointmentTypeEmergency,
		AppointmentTypeRoutineCheckup,
		AppointmentTypeProcedure:
		return true
	}
	return false
}

// Valid reports whether the canceller role belongs to the closed set
func (c CancelledBy) Valid() bool {
	return c == CancelledByPatient || c == CancelledByDoctor
}

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by the repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	Status AppointmentStatus
	Offset int
	Limit  int
}
