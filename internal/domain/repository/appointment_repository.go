package repository

import (
	"time"

	"healthcare-admin-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindConflicting returns active appointments of the doctor whose
	// [scheduled_time, scheduled_time+duration) interval intersects
	// [start, end). excludeID, when non-nil, is left out of the check.
	FindConflicting(db *gorm.DB, doctorID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	// CancelIfActive atomically cancels an appointment unless it is
	// already cancelled. Returns affected rows: 0 means already cancelled.
	CancelIfActive(db *gorm.DB, id uuid.UUID, reason string, cancelledBy entity.CancelledBy) (int64, error)
	// DeleteIfScheduled removes an appointment only while it is still in
	// scheduled status. Returns affected rows.
	DeleteIfScheduled(db *gorm.DB, id uuid.UUID) (int64, error)
}
