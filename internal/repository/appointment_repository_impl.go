package repository

import (
	"errors"
	"time"

	"healthcare-admin-api/internal/domain/entity"
	domainRepo "healthcare-admin-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient.User").Preload("Doctor.User").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Doctor.User").Where("patient_id = ?", patientID)
	query = applyAppointmentFilter(query, filter)
	err := query.Order("scheduled_time DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Patient.User").Where("doctor_id = ?", doctorID)
	query = applyAppointmentFilter(query, filter)
	err := query.Order("scheduled_time DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Patient.User").Preload("Doctor.User")
	query = applyAppointmentFilter(query, filter)
	err := query.Order("scheduled_time DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindConflicting implements the unified half-open interval overlap test:
// existing.start < end AND existing.start + existing.duration > start.
// Only appointments that still occupy their slot count.
func (r *appointmentRepository) FindConflicting(db *gorm.DB, doctorID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.
		Where("doctor_id = ?", doctorID).
		Where("status IN ?", entity.ActiveAppointmentStatuses()).
		Where("scheduled_time < ?", end).
		Where("scheduled_time + make_interval(mins => duration_minutes) > ?", start)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	err := query.Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Save(appointment).Error
}

// CancelIfActive cancels an appointment ONLY while it is still active
// (scheduled or in_progress); completed, no_show and rescheduled are
// terminal and stay untouched. Returns affected rows: 1 = success,
// 0 = not active (prevents the double-cancel race).
func (r *appointmentRepository) CancelIfActive(db *gorm.DB, id uuid.UUID, reason string, cancelledBy entity.CancelledBy) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, entity.ActiveAppointmentStatuses()).
		Updates(map[string]interface{}{
			"status":              entity.AppointmentStatusCancelled,
			"cancellation_reason": reason,
			"cancelled_by":        cancelledBy,
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) DeleteIfScheduled(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.
		Where("id = ? AND status = ?", id, entity.AppointmentStatusScheduled).
		Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func applyAppointmentFilter(query *gorm.DB, filter *entity.AppointmentFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	return query
}
