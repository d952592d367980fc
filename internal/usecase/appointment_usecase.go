package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthcare-admin-api/internal/converter"
	"healthcare-admin-api/internal/delivery/dto"
	"healthcare-admin-api/internal/delivery/http/middleware"
	"healthcare-admin-api/internal/domain/entity"
	"healthcare-admin-api/internal/domain/repository"
	"healthcare-admin-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotOwned     = errors.New("appointment does not belong to you")
	ErrPatientNotFound         = errors.New("patient not found")
	ErrDoctorNotFound          = errors.New("doctor not found")
	ErrDoctorNotAvailable      = errors.New("doctor is not accepting appointments")
	ErrScheduledTimePast       = errors.New("scheduled time must be in the future")
	ErrInvalidDuration         = errors.New("duration must be between 15 and 480 minutes")
	ErrSchedulingConflict      = errors.New("doctor already has an appointment in this time slot")
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
	ErrAppointmentNotActive    = errors.New("appointment is already cancelled")
	ErrAppointmentNotScheduled = errors.New("only scheduled appointments can be modified")
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	GetAll(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	appointmentRepo    repository.AppointmentRepository
	patientProfileRepo repository.PatientProfileRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	notificationRepo   repository.NotificationRepository
	auditService       service.AuditService
	bookingLockService *service.BookingLockService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientProfileRepo repository.PatientProfileRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	notificationRepo repository.NotificationRepository,
	auditService service.AuditService,
	bookingLockService *service.BookingLockService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                 db,
		log:                log,
		appointmentRepo:    appointmentRepo,
		patientProfileRepo: patientProfileRepo,
		doctorProfileRepo:  doctorProfileRepo,
		notificationRepo:   notificationRepo,
		auditService:       auditService,
		bookingLockService: bookingLockService,
	}
}

// Create books a new appointment after running the conflict check.
//
// Flow:
// 1. Resolve the patient: patients always book for themselves, admins may
//    book on behalf of any patient
// 2. Validate the doctor exists and is accepting appointments
// 3. Validate the requested slot (future time, duration bounds)
// 4. Acquire the per-doctor lock so concurrent requests for the same
//    doctor serialize around the conflict check
// 5. Inside a transaction: check for overlapping active appointments,
//    then insert
// 6. The exclusion constraint on the appointments table is the final
//    guard against concurrent writers on other instances (23P01)
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	// Step 1: resolve the patient
	patientID := req.PatientID
	if roleID == entity.RoleIDPatient || patientID == uuid.Nil {
		patientID = callerID
	}
	if roleID == entity.RoleIDPatient && req.PatientID != uuid.Nil && req.PatientID != callerID {
		return nil, ErrAppointmentNotOwned
	}

	patient, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	// Step 2: validate the doctor
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if doctor.Availability != entity.DoctorAvailable {
		return nil, ErrDoctorNotAvailable
	}

	// Step 3: validate the slot
	if err := validateSlot(req.ScheduledTime, req.DurationMinutes); err != nil {
		return nil, err
	}

	appointmentType := entity.AppointmentType(req.Type)
	if req.Type == "" {
		appointmentType = entity.AppointmentTypeConsultation
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		Type:            appointmentType,
		Status:          entity.AppointmentStatusScheduled,
		ScheduledTime:   req.ScheduledTime,
		DurationMinutes: req.DurationMinutes,
		Reason:          req.Reason,
		Notes:           req.Notes,
	}

	// Step 4: serialize the check-then-insert per doctor
	u.bookingLockService.Lock(req.DoctorID)
	defer u.bookingLockService.Unlock(req.DoctorID)

	// Step 5: conflict check + insert in one transaction
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflicts, err := u.appointmentRepo.FindConflicting(tx, req.DoctorID, appointment.ScheduledTime, appointment.EndTime(), nil)
		if err != nil {
			u.log.Warnf("Failed conflict check for doctor %s: %+v", req.DoctorID, err)
			return err
		}
		if len(conflicts) > 0 {
			return ErrSchedulingConflict
		}

		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			return err
		}

		return u.auditService.LogCreate(tx, &callerID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), map[string]interface{}{
			"doctor_id":      appointment.DoctorID.String(),
			"patient_id":     appointment.PatientID.String(),
			"scheduled_time": appointment.ScheduledTime,
			"duration":       appointment.DurationMinutes,
		})
	})
	if err != nil {
		// Step 6: a concurrent writer on another instance lands here
		if isExclusionError(err) {
			return nil, ErrSchedulingConflict
		}
		if errors.Is(err, ErrSchedulingConflict) {
			return nil, ErrSchedulingConflict
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.notifyBoth(ctx, appointment, entity.NotificationTypeAppointmentConfirmed,
		"Appointment confirmed",
		fmt.Sprintf("Appointment scheduled for %s (%d minutes)", appointment.ScheduledTime.Format(time.RFC1123), appointment.DurationMinutes))

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, patient=%s, time=%s", appointment.ID, appointment.DoctorID, appointment.PatientID, appointment.ScheduledTime)
	return converter.AppointmentToResponse(full), nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAuthorized(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

// GetMyAppointments returns appointments for the logged-in patient
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), userID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetDoctorAppointments returns appointments for the logged-in doctor
func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), userID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetAll returns all appointments, admin only (enforced at the route)
func (u *appointmentUsecase) GetAll(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Update modifies an appointment. A change of scheduled time or duration is
// a reschedule and re-runs the full conflict check with the appointment
// itself excluded. Status changes must follow the transition table.
func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	callerID, _ := middleware.GetUserIDFromContext(ctx)

	appointment, err := u.findAuthorized(ctx, id)
	if err != nil {
		return nil, err
	}

	oldSnapshot := map[string]interface{}{
		"status":         string(appointment.Status),
		"scheduled_time": appointment.ScheduledTime,
		"duration":       appointment.DurationMinutes,
	}

	rescheduling := false
	newStart := appointment.ScheduledTime
	newDuration := appointment.DurationMinutes

	if req.ScheduledTime != nil && !req.ScheduledTime.Equal(appointment.ScheduledTime) {
		rescheduling = true
		newStart = *req.ScheduledTime
	}
	if req.DurationMinutes != nil && *req.DurationMinutes != appointment.DurationMinutes {
		rescheduling = true
		newDuration = *req.DurationMinutes
	}

	if rescheduling {
		if appointment.Status != entity.AppointmentStatusScheduled {
			return nil, ErrAppointmentNotScheduled
		}
		if err := validateSlot(newStart, newDuration); err != nil {
			return nil, err
		}
	}

	if req.Status != "" {
		next := entity.AppointmentStatus(req.Status)
		if !appointment.Status.CanTransitionTo(next) {
			return nil, ErrInvalidStatusTransition
		}
		appointment.Status = next
	}

	appointment.ScheduledTime = newStart
	appointment.DurationMinutes = newDuration
	if req.Type != "" {
		appointment.Type = entity.AppointmentType(req.Type)
	}
	if req.Reason != "" {
		appointment.Reason = req.Reason
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}
	if req.Diagnosis != "" {
		appointment.Diagnosis = req.Diagnosis
	}
	if req.TreatmentPlan != "" {
		appointment.TreatmentPlan = req.TreatmentPlan
	}

	if rescheduling {
		u.bookingLockService.Lock(appointment.DoctorID)
		defer u.bookingLockService.Unlock(appointment.DoctorID)
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rescheduling {
			conflicts, err := u.appointmentRepo.FindConflicting(tx, appointment.DoctorID, appointment.ScheduledTime, appointment.EndTime(), &appointment.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return ErrSchedulingConflict
			}
		}

		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			return err
		}

		return u.auditService.LogUpdate(tx, &callerID, entity.AuditActionAppointmentReschedule, "appointment", appointment.ID.String(), oldSnapshot, map[string]interface{}{
			"status":         string(appointment.Status),
			"scheduled_time": appointment.ScheduledTime,
			"duration":       appointment.DurationMinutes,
		})
	})
	if err != nil {
		if isExclusionError(err) || errors.Is(err, ErrSchedulingConflict) {
			return nil, ErrSchedulingConflict
		}
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	if rescheduling {
		u.notifyBoth(ctx, appointment, entity.NotificationTypeAppointmentReminder,
			"Appointment rescheduled",
			fmt.Sprintf("Appointment moved to %s (%d minutes)", appointment.ScheduledTime.Format(time.RFC1123), appointment.DurationMinutes))
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// Cancel cancels an appointment. The status update is conditional in SQL so
// two concurrent cancellations cannot both succeed.
func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) error {
	callerID, _ := middleware.GetUserIDFromContext(ctx)

	appointment, err := u.findAuthorized(ctx, id)
	if err != nil {
		return err
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := u.appointmentRepo.CancelIfActive(tx, id, req.Reason, entity.CancelledBy(req.CancelledBy))
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrAppointmentNotActive
		}

		return u.auditService.LogUpdate(tx, &callerID, entity.AuditActionAppointmentCancel, "appointment", id.String(), map[string]interface{}{
			"status": string(appointment.Status),
		}, map[string]interface{}{
			"status":       string(entity.AppointmentStatusCancelled),
			"cancelled_by": req.CancelledBy,
			"reason":       req.Reason,
		})
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotActive) {
			return err
		}
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}

	u.notifyBoth(ctx, appointment, entity.NotificationTypeAppointmentCancelled,
		"Appointment cancelled",
		fmt.Sprintf("Appointment on %s was cancelled", appointment.ScheduledTime.Format(time.RFC1123)))

	u.log.Infof("Appointment cancelled: id=%s, by=%s", id, req.CancelledBy)
	return nil
}

// Delete removes an appointment record entirely. Only scheduled
// appointments may be deleted, and only by an admin or the doctor who
// holds the appointment; anything further along keeps its history.
func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	callerID, _ := middleware.GetUserIDFromContext(ctx)
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	appointment, err := u.findAuthorized(ctx, id)
	if err != nil {
		return err
	}
	if roleID != entity.RoleIDAdmin && roleID != entity.RoleIDDoctor {
		return ErrAppointmentNotOwned
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := u.appointmentRepo.DeleteIfScheduled(tx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrAppointmentNotScheduled
		}

		return u.auditService.LogDelete(tx, &callerID, entity.AuditActionAppointmentDelete, "appointment", id.String(), map[string]interface{}{
			"status":         string(appointment.Status),
			"scheduled_time": appointment.ScheduledTime,
		})
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotScheduled) {
			return err
		}
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}

	return nil
}

// findAuthorized loads an appointment and verifies the caller may see it.
// Admins see everything, patients and doctors only their own.
func (u *appointmentUsecase) findAuthorized(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch roleID {
	case entity.RoleIDAdmin:
	case entity.RoleIDDoctor:
		if appointment.DoctorID != callerID {
			return nil, ErrAppointmentNotOwned
		}
	default:
		if appointment.PatientID != callerID {
			return nil, ErrAppointmentNotOwned
		}
	}

	return appointment, nil
}

// notifyBoth writes in-app notifications for the patient and the doctor.
// Notification failures never fail the booking operation.
func (u *appointmentUsecase) notifyBoth(ctx context.Context, appointment *entity.Appointment, notifType entity.NotificationType, title, message string) {
	for _, userID := range []uuid.UUID{appointment.PatientID, appointment.DoctorID} {
		notification := &entity.Notification{
			UserID:            userID,
			Type:              notifType,
			Title:             title,
			Message:           message,
			Channel:           entity.NotificationChannelInApp,
			RelatedEntityType: "appointment",
			RelatedEntityID:   appointment.ID.String(),
		}
		if err := u.notificationRepo.Create(u.db.WithContext(ctx), notification); err != nil {
			u.log.Warnf("Failed to create notification for user %s: %+v", userID, err)
		}
	}
}

// validateSlot enforces the future-time rule and duration bounds
func validateSlot(start time.Time, durationMinutes int) error {
	if !start.After(time.Now()) {
		return ErrScheduledTimePast
	}
	if durationMinutes < entity.MinDurationMinutes || durationMinutes > entity.MaxDurationMinutes {
		return ErrInvalidDuration
	}
	return nil
}
