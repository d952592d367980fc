package usecase

import (
	"context"
	"errors"
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
	ErrRecordNotFound   = errors.New("medical record not found")
	ErrRecordNotAllowed = errors.New("you are not allowed to access this medical record")
)

type MedicalRecordUsecase interface {
	Create(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordResponse, error)
	GetByPatient(ctx context.Context, patientID uuid.UUID, offset, limit int) (*dto.MedicalRecordListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type medicalRecordUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	recordRepo         repository.MedicalRecordRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:                 db,
		log:                log,
		recordRepo:         recordRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

// Create adds a medical record. Doctors author records under their own ID;
// admin-created records carry no doctor attribution.
func (u *medicalRecordUsecase) Create(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	patient, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	var doctorID *uuid.UUID
	if roleID == entity.RoleIDDoctor {
		doctorID = &callerID
	}

	recordedDate := time.Now()
	if req.RecordedDate != nil {
		recordedDate = *req.RecordedDate
	}

	record := &entity.MedicalRecord{
		PatientID:      req.PatientID,
		DoctorID:       doctorID,
		AppointmentID:  req.AppointmentID,
		RecordType:     req.RecordType,
		Title:          req.Title,
		Description:    req.Description,
		VitalSigns:     req.VitalSigns,
		Symptoms:       req.Symptoms,
		TestResults:    req.TestResults,
		Diagnosis:      req.Diagnosis,
		TreatmentNotes: req.TreatmentNotes,
		FileURL:        req.FileURL,
		FileName:       req.FileName,
		RecordedDate:   recordedDate,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.recordRepo.Create(tx, record); err != nil {
			return err
		}
		return u.auditService.LogCreate(tx, &callerID, entity.AuditActionRecordCreate, "medical_record", record.ID.String(), map[string]interface{}{
			"patient_id":  record.PatientID.String(),
			"record_type": record.RecordType,
			"title":       record.Title,
		})
	})
	if err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordResponse, error) {
	record, err := u.findAuthorized(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.MedicalRecordToResponse(record), nil
}

// GetByPatient lists records for one patient. Patients read their own
// history; doctors and admins read any patient's.
func (u *medicalRecordUsecase) GetByPatient(ctx context.Context, patientID uuid.UUID, offset, limit int) (*dto.MedicalRecordListResponse, error) {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	if roleID == entity.RoleIDPatient && patientID != callerID {
		return nil, ErrRecordNotAllowed
	}

	records, err := u.recordRepo.FindByPatientID(u.db.WithContext(ctx), patientID, offset, limit)
	if err != nil {
		u.log.Warnf("Failed to find medical records for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

// Update modifies a record. Only the authoring doctor or an admin may edit.
func (u *medicalRecordUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	callerID, _ := middleware.GetUserIDFromContext(ctx)
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	if roleID == entity.RoleIDDoctor && (record.DoctorID == nil || *record.DoctorID != callerID) {
		return nil, ErrRecordNotAllowed
	}
	if roleID == entity.RoleIDPatient {
		return nil, ErrRecordNotAllowed
	}

	oldSnapshot := map[string]interface{}{
		"title":     record.Title,
		"diagnosis": record.Diagnosis,
	}

	if req.RecordType != "" {
		record.RecordType = req.RecordType
	}
	if req.Title != "" {
		record.Title = req.Title
	}
	if req.Description != "" {
		record.Description = req.Description
	}
	if req.VitalSigns != "" {
		record.VitalSigns = req.VitalSigns
	}
	if req.Symptoms != "" {
		record.Symptoms = req.Symptoms
	}
	if req.TestResults != "" {
		record.TestResults = req.TestResults
	}
	if req.Diagnosis != "" {
		record.Diagnosis = req.Diagnosis
	}
	if req.TreatmentNotes != "" {
		record.TreatmentNotes = req.TreatmentNotes
	}
	if req.FileURL != "" {
		record.FileURL = req.FileURL
	}
	if req.FileName != "" {
		record.FileName = req.FileName
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.recordRepo.Update(tx, record); err != nil {
			return err
		}
		return u.auditService.LogUpdate(tx, &callerID, entity.AuditActionRecordUpdate, "medical_record", record.ID.String(), oldSnapshot, map[string]interface{}{
			"title":     record.Title,
			"diagnosis": record.Diagnosis,
		})
	})
	if err != nil {
		u.log.Warnf("Failed to update medical record %s: %+v", id, err)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

// Delete removes a record, admin only (enforced at the route)
func (u *medicalRecordUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	callerID, _ := middleware.GetUserIDFromContext(ctx)

	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", id, err)
		return err
	}
	if record == nil {
		return ErrRecordNotFound
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.recordRepo.Delete(tx, id); err != nil {
			return err
		}
		return u.auditService.LogDelete(tx, &callerID, entity.AuditActionRecordDelete, "medical_record", id.String(), map[string]interface{}{
			"patient_id": record.PatientID.String(),
			"title":      record.Title,
		})
	})
	if err != nil {
		u.log.Warnf("Failed to delete medical record %s: %+v", id, err)
		return err
	}

	return nil
}

func (u *medicalRecordUsecase) findAuthorized(ctx context.Context, id uuid.UUID) (*entity.MedicalRecord, error) {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	if roleID == entity.RoleIDPatient && record.PatientID != callerID {
		return nil, ErrRecordNotAllowed
	}

	return record, nil
}
