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

type PatientProfileUsecase interface {
	GetMyProfile(ctx context.Context) (*dto.PatientProfileResponse, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileResponse, error)
	GetAll(ctx context.Context, offset, limit int) (*dto.PatientListResponse, error)
	UpdateMyProfile(ctx context.Context, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error)
}

type patientProfileUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	patientProfileRepo repository.PatientProfileRepository
	userRepo           repository.UserRepository
	auditService       service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientProfileRepo repository.PatientProfileRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:                 db,
		log:                log,
		patientProfileRepo: patientProfileRepo,
		userRepo:           userRepo,
		auditService:       auditService,
	}
}

func (u *patientProfileUsecase) GetMyProfile(ctx context.Context) (*dto.PatientProfileResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	return u.GetByUserID(ctx, userID)
}

func (u *patientProfileUsecase) GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileResponse, error) {
	profile, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientProfileToResponse(profile), nil
}

// GetAll lists patient profiles, admin and doctor only (enforced at the route)
func (u *patientProfileUsecase) GetAll(ctx context.Context, offset, limit int) (*dto.PatientListResponse, error) {
	profiles, err := u.patientProfileRepo.FindAll(u.db.WithContext(ctx), offset, limit)
	if err != nil {
		u.log.Warnf("Failed to list patient profiles: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientProfilesToResponses(profiles),
		Total:    len(profiles),
	}, nil
}

// UpdateMyProfile updates the logged-in patient's profile. Name and phone
// live on the user row, everything else on the profile.
func (u *patientProfileUsecase) UpdateMyProfile(ctx context.Context, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	profile, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		profile.DateOfBirth = &dob
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.BloodType != "" {
		profile.BloodType = req.BloodType
	}
	if req.HeightCM != nil {
		profile.HeightCM = *req.HeightCM
	}
	if req.WeightKG != nil {
		profile.WeightKG = *req.WeightKG
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.City != "" {
		profile.City = req.City
	}
	if req.State != "" {
		profile.State = req.State
	}
	if req.Country != "" {
		profile.Country = req.Country
	}
	if req.PostalCode != "" {
		profile.PostalCode = req.PostalCode
	}
	if req.Allergies != "" {
		profile.Allergies = req.Allergies
	}
	if req.MedicalHistory != "" {
		profile.MedicalHistory = req.MedicalHistory
	}
	if req.EmergencyContactName != "" {
		profile.EmergencyContactName = req.EmergencyContactName
	}
	if req.EmergencyContactPhone != "" {
		profile.EmergencyContactPhone = req.EmergencyContactPhone
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.FullName != "" || req.Phone != "" {
			user, err := u.userRepo.FindByID(tx, userID)
			if err != nil {
				return err
			}
			if user == nil {
				return ErrUserNotFound
			}
			if req.FullName != "" {
				user.FullName = req.FullName
			}
			if req.Phone != "" {
				user.Phone = req.Phone
			}
			if err := u.userRepo.Update(tx, user); err != nil {
				return err
			}
		}

		if err := u.patientProfileRepo.Update(tx, profile); err != nil {
			return err
		}

		return u.auditService.LogUpdate(tx, &userID, entity.AuditActionProfileUpdate, "patient_profile", userID.String(), nil, map[string]interface{}{
			"full_name": req.FullName,
			"phone":     req.Phone,
		})
	})
	if err != nil {
		u.log.Warnf("Failed to update patient profile %s: %+v", userID, err)
		return nil, err
	}

	// Reload with the user relation so name changes show in the response
	updated, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil || updated == nil {
		return converter.PatientProfileToResponse(profile), nil
	}
	return converter.PatientProfileToResponse(updated), nil
}
