package usecase

import (
	"context"
	"errors"

	"healthcare-admin-api/internal/converter"
	"healthcare-admin-api/internal/delivery/dto"
	"healthcare-admin-api/internal/delivery/http/middleware"
	"healthcare-admin-api/internal/domain/entity"
	"healthcare-admin-api/internal/domain/repository"
	"healthcare-admin-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorProfileUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorProfileResponse, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.DoctorProfileResponse, error)
	GetAll(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorProfileResponse, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type doctorProfileUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
	userRepo          repository.UserRepository
	authUsecase       AuthUsecase
	auditService      service.AuditService
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	userRepo repository.UserRepository,
	authUsecase AuthUsecase,
	auditService service.AuditService,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
		userRepo:          userRepo,
		authUsecase:       authUsecase,
		auditService:      auditService,
	}
}

// Create registers a doctor account, admin only (enforced at the route).
// Registration itself is shared with the auth flow.
func (u *doctorProfileUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorProfileResponse, error) {
	userResp, err := u.authUsecase.RegisterDoctor(ctx, &dto.RegisterDoctorRequest{
		Email:           req.Email,
		Password:        req.Password,
		FullName:        req.FullName,
		Phone:           req.Phone,
		Specialization:  req.Specialization,
		LicenseNumber:   req.LicenseNumber,
		MedicalSchool:   req.MedicalSchool,
		ConsultationFee: req.ConsultationFee,
		Bio:             req.Bio,
	})
	if err != nil {
		return nil, err
	}

	return u.GetByUserID(ctx, userResp.ID)
}

func (u *doctorProfileUsecase) GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.DoctorProfileResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// GetAll lists doctors. The directory is readable by any authenticated user
// so patients can pick a doctor when booking.
func (u *doctorProfileUsecase) GetAll(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list doctor profiles: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

// Update modifies a doctor profile. Doctors may edit their own profile,
// admins any; the route wiring enforces who reaches this with which ID.
func (u *doctorProfileUsecase) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorProfileResponse, error) {
	callerID, _ := middleware.GetUserIDFromContext(ctx)
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	if roleID == entity.RoleIDDoctor && userID != callerID {
		return nil, ErrDoctorNotFound
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	oldSnapshot := map[string]interface{}{
		"specialization": profile.Specialization,
		"availability":   string(profile.Availability),
	}

	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.LicenseNumber != "" {
		profile.LicenseNumber = req.LicenseNumber
	}
	if req.MedicalSchool != "" {
		profile.MedicalSchool = req.MedicalSchool
	}
	if req.YearsOfExperience != nil {
		profile.YearsOfExperience = *req.YearsOfExperience
	}
	if req.OfficeAddress != "" {
		profile.OfficeAddress = req.OfficeAddress
	}
	if req.OfficePhone != "" {
		profile.OfficePhone = req.OfficePhone
	}
	if req.ConsultationFee != "" {
		fee, err := decimal.NewFromString(req.ConsultationFee)
		if err != nil || fee.IsNegative() {
			return nil, ErrInvalidFeeFormat
		}
		profile.ConsultationFee = fee
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Availability != "" {
		profile.Availability = entity.DoctorAvailability(req.Availability)
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.FullName != "" || req.Phone != "" || req.IsActive != nil {
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
			// Only admins may disable accounts
			if req.IsActive != nil && roleID == entity.RoleIDAdmin {
				user.IsActive = req.IsActive
			}
			if err := u.userRepo.Update(tx, user); err != nil {
				return err
			}
		}

		if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
			if isDuplicateKeyError(err, "license_number") {
				return ErrLicenseAlreadyExists
			}
			return err
		}

		return u.auditService.LogUpdate(tx, &callerID, entity.AuditActionDoctorUpdate, "doctor_profile", userID.String(), oldSnapshot, map[string]interface{}{
			"specialization": profile.Specialization,
			"availability":   string(profile.Availability),
		})
	})
	if err != nil {
		if errors.Is(err, ErrLicenseAlreadyExists) {
			return nil, err
		}
		u.log.Warnf("Failed to update doctor profile %s: %+v", userID, err)
		return nil, err
	}

	updated, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil || updated == nil {
		return converter.DoctorProfileToResponse(profile), nil
	}
	return converter.DoctorProfileToResponse(updated), nil
}

// Delete deactivates a doctor account, admin only (enforced at the route).
// The user row is kept so historical appointments stay intact; the account
// is disabled and the profile removed from the directory.
func (u *doctorProfileUsecase) Delete(ctx context.Context, userID uuid.UUID) error {
	callerID, _ := middleware.GetUserIDFromContext(ctx)

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", userID, err)
		return err
	}
	if profile == nil {
		return ErrDoctorNotFound
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := u.userRepo.FindByID(tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		inactive := false
		user.IsActive = &inactive
		if err := u.userRepo.Update(tx, user); err != nil {
			return err
		}

		profile.Availability = entity.DoctorUnavailable
		if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
			return err
		}

		return u.auditService.LogDelete(tx, &callerID, entity.AuditActionDoctorDelete, "doctor_profile", userID.String(), map[string]interface{}{
			"specialization": profile.Specialization,
			"license_number": profile.LicenseNumber,
		})
	})
	if err != nil {
		u.log.Warnf("Failed to deactivate doctor %s: %+v", userID, err)
		return err
	}

	u.log.Infof("Doctor deactivated: user=%s", userID)
	return nil
}
