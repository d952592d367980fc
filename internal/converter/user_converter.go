package converter

import (
	"healthcare-admin-api/internal/delivery/dto"
	"healthcare-admin-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Role:      entity.RoleName(user.RoleID),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		response.DoctorProfile = DoctorProfileToResponse(user.DoctorProfile)
	}
	if user.PatientProfile != nil {
		response.PatientProfile = PatientProfileToResponse(user.PatientProfile)
	}

	return response
}

// PatientProfileToResponse converts a PatientProfile entity to its DTO.
// User fields are populated only when the relation is preloaded.
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientProfileResponse{
		UserID:                profile.UserID,
		Email:                 profile.User.Email,
		FullName:              profile.User.FullName,
		Phone:                 profile.User.Phone,
		DateOfBirth:           profile.DateOfBirth,
		Gender:                profile.Gender,
		BloodType:             profile.BloodType,
		HeightCM:              profile.HeightCM,
		WeightKG:              profile.WeightKG,
		Address:               profile.Address,
		City:                  profile.City,
		State:                 profile.State,
		Country:               profile.Country,
		PostalCode:            profile.PostalCode,
		Allergies:             profile.Allergies,
		MedicalHistory:        profile.MedicalHistory,
		EmergencyContactName:  profile.EmergencyContactName,
		EmergencyContactPhone: profile.EmergencyContactPhone,
		CreatedAt:             profile.CreatedAt,
		UpdatedAt:             profile.UpdatedAt,
	}
}

// PatientProfilesToResponses converts a slice of PatientProfile entities to DTOs
func PatientProfilesToResponses(profiles []entity.PatientProfile) []dto.PatientProfileResponse {
	responses := make([]dto.PatientProfileResponse, len(profiles))
	for i := range profiles {
		resp := PatientProfileToResponse(&profiles[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// DoctorProfileToResponse converts a DoctorProfile entity to its DTO.
// User fields are populated only when the relation is preloaded.
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorProfileResponse{
		UserID:            profile.UserID,
		Email:             profile.User.Email,
		FullName:          profile.User.FullName,
		Phone:             profile.User.Phone,
		Specialization:    profile.Specialization,
		LicenseNumber:     profile.LicenseNumber,
		MedicalSchool:     profile.MedicalSchool,
		YearsOfExperience: profile.YearsOfExperience,
		OfficeAddress:     profile.OfficeAddress,
		OfficePhone:       profile.OfficePhone,
		ConsultationFee:   profile.ConsultationFee,
		Bio:               profile.Bio,
		Availability:      string(profile.Availability),
		IsActive:          profile.User.IsActive,
		CreatedAt:         profile.CreatedAt,
		UpdatedAt:         profile.UpdatedAt,
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorProfileResponse {
	responses := make([]dto.DoctorProfileResponse, len(profiles))
	for i := range profiles {
		resp := DoctorProfileToResponse(&profiles[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
