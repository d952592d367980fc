package converter

import (
	"healthcare-admin-api/internal/delivery/dto"
	"healthcare-admin-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		PatientID:          appointment.PatientID,
		DoctorID:           appointment.DoctorID,
		Type:               string(appointment.Type),
		Status:             string(appointment.Status),
		ScheduledTime:      appointment.ScheduledTime,
		DurationMinutes:    appointment.DurationMinutes,
		EndTime:            appointment.EndTime(),
		Reason:             appointment.Reason,
		Notes:              appointment.Notes,
		Diagnosis:          appointment.Diagnosis,
		TreatmentPlan:      appointment.TreatmentPlan,
		CancellationReason: appointment.CancellationReason,
		CancelledBy:        string(appointment.CancelledBy),
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	// Include participant info if preloaded
	if appointment.Patient.UserID != uuid.Nil {
		response.Patient = &dto.ProfileSummary{
			UserID:   appointment.Patient.UserID,
			FullName: appointment.Patient.User.FullName,
			Email:    appointment.Patient.User.Email,
		}
	}
	if appointment.Doctor.UserID != uuid.Nil {
		response.Doctor = &dto.ProfileSummary{
			UserID:         appointment.Doctor.UserID,
			FullName:       appointment.Doctor.User.FullName,
			Email:          appointment.Doctor.User.Email,
			Specialization: appointment.Doctor.Specialization,
		}
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp := AppointmentToResponse(&appointments[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
