package converter

import (
	"healthcare-admin-api/internal/delivery/dto"
	"healthcare-admin-api/internal/domain/entity"
)

// MedicalRecordToResponse converts a MedicalRecord entity to its DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.MedicalRecordResponse{
		ID:             record.ID,
		PatientID:      record.PatientID,
		DoctorID:       record.DoctorID,
		AppointmentID:  record.AppointmentID,
		RecordType:     record.RecordType,
		Title:          record.Title,
		Description:    record.Description,
		VitalSigns:     record.VitalSigns,
		Symptoms:       record.Symptoms,
		TestResults:    record.TestResults,
		Diagnosis:      record.Diagnosis,
		TreatmentNotes: record.TreatmentNotes,
		FileURL:        record.FileURL,
		FileName:       record.FileName,
		RecordedDate:   record.RecordedDate,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}

	if record.Doctor != nil {
		response.Doctor = &dto.ProfileSummary{
			UserID:         record.Doctor.UserID,
			FullName:       record.Doctor.User.FullName,
			Email:          record.Doctor.User.Email,
			Specialization: record.Doctor.Specialization,
		}
	}

	return response
}

// MedicalRecordsToResponses converts a slice of MedicalRecord entities to DTOs
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		resp := MedicalRecordToResponse(&records[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
