package converter

import (
	"healthcare-admin-api/internal/delivery/dto"
	"healthcare-admin-api/internal/domain/entity"

	"github.com/google/uuid"
)

// BillingToResponse converts a Billing entity to BillingResponse DTO
func BillingToResponse(billing *entity.Billing) *dto.BillingResponse {
	if billing == nil {
		return nil
	}

	response := &dto.BillingResponse{
		ID:              billing.ID,
		PatientID:       billing.PatientID,
		AppointmentID:   billing.AppointmentID,
		InvoiceNumber:   billing.InvoiceNumber,
		Description:     billing.Description,
		ConsultationFee: billing.ConsultationFee,
		TestFees:        billing.TestFees,
		ProcedureFees:   billing.ProcedureFees,
		MedicationFees:  billing.MedicationFees,
		Discount:        billing.Discount,
		Tax:             billing.Tax,
		TotalAmount:     billing.TotalAmount,
		AmountPaid:      billing.AmountPaid,
		AmountDue:       billing.AmountDue,
		Status:          string(billing.Status),
		PaymentMethod:   string(billing.PaymentMethod),
		DueDate:         billing.DueDate,
		Notes:           billing.Notes,
		CreatedAt:       billing.CreatedAt,
		PaidDate:        billing.PaidDate,
		UpdatedAt:       billing.UpdatedAt,
	}

	if billing.Patient.UserID != uuid.Nil {
		response.Patient = &dto.ProfileSummary{
			UserID:   billing.Patient.UserID,
			FullName: billing.Patient.User.FullName,
			Email:    billing.Patient.User.Email,
		}
	}

	return response
}

// BillingsToResponses converts a slice of Billing entities to DTOs
func BillingsToResponses(records []entity.Billing) []dto.BillingResponse {
	responses := make([]dto.BillingResponse, len(records))
	for i := range records {
		resp := BillingToResponse(&records[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
