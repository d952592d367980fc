package handler

import (
	"encoding/json"
	"net/http"

	"healthcare-admin-api/internal/delivery/dto"
	"healthcare-admin-api/internal/domain/entity"
	"healthcare-admin-api/internal/usecase"
	"healthcare-admin-api/pkg/response"
	"healthcare-admin-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BillingHandler struct {
	billingUsecase usecase.BillingUsecase
	validator      *validator.CustomValidator
}

func NewBillingHandler(billingUsecase usecase.BillingUsecase, validator *validator.CustomValidator) *BillingHandler {
	return &BillingHandler{
		billingUsecase: billingUsecase,
		validator:      validator,
	}
}

func (h *BillingHandler) CreateBilling(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBillingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	billing, err := h.billingUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeBillingError(w, err, "Failed to create billing record")
		return
	}

	response.Success(w, http.StatusCreated, "Billing record created successfully", billing)
}

func (h *BillingHandler) GetBilling(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid billing ID", nil)
		return
	}

	billing, err := h.billingUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeBillingError(w, err, "Failed to get billing record")
		return
	}

	response.Success(w, http.StatusOK, "Billing record retrieved successfully", billing)
}

func (h *BillingHandler) GetBillingByInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceNumber := mux.Vars(r)["invoiceNumber"]

	billing, err := h.billingUsecase.GetByInvoiceNumber(r.Context(), invoiceNumber)
	if err != nil {
		h.writeBillingError(w, err, "Failed to get billing record")
		return
	}

	response.Success(w, http.StatusOK, "Billing record retrieved successfully", billing)
}

func (h *BillingHandler) GetMyBilling(w http.ResponseWriter, r *http.Request) {
	records, err := h.billingUsecase.GetMyBilling(r.Context(), billingFilterFromQuery(r))
	if err != nil {
		response.InternalServerError(w, "Failed to get billing records")
		return
	}

	response.Success(w, http.StatusOK, "Billing records retrieved successfully", records)
}

func (h *BillingHandler) GetAllBilling(w http.ResponseWriter, r *http.Request) {
	records, err := h.billingUsecase.GetAll(r.Context(), billingFilterFromQuery(r))
	if err != nil {
		response.InternalServerError(w, "Failed to get billing records")
		return
	}

	response.Success(w, http.StatusOK, "Billing records retrieved successfully", records)
}

func (h *BillingHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid billing ID", nil)
		return
	}

	var req dto.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	billing, err := h.billingUsecase.ProcessPayment(r.Context(), id, &req)
	if err != nil {
		h.writeBillingError(w, err, "Failed to process payment")
		return
	}

	response.Success(w, http.StatusOK, "Payment processed successfully", billing)
}

func (h *BillingHandler) UpdateBilling(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid billing ID", nil)
		return
	}

	var req dto.UpdateBillingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	billing, err := h.billingUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeBillingError(w, err, "Failed to update billing record")
		return
	}

	response.Success(w, http.StatusOK, "Billing record updated successfully", billing)
}

func (h *BillingHandler) DeleteBilling(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid billing ID", nil)
		return
	}

	if err := h.billingUsecase.Delete(r.Context(), id); err != nil {
		h.writeBillingError(w, err, "Failed to delete billing record")
		return
	}

	response.Success(w, http.StatusOK, "Billing record deleted successfully", nil)
}

// writeBillingError maps domain errors to HTTP statuses
func (h *BillingHandler) writeBillingError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrBillingNotFound:
		response.NotFound(w, "Billing record not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrBillingNotOwned:
		response.Forbidden(w, "Billing record does not belong to you")
	case usecase.ErrAppointmentMismatch:
		response.BadRequest(w, "Appointment does not belong to the billed patient")
	case usecase.ErrNegativeAmount:
		response.BadRequest(w, "Fee amounts must not be negative")
	case entity.ErrPaymentNotPositive:
		response.BadRequest(w, "Payment amount must be greater than zero")
	case entity.ErrPaymentExceedsTotal:
		response.BadRequest(w, "Payment amount exceeds remaining balance")
	case entity.ErrBillingAlreadyPaid:
		response.Conflict(w, "Bill is already paid")
	case entity.ErrBillingTerminalState:
		response.Conflict(w, "Bill is cancelled or refunded")
	case usecase.ErrBillingNotUnpaid:
		response.Conflict(w, "Only unpaid billing records can be deleted")
	case usecase.ErrBillingNotEditable:
		response.Conflict(w, "Billing record cannot be modified in its current state")
	default:
		response.InternalServerError(w, fallback)
	}
}

func billingFilterFromQuery(r *http.Request) *entity.BillingFilter {
	offset, limit := parsePagination(r)
	return &entity.BillingFilter{
		Status: entity.BillingStatus(r.URL.Query().Get("status")),
		Offset: offset,
		Limit:  limit,
	}
}
