package handler

import (
	"encoding/json"
	"net/http"

	"healthcare-admin-api/internal/delivery/dto"
	"healthcare-admin-api/internal/delivery/http/middleware"
	"healthcare-admin-api/internal/usecase"
	"healthcare-admin-api/pkg/response"
	"healthcare-admin-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MedicalRecordHandler struct {
	recordUsecase usecase.MedicalRecordUsecase
	validator     *validator.CustomValidator
}

func NewMedicalRecordHandler(recordUsecase usecase.MedicalRecordUsecase, validator *validator.CustomValidator) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
	}
}

func (h *MedicalRecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeRecordError(w, err, "Failed to create medical record")
		return
	}

	response.Success(w, http.StatusCreated, "Medical record created successfully", record)
}

func (h *MedicalRecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	record, err := h.recordUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeRecordError(w, err, "Failed to get medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record retrieved successfully", record)
}

// GetMyRecords returns the logged-in patient's own history
func (h *MedicalRecordHandler) GetMyRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	offset, limit := parsePagination(r)
	records, err := h.recordUsecase.GetByPatient(r.Context(), userID, offset, limit)
	if err != nil {
		h.writeRecordError(w, err, "Failed to get medical records")
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved successfully", records)
}

// GetPatientRecords returns a given patient's history, for doctors and admins
func (h *MedicalRecordHandler) GetPatientRecords(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["patientId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	offset, limit := parsePagination(r)
	records, err := h.recordUsecase.GetByPatient(r.Context(), patientID, offset, limit)
	if err != nil {
		h.writeRecordError(w, err, "Failed to get medical records")
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved successfully", records)
}

func (h *MedicalRecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	var req dto.UpdateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeRecordError(w, err, "Failed to update medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record updated successfully", record)
}

func (h *MedicalRecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	if err := h.recordUsecase.Delete(r.Context(), id); err != nil {
		h.writeRecordError(w, err, "Failed to delete medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record deleted successfully", nil)
}

func (h *MedicalRecordHandler) writeRecordError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrRecordNotFound:
		response.NotFound(w, "Medical record not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrRecordNotAllowed:
		response.Forbidden(w, "You are not allowed to access this medical record")
	default:
		response.InternalServerError(w, fallback)
	}
}
