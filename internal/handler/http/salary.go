package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/devxankit/appzeto-payroll/internal/domain/salary"
	"github.com/devxankit/appzeto-payroll/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	Provision(w http.ResponseWriter, r *http.Request)
	GenerateMonth(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

func (h *salaryHandlerImpl) Provision(w http.ResponseWriter, r *http.Request) {
	var req salary.ProvisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryService.Provision(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary records provisioned", result)
}

func (h *salaryHandlerImpl) GenerateMonth(w http.ResponseWriter, r *http.Request) {
	var req salary.GenerateMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryService.GenerateMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary record ID is required", nil)
		return
	}

	var req salary.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.salaryService.SetStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.LedgerWarning != "" {
		response.SuccessWithMessage(w, result.LedgerWarning, result)
		return
	}
	response.Success(w, result)
}

func (h *salaryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary record ID is required", nil)
		return
	}

	if err := h.salaryService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary record deleted", nil)
}

func (h *salaryHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary record ID is required", nil)
		return
	}

	result, err := h.salaryService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := salary.ListFilter{}
	if v := query.Get("month"); v != "" {
		filter.Month = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := query.Get("category"); v != "" {
		filter.Category = &v
	}
	if v := query.Get("member_id"); v != "" {
		filter.MemberID = &v
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	result, err := h.salaryService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
