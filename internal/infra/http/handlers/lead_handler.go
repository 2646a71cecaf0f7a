package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/automatedtaxcredits/intake-api/internal/infra/http/middleware"
	"github.com/automatedtaxcredits/intake-api/internal/usecase"
)

// LeadService is implemented by usecase.LeadUseCase.
type LeadService interface {
	InsertDeal(ctx context.Context, in usecase.InsertDealRequest) (json.RawMessage, error)
	InsertTaxIntake(ctx context.Context, in usecase.InsertTaxIntakeRequest) (json.RawMessage, error)
	UpdateStage(ctx context.Context, id string, in usecase.UpdateStageRequest) (json.RawMessage, error)
	UpdateTaxStage(ctx context.Context, id string, in usecase.UpdateStageRequest) (json.RawMessage, error)
	UpdateAmount(ctx context.Context, id string, in usecase.UpdateAmountRequest) (json.RawMessage, error)
	UpdateSSN(ctx context.Context, id string, in usecase.UpdateSSNRequest) (json.RawMessage, error)
	UpdateRecord(ctx context.Context, id string, in usecase.UpdateRecordRequest) (json.RawMessage, error)
	UpdateExisting(ctx context.Context, id string, in usecase.UpdateExistingRequest) (json.RawMessage, error)
	GetRecord(ctx context.Context, id string) (json.RawMessage, error)
}

type LeadHandler struct {
	Leads  LeadService
	Logger *zap.Logger
}

func NewLeadHandler(leads LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{Leads: leads, Logger: logger}
}

func (h *LeadHandler) InsertDeal(w http.ResponseWriter, r *http.Request) {
	var in usecase.InsertDealRequest
	h.serve(w, r, "insert_deal", &in, func(ctx context.Context) (json.RawMessage, error) {
		return h.Leads.InsertDeal(ctx, in)
	})
}

func (h *LeadHandler) InsertTaxIntake(w http.ResponseWriter, r *http.Request) {
	var in usecase.InsertTaxIntakeRequest
	h.serve(w, r, "insert_tax_intake", &in, func(ctx context.Context) (json.RawMessage, error) {
		return h.Leads.InsertTaxIntake(ctx, in)
	})
}

func (h *LeadHandler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	var in usecase.UpdateStageRequest
	h.serve(w, r, "update_stage", &in, func(ctx context.Context) (json.RawMessage, error) {
		return h.Leads.UpdateStage(ctx, chi.URLParam(r, "id"), in)
	})
}

func (h *LeadHandler) UpdateTaxStage(w http.ResponseWriter, r *http.Request) {
	var in usecase.UpdateStageRequest
	h.serve(w, r, "update_tax_stage", &in, func(ctx context.Context) (json.RawMessage, error) {
		return h.Leads.UpdateTaxStage(ctx, chi.URLParam(r, "id"), in)
	})
}

func (h *LeadHandler) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	var in usecase.UpdateAmountRequest
	h.serve(w, r, "update_amount", &in, func(ctx context.Context) (json.RawMessage, error) {
		return h.Leads.UpdateAmount(ctx, chi.URLParam(r, "id"), in)
	})
}

func (h *LeadHandler) UpdateSSN(w http.ResponseWriter, r *http.Request) {
	var in usecase.UpdateSSNRequest
	h.serve(w, r, "update_ssn", &in, func(ctx context.Context) (json.RawMessage, error) {
		return h.Leads.UpdateSSN(ctx, chi.URLParam(r, "id"), in)
	})
}

func (h *LeadHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var in usecase.UpdateRecordRequest
	h.serve(w, r, "update_record", &in, func(ctx context.Context) (json.RawMessage, error) {
		return h.Leads.UpdateRecord(ctx, chi.URLParam(r, "id"), in)
	})
}

func (h *LeadHandler) UpdateExisting(w http.ResponseWriter, r *http.Request) {
	var in usecase.UpdateExistingRequest
	h.serve(w, r, "update_existing", &in, func(ctx context.Context) (json.RawMessage, error) {
		return h.Leads.UpdateExisting(ctx, chi.URLParam(r, "id"), in)
	})
}

func (h *LeadHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_record", nil, func(ctx context.Context) (json.RawMessage, error) {
		return h.Leads.GetRecord(ctx, chi.URLParam(r, "id"))
	})
}

// serve decodes into in (when non-nil), runs call and writes the CRM body through.
func (h *LeadHandler) serve(w http.ResponseWriter, r *http.Request, op string, in any, call func(context.Context) (json.RawMessage, error)) {
	if in != nil {
		if err := decode(r, in); err != nil {
			writeError(w, h.Logger, err)
			return
		}
	}

	body, err := call(r.Context())
	if err != nil {
		if usecase.IsTechnicalError(err) {
			middleware.RecordLeadWrite(op, usecase.StatusFor(err))
		}
		writeError(w, h.Logger, err)
		return
	}

	middleware.RecordLeadWrite(op, http.StatusOK)
	writeRaw(w, http.StatusOK, body)
}
