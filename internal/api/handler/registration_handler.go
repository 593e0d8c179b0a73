package handler

import (
	"encoding/json"
	"net/http"

	"farmdirect/internal/app/service"
	"farmdirect/internal/common"
	"farmdirect/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

// RegistrationHandler drives the two-step seller wizard. The flow state
// travels with each request and comes back updated, so the server holds no
// per-wizard state between calls.
type RegistrationHandler struct {
	registrationService *service.RegistrationService
}

func NewRegistrationHandler(rs *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: rs}
}

func (h *RegistrationHandler) RegisterRoutes(r chi.Router) {
	r.Post("/start", h.start)
	r.Post("/personal", h.personalDetails)
	r.Post("/product", h.productDetails)
	r.Post("/another", h.anotherProduct)
}

func (h *RegistrationHandler) start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Entry    service.Entry            `json:"entry"`
		Session  *model.Session           `json:"session,omitempty"`
		Business *service.BusinessDetails `json:"business,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.Entry == "" {
		req.Entry = service.EntryDefault
	}

	flow, err := h.registrationService.Start(r.Context(), req.Entry, req.Session, req.Business)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, flow)
}

func (h *RegistrationHandler) personalDetails(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Flow  *service.Flow                `json:"flow"`
		Input service.PersonalDetailsInput `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.Flow == nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing flow state")
		return
	}

	if err := h.registrationService.SubmitPersonalDetails(r.Context(), req.Flow, req.Input); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, req.Flow)
}

func (h *RegistrationHandler) productDetails(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Flow  *service.Flow               `json:"flow"`
		Input service.ProductDetailsInput `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.Flow == nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing flow state")
		return
	}

	product, err := h.registrationService.SubmitProductDetails(r.Context(), req.Flow, req.Input)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"flow":    req.Flow,
		"product": product,
	})
}

func (h *RegistrationHandler) anotherProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Flow *service.Flow `json:"flow"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.Flow == nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing flow state")
		return
	}

	if err := h.registrationService.ResetForAnotherProduct(req.Flow); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, req.Flow)
}
