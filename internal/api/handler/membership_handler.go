package handler

import (
	"encoding/json"
	"net/http"

	"farmdirect/internal/api/middleware"
	"farmdirect/internal/app/service"
	"farmdirect/internal/common"

	"github.com/go-chi/chi/v5"
)

type MembershipHandler struct {
	membershipService *service.MembershipService
}

func NewMembershipHandler(ms *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: ms}
}

func (h *MembershipHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/", h.listMemberships)
	r.Post("/", h.purchase)
	r.Post("/{membershipID}/refund", h.refund)
}

func (h *MembershipHandler) listMemberships(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	memberships, err := h.membershipService.ListForConsumer(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, memberships)
}

func (h *MembershipHandler) purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req struct {
		FarmerID string `json:"farmer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	membership, err := h.membershipService.Purchase(r.Context(), userID, req.FarmerID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, membership)
}

func (h *MembershipHandler) refund(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	membershipID := chi.URLParam(r, "membershipID")

	if err := h.membershipService.MarkRefunded(r.Context(), userID, membershipID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "refunded"})
}
