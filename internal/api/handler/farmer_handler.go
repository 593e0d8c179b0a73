package handler

import (
	"net/http"

	"farmdirect/internal/api/middleware"
	"farmdirect/internal/app/service"
	"farmdirect/internal/common"

	"github.com/go-chi/chi/v5"
)

type FarmerHandler struct {
	farmerService *service.FarmerService
}

func NewFarmerHandler(fs *service.FarmerService) *FarmerHandler {
	return &FarmerHandler{farmerService: fs}
}

// RegisterRoutes mounts the profile routes under /sellers/me/profile.
func (h *FarmerHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/", h.getProfile)
	r.Post("/", h.ensureProfile)
}

func (h *FarmerHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	farmer, err := h.farmerService.GetByUser(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, farmer)
}

// ensureProfile returns the existing profile or creates one with placeholder
// details. The dashboard calls this when a signed-in user lands on it
// without having completed registration.
func (h *FarmerHandler) ensureProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	farmer, err := h.farmerService.EnsureProfile(r.Context(), userID, nil)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, farmer)
}
