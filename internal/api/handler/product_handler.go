package handler

import (
	"encoding/json"
	"net/http"

	"farmdirect/internal/api/middleware"
	"farmdirect/internal/app/service"
	"farmdirect/internal/common"
	"farmdirect/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(ps *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

// RegisterRoutes mounts the public catalog.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listProducts)            // GET /api/v1/products?q=wheat&category=cereals
	r.Get("/{productSlug}", h.getProduct) // GET /api/v1/products/sharbati-wheat-1a2b3c4d
}

// RegisterSellerRoutes mounts the authenticated dashboard routes under
// /sellers/me/products.
func (h *ProductHandler) RegisterSellerRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Use(middleware.FarmerOnly)
	r.Get("/", h.listMine)
	r.Post("/", h.createProduct)
	r.Put("/{productID}", h.updateProduct)
	r.Post("/{productID}/toggle", h.toggleProduct)
	r.Delete("/{productID}", h.deleteProduct)
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	products, err := h.productService.List(r.Context(), query, category)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	productSlug := chi.URLParam(r, "productSlug")
	product, err := h.productService.GetBySlug(r.Context(), productSlug)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) listMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	products, err := h.productService.ListForSeller(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	product, err := h.productService.CreateForUser(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	productID := chi.URLParam(r, "productID")

	var req model.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.productService.Update(r.Context(), userID, productID, req); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *ProductHandler) toggleProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	productID := chi.URLParam(r, "productID")

	active, err := h.productService.ToggleActive(r.Context(), userID, productID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"is_active": active})
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	productID := chi.URLParam(r, "productID")

	if err := h.productService.Delete(r.Context(), userID, productID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
