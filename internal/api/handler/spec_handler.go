package handler

import (
	"net/http"
	"strings"

	"farmdirect/internal/common"
	"farmdirect/internal/domain/spec"

	"github.com/go-chi/chi/v5"
)

// SpecHandler serves the specification templates the product form renders:
// which choice groups apply to a category, and their options.
type SpecHandler struct{}

func NewSpecHandler() *SpecHandler {
	return &SpecHandler{}
}

func (h *SpecHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.getTemplate) // GET /api/v1/spec-templates?category=cereals&subType=rice&mapped=Polished+Rice&q=grade
}

func (h *SpecHandler) getTemplate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	if category == "" {
		common.RespondWithError(w, http.StatusBadRequest, "category is required")
		return
	}

	var mapped []string
	if raw := q.Get("mapped"); raw != "" {
		mapped = strings.Split(raw, ",")
	}

	template := spec.Resolve(category, q.Get("subType"), mapped)
	groups := template.Visible()
	if query := q.Get("q"); query != "" {
		groups = spec.Filter(groups, query)
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"template":         template.Key,
		"requires_mapping": template.RequiresMapping,
		"groups":           groups,
	})
}
