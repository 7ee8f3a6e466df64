package handlers

import (
	"net/http"

	"github.com/rezagth/gestion-installations/i18n"
	"github.com/rezagth/gestion-installations/internal/middleware"
	"github.com/rezagth/gestion-installations/internal/services"
	"github.com/rezagth/gestion-installations/internal/suivi"
	"github.com/rezagth/gestion-installations/view"
	"go.uber.org/zap"
)

// SuiviHandler serves the equipment tracking page.
type SuiviHandler struct {
	Service *services.MaterielService
	Log     *zap.Logger
}

func NewSuiviHandler(svc *services.MaterielService, log *zap.Logger) *SuiviHandler {
	return &SuiviHandler{Service: svc, Log: log}
}

// Page fetches the full listing once and renders the cards matching ?q=.
func (h *SuiviHandler) Page(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	data := map[string]any{"Query": q}
	materiels, err := h.Service.List(r.Context(), "")
	if err != nil {
		h.Log.Error("load suivi", zap.Error(err))
		data["Error"] = i18n.T(middleware.LangFrom(r), "suivi.load_error")
		err = view.RenderStatus(w, r, http.StatusInternalServerError, "suivi.html", data)
	} else {
		data["Cards"] = suivi.Cards(materiels, q)
		err = view.Render(w, r, "suivi.html", data)
	}
	if err != nil {
		h.Log.Error("render suivi", zap.Error(err))
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}
