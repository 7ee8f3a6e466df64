package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rezagth/gestion-installations/httpx"
	"github.com/rezagth/gestion-installations/internal/db"
	"github.com/rezagth/gestion-installations/internal/export"
	"github.com/rezagth/gestion-installations/internal/middleware"
	"github.com/rezagth/gestion-installations/internal/services"
	"github.com/rezagth/gestion-installations/validation"
	"github.com/rezagth/gestion-installations/view"
	"go.uber.org/zap"
)

type MaterielHandler struct {
	Service *services.MaterielService
	Log     *zap.Logger
}

func NewMaterielHandler(svc *services.MaterielService, log *zap.Logger) *MaterielHandler {
	return &MaterielHandler{Service: svc, Log: log}
}

// List returns the materiels matching ?search=, or all of them. No match is an empty 200.
func (h *MaterielHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	materiels, err := h.Service.List(r.Context(), search)
	if err != nil {
		h.Log.Error("list materiels", zap.String("search", search), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, db.Describe(err), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, materiels)
}

// Get returns one materiel as JSON, or its detail page for browsers.
func (h *MaterielHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	html := httpx.WantsHTML(r)
	m, err := h.Service.Get(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		if html {
			h.render(w, r, http.StatusNotFound, "not_found.html", map[string]any{"Message": "materiel.not_found"})
			return
		}
		httpx.JSONError(w, http.StatusNotFound, msgMaterielNotFound, nil)
		return
	}
	if err != nil {
		h.Log.Error("get materiel", zap.String("id", id), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, msgMaterielGetFailed, nil)
		return
	}
	if html {
		h.render(w, r, http.StatusOK, "materiel.html", map[string]any{"Materiel": m})
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

func (h *MaterielHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.MaterielInput
	if !h.decode(w, r, &input) {
		return
	}
	m, err := h.Service.Create(r.Context(), input)
	if err != nil {
		h.Log.Error("create materiel", zap.String("installationId", input.InstallationID), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, msgMaterielCreateFailed, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

// Update overwrites every field of the materiel given by the body id.
func (h *MaterielHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input services.MaterielUpdate
	if !h.decode(w, r, &input) {
		return
	}
	m, err := h.Service.Update(r.Context(), input)
	if err != nil {
		h.Log.Error("update materiel", zap.String("id", input.ID), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, msgMaterielUpdateFailed, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

func (h *MaterielHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	v := validation.Violations{}
	validation.Required("id", id, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, msgMissingID, nil)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Log.Error("delete materiel", zap.String("id", id), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, msgMaterielDeleteFailed, nil)
		return
	}
	httpx.JSONMessage(w, http.StatusOK, msgMaterielDeleted)
}

// Export downloads the (optionally searched) listing as an xlsx workbook.
func (h *MaterielHandler) Export(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	materiels, err := h.Service.List(r.Context(), search)
	if err != nil {
		h.Log.Error("export materiels", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, msgExportFailed, nil)
		return
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, materiels, middleware.LangFrom(r)); err != nil {
		h.Log.Error("build workbook", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, msgExportFailed, nil)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(time.Now()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Log.Warn("stream workbook", zap.Error(err))
	}
}

// decode reads the JSON body into dst and reports 400 when it is unreadable or
// misses a required field.
func (h *MaterielHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, msgMaterielMissingField, nil)
		return false
	}
	v, err := validation.Struct(dst)
	if err != nil {
		h.Log.Error("validate materiel", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, msgMaterielCreateFailed, nil)
		return false
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, msgMaterielMissingField, v)
		return false
	}
	return true
}

func (h *MaterielHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	var err error
	if status == http.StatusOK {
		err = view.Render(w, r, name, data)
	} else {
		err = view.RenderStatus(w, r, status, name, data)
	}
	if err != nil {
		h.Log.Error("render", zap.String("template", name), zap.Error(err))
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}
