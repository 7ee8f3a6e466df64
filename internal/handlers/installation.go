package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rezagth/gestion-installations/httpx"
	"github.com/rezagth/gestion-installations/internal/db"
	"github.com/rezagth/gestion-installations/internal/services"
	"github.com/rezagth/gestion-installations/validation"
	"go.uber.org/zap"
)

type InstallationHandler struct {
	Service *services.InstallationService
	Log     *zap.Logger
}

func NewInstallationHandler(svc *services.InstallationService, log *zap.Logger) *InstallationHandler {
	return &InstallationHandler{Service: svc, Log: log}
}

func (h *InstallationHandler) List(w http.ResponseWriter, r *http.Request) {
	installations, err := h.Service.List(r.Context())
	if err != nil {
		h.Log.Error("list installations", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, msgInstallationsListFailed, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, installations)
}

func (h *InstallationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst, err := h.Service.Get(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, msgInstallationNotFound, nil)
		return
	}
	if err != nil {
		h.Log.Error("get installation", zap.String("id", id), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, msgInstallationGetFailed, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inst)
}

// Create validates the aggregate payload then persists the installation with its materiels.
func (h *InstallationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.InstallationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, msgInstallationInvalid, nil)
		return
	}
	v, err := validation.Struct(input)
	if err != nil {
		h.Log.Error("validate installation", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, msgInstallationCreateFail, db.Describe(err))
		return
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, msgInstallationInvalid, v)
		return
	}
	inst, err := h.Service.Create(r.Context(), input)
	if err != nil {
		h.Log.Error("create installation", zap.String("nom", input.Nom), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, msgInstallationCreateFail, db.Describe(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, inst)
}
