package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rezagth/gestion-installations/httpx"
	"github.com/rezagth/gestion-installations/internal/db"
	"github.com/rezagth/gestion-installations/internal/handlers"
	"github.com/rezagth/gestion-installations/internal/middleware"
	"github.com/rezagth/gestion-installations/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(conn *gorm.DB, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, middleware.Logging(log), middleware.Recover(log), middleware.Prefs)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})

	//revive:disable:unused-parameter simple handlers ignore *http.Request
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.Ping(req.Context(), conn); err != nil {
			log.Warn("healthz", zap.Error(err))
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	instSvc := services.NewInstallationService(conn)
	matSvc := services.NewMaterielService(conn)
	ih := handlers.NewInstallationHandler(instSvc, log)
	mh := handlers.NewMaterielHandler(matSvc, log)
	sh := handlers.NewSuiviHandler(matSvc, log)

	registerAPI(r, ih, mh)
	r.Route("/api", func(api chi.Router) { registerAPI(api, ih, mh) })

	r.Get("/suivi", sh.Page)
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/suivi", http.StatusFound)
	})
	return r
}

func registerAPI(r chi.Router, ih *handlers.InstallationHandler, mh *handlers.MaterielHandler) {
	r.Route("/installations", func(r chi.Router) {
		r.Get("/", ih.List)
		r.Post("/", ih.Create)
		r.Get("/{id}", ih.Get)
	})
	r.Route("/materiels", func(r chi.Router) {
		r.Get("/", mh.List)
		r.Post("/", mh.Create)
		r.Put("/", mh.Update)
		r.Delete("/", mh.Delete)
		r.Get("/export", mh.Export)
		r.Get("/{id}", mh.Get)
	})
}
