package main

import (
	"net/http"

	"github.com/rezagth/gestion-installations/internal/middleware"
	"github.com/rezagth/gestion-installations/internal/server"
	"github.com/rezagth/gestion-installations/view"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewApp wires the view layer to the request preferences and returns the routed handler.
func NewApp(db *gorm.DB, log *zap.Logger, dev bool) http.Handler {
	view.SetDevMode(dev)
	view.SetLangResolver(middleware.LangFrom)
	return server.New(db, log)
}
