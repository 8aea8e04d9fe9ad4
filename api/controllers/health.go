package controllers

import (
	"net/http"

	"github.com/denizaltun/quickpos-backend/api/responses"
	"github.com/denizaltun/quickpos-backend/pkg/config"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-QuickPOS-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
