package handler

import (
	"encoding/json"
	"net/http"

	"github.com/quizdeck-dev/quizdeck/internal/config"
	"github.com/quizdeck-dev/quizdeck/internal/jwt"
	"github.com/quizdeck-dev/quizdeck/internal/logger"
	"github.com/quizdeck-dev/quizdeck/internal/service"
	"github.com/quizdeck-dev/quizdeck/internal/status"
)

type Handler struct {
	svc *service.Services
	cfg *config.Config
	jwt jwt.JwtService
}

func New(svc *service.Services, cfg *config.Config, jwt jwt.JwtService) *Handler {
	return &Handler{svc: svc, cfg: cfg, jwt: jwt}
}

// statusResponse is the uniform wire shape: a stable status token plus an
// optional result payload.
type statusResponse struct {
	Status string `json:"status"`
	Result any    `json:"result,omitempty"`
}

func writeResult(w http.ResponseWriter, st status.Status, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(st.HTTPCode())
	if err := json.NewEncoder(w).Encode(statusResponse{Status: string(st), Result: result}); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func writeStatus(w http.ResponseWriter, st status.Status) {
	writeResult(w, st, nil)
}

// writeCreated emits a success token with a 201 for resource-creating routes.
func writeCreated(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(statusResponse{Status: string(status.Success), Result: result}); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
