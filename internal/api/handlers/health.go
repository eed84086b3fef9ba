package handlers

import (
	"net/http"
	"store-locator-service/internal/ports"
)

// HealthHandler reports liveness and how many stores are loaded.
type HealthHandler struct {
	Directory ports.StoreDirectory
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]any{
		"status": "ok",
		"stores": len(h.Directory.Stores()),
	}
	writeJSON(w, r, http.StatusOK, res)
}
