package handlers

import (
	"encoding/json"
	"net/http"
	"store-locator-service/internal/api/dto"
	"time"

	"go.uber.org/zap"
)

// NoticeDismissAfter is how long a UI keeps a failure notice before dismissing it.
const NoticeDismissAfter = 5 * time.Second

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

// writeNotice is writeError plus a dismissible notice for the UI.
func writeNotice(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg, Notice: notice(msg)})
}

func notice(msg string) *dto.NoticeResponse {
	return &dto.NoticeResponse{Message: msg, DismissAfterMs: NoticeDismissAfter.Milliseconds()}
}
