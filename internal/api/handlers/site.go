package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"store-locator-service/internal/api/dto"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/ports"
	"store-locator-service/internal/services"
	"time"

	"go.uber.org/zap"
)

// SiteHandler serves the static site copy loaded at startup.
type SiteHandler struct {
	Content domain.SiteContent
}

func (h *SiteHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.ListJobsResponse{Jobs: nonNil(h.Content.Jobs)})
}

func (h *SiteHandler) About(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.AboutResponse{
		Timeline: nonNil(h.Content.Timeline),
		Values:   nonNil(h.Content.Values),
		Features: nonNil(h.Content.Features),
	})
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	Repo ports.ContactRepository
	Now  func() time.Time
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactRequest

	dec := json.NewDecoder(io.LimitReader(r.Body, 64<<10))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	msg, err := services.SubmitContact(r.Context(), h.Repo, domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}, now())
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, r, http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
				Error:  domain.ErrInvalidContact.Error(),
				Fields: ve.Fields,
			})
			return
		}
		zap.L().Error("submit contact failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.ContactResponse{ID: msg.ID, ReceivedAt: msg.ReceivedAt})
}
