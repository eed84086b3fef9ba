package dto

import (
	"store-locator-service/internal/domain"
	"time"
)

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ContactResponse struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type ListJobsResponse struct {
	Jobs []domain.Job `json:"jobs"`
}

type AboutResponse struct {
	Timeline []domain.Milestone `json:"timeline"`
	Values   []domain.Highlight `json:"values"`
	Features []domain.Highlight `json:"features"`
}
