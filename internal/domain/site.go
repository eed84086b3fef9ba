package domain

import "time"

// Open position listed on the careers page.
type Job struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Location    string `json:"location" yaml:"location"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
}

// Milestone is one entry of the company timeline.
type Milestone struct {
	Year        string `json:"year" yaml:"year"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Highlight is a titled blurb: a company value or a home page feature.
type Highlight struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Static site copy served next to the store directory.
type SiteContent struct {
	Jobs     []Job       `json:"jobs" yaml:"jobs"`
	Timeline []Milestone `json:"timeline" yaml:"timeline"`
	Values   []Highlight `json:"values" yaml:"values"`
	Features []Highlight `json:"features" yaml:"features"`
}

// Message submitted through the contact form.
// ID and ReceivedAt are assigned when the message is accepted.
type ContactMessage struct {
	ID         string
	Name       string
	Email      string
	Subject    string
	Message    string
	ReceivedAt time.Time
}
