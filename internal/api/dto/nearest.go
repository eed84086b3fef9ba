package dto

// NoticeResponse is a transient, dismissible message for the UI.
type NoticeResponse struct {
	Message        string `json:"message"`
	DismissAfterMs int64  `json:"dismiss_after_ms"`
}

type NearestStoreResponse struct {
	Store             *StoreResponse  `json:"store"`
	DistanceKm        *float64        `json:"distance_km"`
	FormattedDistance string          `json:"formatted_distance,omitempty"`
	Cached            bool            `json:"cached"`
	Links             *LinksResponse  `json:"links,omitempty"`
	Notice            *NoticeResponse `json:"notice,omitempty"`
}

type ErrorResponse struct {
	Error  string          `json:"error"`
	Notice *NoticeResponse `json:"notice,omitempty"`
}
