package dto

type StoreResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Zip         string  `json:"zip"`
	Phone       string  `json:"phone"`
	Hours       string  `json:"hours"`
	FullAddress string  `json:"full_address"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

type ListStoresResponse struct {
	Stores []StoreResponse `json:"stores"`
}

type ListStatesResponse struct {
	States []string `json:"states"`
}

type DirectionsResponse struct {
	Platform        string `json:"platform"`
	URI             string `json:"uri"`
	FallbackURI     string `json:"fallback_uri,omitempty"`
	FallbackDelayMs int64  `json:"fallback_delay_ms,omitempty"`
	NewContext      bool   `json:"new_context"`
}

type CallResponse struct {
	URI string `json:"uri"`
}

type LinksResponse struct {
	Directions DirectionsResponse `json:"directions"`
	Call       string             `json:"call"`
}
