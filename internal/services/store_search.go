package services

import (
	"slices"
	"store-locator-service/internal/domain"
	"strings"
)

// StoreQuery narrows the directory listing. Zero values match everything.
type StoreQuery struct {
	// Text is matched case-insensitively against name, street address and city.
	Text string
	// State is a two-letter state code, compared case-insensitively.
	State string
}

// SearchStores returns the stores matching q, keeping directory order.
func SearchStores(stores []domain.StoreLocation, q StoreQuery) []domain.StoreLocation {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	state := strings.TrimSpace(q.State)

	out := make([]domain.StoreLocation, 0, len(stores))
	for _, s := range stores {
		if state != "" && !strings.EqualFold(s.State, state) {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(s.Name), text) &&
			!strings.Contains(strings.ToLower(s.Address), text) &&
			!strings.Contains(strings.ToLower(s.City), text) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// DistinctStates lists the states that have at least one store, sorted.
func DistinctStates(stores []domain.StoreLocation) []string {
	states := make([]string, 0, len(stores))
	for _, s := range stores {
		if s.State != "" && !slices.Contains(states, s.State) {
			states = append(states, s.State)
		}
	}
	slices.Sort(states)
	return states
}
