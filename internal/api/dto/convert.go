package dto

import (
	"store-locator-service/internal/domain"
	"store-locator-service/internal/services"
)

func FromStore(s domain.StoreLocation) StoreResponse {
	return StoreResponse{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		City:        s.City,
		State:       s.State,
		Zip:         s.Zip,
		Phone:       s.Phone,
		Hours:       s.Hours,
		FullAddress: s.FullAddress(),
		Lat:         s.Position.Lat,
		Lon:         s.Position.Lon,
	}
}

func FromDirections(l services.DirectionsLink) DirectionsResponse {
	return DirectionsResponse{
		Platform:        string(l.Platform),
		URI:             l.URI,
		FallbackURI:     l.FallbackURI,
		FallbackDelayMs: l.FallbackDelay.Milliseconds(),
		NewContext:      l.NewContext,
	}
}

func LinksFor(s domain.StoreLocation, platform domain.Platform) *LinksResponse {
	return &LinksResponse{
		Directions: FromDirections(services.BuildDirectionsLink(s, platform)),
		Call:       services.BuildCallLink(s),
	}
}
