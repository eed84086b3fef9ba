package handlers

import (
	"context"
	"errors"
	"net/http"
	"store-locator-service/internal/adapters/position"
	"store-locator-service/internal/api/dto"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/services"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// NearestHandler runs the locator flow for the calling client.
type NearestHandler struct {
	Pool *services.LocatorPool
}

// Nearest answers GET /stores/nearest.
//
// With lat and lon the caller's own position is used and the cache is not read.
// Without them the cached lookup is served when fresh, otherwise the position is
// acquired from the caller's IP. refresh=true skips the cache.
func (h *NearestHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := services.LocateOptions{}
	if v := strings.TrimSpace(q.Get("refresh")); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "refresh must be a boolean")
			return
		}
		opts.Refresh = refresh
	}

	latStr, lonStr := strings.TrimSpace(q.Get("lat")), strings.TrimSpace(q.Get("lon"))
	if latStr != "" || lonStr != "" {
		pos, err := parsePosition(latStr, lonStr)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		opts.Position = &pos
	}

	id := callerID(w, r)
	ctx := position.WithClientIP(r.Context(), clientIP(r))

	result, err := h.Pool.Get(id).Locate(ctx, opts)
	if err != nil {
		h.writeLocateError(w, r, err)
		return
	}

	if result == nil {
		writeJSON(w, r, http.StatusOK, dto.NearestStoreResponse{
			Notice: notice("No stores are available right now"),
		})
		return
	}

	store := dto.FromStore(result.Store)
	distance := result.DistanceKm
	writeJSON(w, r, http.StatusOK, dto.NearestStoreResponse{
		Store:             &store,
		DistanceKm:        &distance,
		FormattedDistance: result.FormattedDistance,
		Cached:            result.FromCache,
		Links:             dto.LinksFor(result.Store, requestPlatform(r)),
	})
}

func (h *NearestHandler) writeLocateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrPositionDenied):
		writeNotice(w, r, http.StatusForbidden, "Location access was denied")
	case errors.Is(err, domain.ErrPositionTimeout), errors.Is(err, context.DeadlineExceeded):
		writeNotice(w, r, http.StatusGatewayTimeout, "Locating you took too long, please try again")
	case errors.Is(err, domain.ErrPositionUnavailable):
		writeNotice(w, r, http.StatusServiceUnavailable, "Your location could not be determined")
	case errors.Is(err, domain.ErrSuperseded):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, context.Canceled):
		// Client went away; nothing to write to.
	default:
		zap.L().Error("locate nearest store failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func parsePosition(latStr, lonStr string) (domain.GeoPosition, error) {
	if latStr == "" || lonStr == "" {
		return domain.GeoPosition{}, errors.New("provide both lat and lon")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.GeoPosition{}, errors.New("invalid lat value")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.GeoPosition{}, errors.New("invalid lon value")
	}

	pos := domain.GeoPosition{Lat: lat, Lon: lon}
	if err := pos.Validate(); err != nil {
		return domain.GeoPosition{}, err
	}
	return pos, nil
}
