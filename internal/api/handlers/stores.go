package handlers

import (
	"net/http"
	"store-locator-service/internal/api/dto"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/ports"
	"store-locator-service/internal/services"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// StoreHandler exposes read-only directory and link endpoints.
type StoreHandler struct {
	Directory ports.StoreDirectory
}

// List answers GET /stores?q=&state=. Both filters are optional.
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stores := services.SearchStores(h.Directory.Stores(), services.StoreQuery{
		Text:  q.Get("q"),
		State: q.Get("state"),
	})

	res := dto.ListStoresResponse{
		Stores: make([]dto.StoreResponse, 0, len(stores)),
	}
	for _, s := range stores {
		res.Stores = append(res.Stores, dto.FromStore(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *StoreHandler) States(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.ListStatesResponse{States: services.DistinctStates(h.Directory.Stores())})
}

func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.FromStore(s))
}

func (h *StoreHandler) Directions(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	link := services.BuildDirectionsLink(s, requestPlatform(r))
	writeJSON(w, r, http.StatusOK, dto.FromDirections(link))
}

func (h *StoreHandler) Call(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.CallResponse{URI: services.BuildCallLink(s)})
}

func (h *StoreHandler) store(w http.ResponseWriter, r *http.Request) (domain.StoreLocation, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "store id must be a positive integer")
		return domain.StoreLocation{}, false
	}

	s, ok := h.Directory.Store(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, domain.ErrStoreNotFound.Error())
		return domain.StoreLocation{}, false
	}
	return s, true
}
