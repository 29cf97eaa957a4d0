package httpx

import (
	"log/slog"
	"net/http"

	"github.com/target/garage-api/internal/domain/model"
	"github.com/target/garage-api/internal/service"
)

// CarHandlers provides the car CRUD endpoints.
type CarHandlers struct {
	Svc    *service.CarService
	Logger *slog.Logger
}

// Create stores a car. POST /cars.
func (h *CarHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCarRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	car, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, car)
}

// List returns a page of cars. GET /cars?limit=&offset=.
func (h *CarHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	cars, err := h.Svc.List(r.Context(), model.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, cars)
}

// GetByID returns one car. GET /cars/{id}.
func (h *CarHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	car, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, car)
}

// Update modifies a car. PUT /cars/{id}.
func (h *CarHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req model.UpdateCarRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if _, err := h.Svc.Update(r.Context(), id, req); err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a car. DELETE /cars/{id}.
func (h *CarHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
