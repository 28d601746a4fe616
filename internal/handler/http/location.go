package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/geoattend/geoattend-backend-go/internal/domain/location"
	"github.com/geoattend/geoattend-backend-go/internal/handler/http/response"
)

type LocationHandler interface {
	PinLocation(w http.ResponseWriter, r *http.Request)
	GetActivePin(w http.ResponseWriter, r *http.Request)
	Track(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	TodaySummary(w http.ResponseWriter, r *http.Request)
}

type LocationHandlerImpl struct {
	locationService location.LocationService
}

func NewLocationHandler(locationService location.LocationService) LocationHandler {
	return &LocationHandlerImpl{locationService: locationService}
}

// PinLocation implements LocationHandler.
func (h *LocationHandlerImpl) PinLocation(w http.ResponseWriter, r *http.Request) {
	var req location.PinLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("PinLocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	pin, err := h.locationService.PinLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Location pinned successfully", pin)
}

// GetActivePin implements LocationHandler.
func (h *LocationHandlerImpl) GetActivePin(w http.ResponseWriter, r *http.Request) {
	pin, err := h.locationService.GetActivePin(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pin)
}

// Track implements LocationHandler.
func (h *LocationHandlerImpl) Track(w http.ResponseWriter, r *http.Request) {
	var req location.TrackRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Track decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.locationService.TrackSample(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements LocationHandler.
func (h *LocationHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	filter := location.HistoryFilter{
		Filter: r.URL.Query().Get("filter"),
	}

	history, err := h.locationService.GetHistory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// TodaySummary implements LocationHandler.
func (h *LocationHandlerImpl) TodaySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.locationService.GetTodaySummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if summary == nil {
		response.SuccessWithMessage(w, "No samples tracked today", nil)
		return
	}

	response.Success(w, summary)
}
