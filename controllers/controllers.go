package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tc2000/fantasy/repositories"
	"github.com/tc2000/fantasy/services"
	"github.com/tc2000/fantasy/stream"
)

// respondJSON writes data as a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error body with the given status code
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// parseID parses the {id} route parameter. The boolean result is checked
// before any store access; a malformed identifier never reaches a repository.
func parseID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// respondServiceError maps a service error to a status code: missing
// resources are 404, everything else a validation failure
func respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}

// Controllers holds all controller instances
type Controllers struct {
	Auth   *AuthController
	Team   *TeamController
	Pilot  *PilotController
	Event  *EventController
	Stream *StreamController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, bus *stream.Bus) *Controllers {
	return &Controllers{
		Auth:   NewAuthController(services),
		Team:   NewTeamController(services),
		Pilot:  NewPilotController(services),
		Event:  NewEventController(services),
		Stream: NewStreamController(bus),
	}
}
