package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/tc2000/fantasy/models"
	"github.com/tc2000/fantasy/services"
)

// EventController handles race calendar requests
type EventController struct {
	services *services.Services
}

// NewEventController creates a new event controller
func NewEventController(services *services.Services) *EventController {
	return &EventController{
		services: services,
	}
}

// Index handles GET /events
func (c *EventController) Index(w http.ResponseWriter, r *http.Request) {
	events, err := c.services.Event.GetAllEvents(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load events")
		return
	}

	if events == nil {
		events = []models.RaceEvent{}
	}
	respondJSON(w, http.StatusOK, events)
}

// Create handles POST /events
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.RaceEventForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := c.services.Event.CreateEvent(r.Context(), &form)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int{"event_id": event.ID})
}

// Update handles PUT /events/{id}
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	var form models.RaceEventForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := c.services.Event.UpdateEvent(r.Context(), id, &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// Circuits handles GET /circuits
func (c *EventController) Circuits(w http.ResponseWriter, r *http.Request) {
	circuits, err := c.services.Event.GetAllCircuits(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load circuits")
		return
	}

	if circuits == nil {
		circuits = []models.Circuit{}
	}
	respondJSON(w, http.StatusOK, circuits)
}

// CreateCircuit handles POST /circuits
func (c *EventController) CreateCircuit(w http.ResponseWriter, r *http.Request) {
	var form models.CircuitForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	circuit, err := c.services.Event.CreateCircuit(r.Context(), &form)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int{"circuit_id": circuit.ID})
}
