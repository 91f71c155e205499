package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/tc2000/fantasy/models"
	"github.com/tc2000/fantasy/services"
)

// PilotController handles pilot requests
type PilotController struct {
	services *services.Services
}

// NewPilotController creates a new pilot controller
func NewPilotController(services *services.Services) *PilotController {
	return &PilotController{
		services: services,
	}
}

// Index handles GET /pilots
func (c *PilotController) Index(w http.ResponseWriter, r *http.Request) {
	pilots, err := c.services.Pilot.GetAllPilots(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load pilots")
		return
	}

	if pilots == nil {
		pilots = []models.Pilot{}
	}
	respondJSON(w, http.StatusOK, pilots)
}

// Create handles POST /pilots
func (c *PilotController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.PilotForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pilot, err := c.services.Pilot.CreatePilot(r.Context(), &form)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int{"pilot_id": pilot.ID})
}

// Update handles PUT /pilots/{id}
func (c *PilotController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid pilot ID")
		return
	}

	var form models.PilotForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pilot, err := c.services.Pilot.UpdatePilot(r.Context(), id, &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, pilot)
}

// Delete handles DELETE /pilots/{id}
func (c *PilotController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid pilot ID")
		return
	}

	if err := c.services.Pilot.DeletePilot(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Pilot deleted"})
}
