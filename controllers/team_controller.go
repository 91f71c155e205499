package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/tc2000/fantasy/models"
	"github.com/tc2000/fantasy/services"
)

// TeamController handles racing team requests
type TeamController struct {
	services *services.Services
}

// NewTeamController creates a new team controller
func NewTeamController(services *services.Services) *TeamController {
	return &TeamController{
		services: services,
	}
}

// Index handles GET /teams
func (c *TeamController) Index(w http.ResponseWriter, r *http.Request) {
	teams, err := c.services.Team.GetAllTeams(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load teams")
		return
	}

	if teams == nil {
		teams = []models.Team{}
	}
	respondJSON(w, http.StatusOK, teams)
}

// Create handles POST /teams
func (c *TeamController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.TeamForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	team, err := c.services.Team.CreateTeam(r.Context(), &form)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int{"team_id": team.ID})
}

// Update handles PUT /teams/{id}
func (c *TeamController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	var form models.TeamForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	team, err := c.services.Team.UpdateTeam(r.Context(), id, &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// Delete handles DELETE /teams/{id}
func (c *TeamController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	if err := c.services.Team.DeleteTeam(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Team deleted"})
}
