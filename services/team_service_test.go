package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tc2000/fantasy/models"
)

func TestTeamLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	team, err := env.services.Team.CreateTeam(ctx, &models.TeamForm{
		Name:        "Equipo Azul",
		BaseCountry: "Argentina",
	})
	require.NoError(t, err)
	assert.NotZero(t, team.ID)

	// The mutation reaches the live feed with its lower-cased action tag
	consumeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	msg, err := env.bus.Consume(consumeCtx)
	require.NoError(t, err)
	assert.Equal(t, "team_create", msg.Type)
	assert.Equal(t, models.AuditSuccess, msg.Result)

	updated, err := env.services.Team.UpdateTeam(ctx, team.ID, &models.TeamForm{
		Name:        "Equipo Rojo",
		BaseCountry: "Argentina",
	})
	require.NoError(t, err)
	assert.Equal(t, "Equipo Rojo", updated.Name)

	require.NoError(t, env.services.Team.DeleteTeam(ctx, team.ID))

	teams, err := env.services.Team.GetAllTeams(ctx)
	require.NoError(t, err)
	assert.Empty(t, teams)

	require.Eventually(t, func() bool {
		return env.auditCount(t, "TEAM_DELETE")() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCreateTeamRejectsDuplicateName(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	form := &models.TeamForm{Name: "Equipo Azul"}
	_, err := env.services.Team.CreateTeam(ctx, form)
	require.NoError(t, err)

	_, err = env.services.Team.CreateTeam(ctx, form)
	assert.Error(t, err)
}

func TestDeleteTeamRefusesWithAssignedPilots(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	team, err := env.services.Team.CreateTeam(ctx, &models.TeamForm{Name: "Equipo Azul"})
	require.NoError(t, err)

	_, err = env.services.Pilot.CreatePilot(ctx, &models.PilotForm{
		Name:      "Juan Pérez",
		TeamID:    &team.ID,
		CarNumber: 7,
	})
	require.NoError(t, err)

	err = env.services.Team.DeleteTeam(ctx, team.ID)
	assert.Error(t, err)

	// Team must still exist
	remaining, err := env.services.Team.GetAllTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestCreatePilotRejectsMissingTeam(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	missing := 999
	_, err := env.services.Pilot.CreatePilot(ctx, &models.PilotForm{
		Name:      "Juan Pérez",
		TeamID:    &missing,
		CarNumber: 7,
	})
	assert.Error(t, err)
}

func TestEventRequiresExistingCircuit(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.services.Event.CreateEvent(ctx, &models.RaceEventForm{
		Name:      "Fecha 1",
		CircuitID: 999,
		StartAt:   time.Now().Add(48 * time.Hour),
	})
	assert.Error(t, err)

	circuit, err := env.services.Event.CreateCircuit(ctx, &models.CircuitForm{
		Name:     "Autódromo de Buenos Aires",
		LengthKM: 3.3,
		Laps:     40,
	})
	require.NoError(t, err)

	event, err := env.services.Event.CreateEvent(ctx, &models.RaceEventForm{
		Name:      "Fecha 1",
		CircuitID: circuit.ID,
		StartAt:   time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventScheduled, event.Status)

	require.Eventually(t, func() bool {
		return env.auditCount(t, "EVENT_CREATE")() == 1
	}, time.Second, 10*time.Millisecond)
}
