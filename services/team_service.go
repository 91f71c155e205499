package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tc2000/fantasy/models"
	"github.com/tc2000/fantasy/repositories"
	"github.com/tc2000/fantasy/stream"
)

// TeamService interface defines racing team business logic
type TeamService interface {
	GetAllTeams(ctx context.Context) ([]models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	CreateTeam(ctx context.Context, form *models.TeamForm) (*models.Team, error)
	UpdateTeam(ctx context.Context, id int, form *models.TeamForm) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
}

// teamService implements TeamService interface
type teamService struct {
	teamRepo  repositories.TeamRepository
	pilotRepo repositories.PilotRepository
	notifier  *stream.Notifier
}

// NewTeamService creates a new team service
func NewTeamService(teamRepo repositories.TeamRepository, pilotRepo repositories.PilotRepository, notifier *stream.Notifier) TeamService {
	return &teamService{
		teamRepo:  teamRepo,
		pilotRepo: pilotRepo,
		notifier:  notifier,
	}
}

// GetAllTeams retrieves all racing teams
func (s *teamService) GetAllTeams(ctx context.Context) ([]models.Team, error) {
	return s.teamRepo.GetAll(ctx)
}

// GetTeamByID retrieves a racing team by ID
func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid team ID: %d", id)
	}
	return s.teamRepo.GetByID(ctx, id)
}

// CreateTeam creates a new racing team with validation
func (s *teamService) CreateTeam(ctx context.Context, form *models.TeamForm) (*models.Team, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errs, ", "))
	}

	if existing, err := s.findTeamByName(ctx, form.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("team %s already exists", form.Name)
	}

	team := &models.Team{
		Name:        strings.TrimSpace(form.Name),
		BaseCountry: strings.TrimSpace(form.BaseCountry),
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.notifier.Emit(ctx, "TEAM_CREATE", fmt.Sprintf("Team %s created", team.Name),
		"teams", strconv.Itoa(team.ID),
		map[string]any{"name": team.Name, "base_country": team.BaseCountry},
		models.AuditSuccess)

	return team, nil
}

// UpdateTeam updates an existing racing team
func (s *teamService) UpdateTeam(ctx context.Context, id int, form *models.TeamForm) (*models.Team, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid team ID: %d", id)
	}

	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errs, ", "))
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("team not found: %w", err)
	}

	if form.Name != team.Name {
		if existing, err := s.findTeamByName(ctx, form.Name); err == nil && existing != nil && existing.ID != id {
			return nil, fmt.Errorf("team %s already exists", form.Name)
		}
	}

	team.Name = strings.TrimSpace(form.Name)
	team.BaseCountry = strings.TrimSpace(form.BaseCountry)

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	s.notifier.Emit(ctx, "TEAM_UPDATE", fmt.Sprintf("Team %s updated", team.Name),
		"teams", strconv.Itoa(team.ID),
		map[string]any{"name": team.Name, "base_country": team.BaseCountry},
		models.AuditSuccess)

	return team, nil
}

// DeleteTeam deletes a racing team. Teams that still have pilots assigned
// cannot be deleted; reassign the pilots first.
func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid team ID: %d", id)
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("team not found: %w", err)
	}

	pilots, err := s.pilotRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check assigned pilots: %w", err)
	}
	for _, pilot := range pilots {
		if pilot.TeamID != nil && *pilot.TeamID == id {
			return fmt.Errorf("cannot delete team with assigned pilots. Reassign the pilots first")
		}
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	s.notifier.Emit(ctx, "TEAM_DELETE", fmt.Sprintf("Team %s deleted", team.Name),
		"teams", strconv.Itoa(id), nil, models.AuditSuccess)

	return nil
}

// findTeamByName finds a racing team by name (helper function)
func (s *teamService) findTeamByName(ctx context.Context, name string) (*models.Team, error) {
	if name == "" {
		return nil, fmt.Errorf("team name is empty")
	}

	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, team := range teams {
		if strings.EqualFold(team.Name, name) {
			return &team, nil
		}
	}

	return nil, fmt.Errorf("no team found with name: %s", name)
}
