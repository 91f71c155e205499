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

// PilotService interface defines pilot business logic
type PilotService interface {
	GetAllPilots(ctx context.Context) ([]models.Pilot, error)
	GetPilotByID(ctx context.Context, id int) (*models.Pilot, error)
	CreatePilot(ctx context.Context, form *models.PilotForm) (*models.Pilot, error)
	UpdatePilot(ctx context.Context, id int, form *models.PilotForm) (*models.Pilot, error)
	DeletePilot(ctx context.Context, id int) error
}

// pilotService implements PilotService interface
type pilotService struct {
	pilotRepo repositories.PilotRepository
	teamRepo  repositories.TeamRepository
	notifier  *stream.Notifier
}

// NewPilotService creates a new pilot service
func NewPilotService(pilotRepo repositories.PilotRepository, teamRepo repositories.TeamRepository, notifier *stream.Notifier) PilotService {
	return &pilotService{
		pilotRepo: pilotRepo,
		teamRepo:  teamRepo,
		notifier:  notifier,
	}
}

// GetAllPilots retrieves all pilots with team names resolved
func (s *pilotService) GetAllPilots(ctx context.Context) ([]models.Pilot, error) {
	return s.pilotRepo.GetAll(ctx)
}

// GetPilotByID retrieves a pilot by ID
func (s *pilotService) GetPilotByID(ctx context.Context, id int) (*models.Pilot, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid pilot ID: %d", id)
	}
	return s.pilotRepo.GetByID(ctx, id)
}

// CreatePilot creates a new pilot with validation
func (s *pilotService) CreatePilot(ctx context.Context, form *models.PilotForm) (*models.Pilot, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errs, ", "))
	}

	if err := s.checkTeamExists(ctx, form.TeamID); err != nil {
		return nil, err
	}

	pilot := &models.Pilot{
		Name:      strings.TrimSpace(form.Name),
		TeamID:    form.TeamID,
		CarNumber: form.CarNumber,
	}

	if err := s.pilotRepo.Create(ctx, pilot); err != nil {
		return nil, fmt.Errorf("failed to create pilot: %w", err)
	}

	s.notifier.Emit(ctx, "PILOT_CREATE", fmt.Sprintf("Pilot %s created", pilot.Name),
		"pilots", strconv.Itoa(pilot.ID),
		map[string]any{"name": pilot.Name, "car_number": pilot.CarNumber},
		models.AuditSuccess)

	return pilot, nil
}

// UpdatePilot updates an existing pilot
func (s *pilotService) UpdatePilot(ctx context.Context, id int, form *models.PilotForm) (*models.Pilot, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid pilot ID: %d", id)
	}

	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errs, ", "))
	}

	pilot, err := s.pilotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pilot not found: %w", err)
	}

	if err := s.checkTeamExists(ctx, form.TeamID); err != nil {
		return nil, err
	}

	pilot.Name = strings.TrimSpace(form.Name)
	pilot.TeamID = form.TeamID
	pilot.CarNumber = form.CarNumber

	if err := s.pilotRepo.Update(ctx, pilot); err != nil {
		return nil, fmt.Errorf("failed to update pilot: %w", err)
	}

	s.notifier.Emit(ctx, "PILOT_UPDATE", fmt.Sprintf("Pilot %s updated", pilot.Name),
		"pilots", strconv.Itoa(pilot.ID),
		map[string]any{"name": pilot.Name, "car_number": pilot.CarNumber},
		models.AuditSuccess)

	return pilot, nil
}

// DeletePilot deletes a pilot by ID
func (s *pilotService) DeletePilot(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid pilot ID: %d", id)
	}

	pilot, err := s.pilotRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("pilot not found: %w", err)
	}

	if err := s.pilotRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete pilot: %w", err)
	}

	s.notifier.Emit(ctx, "PILOT_DELETE", fmt.Sprintf("Pilot %s deleted", pilot.Name),
		"pilots", strconv.Itoa(id), nil, models.AuditSuccess)

	return nil
}

// checkTeamExists verifies that the referenced team exists when assigned
func (s *pilotService) checkTeamExists(ctx context.Context, teamID *int) error {
	if teamID == nil {
		return nil
	}
	if _, err := s.teamRepo.GetByID(ctx, *teamID); err != nil {
		return fmt.Errorf("team not found: %w", err)
	}
	return nil
}
