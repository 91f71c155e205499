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

// EventService interface defines race calendar business logic
type EventService interface {
	GetAllEvents(ctx context.Context) ([]models.RaceEvent, error)
	GetEventByID(ctx context.Context, id int) (*models.RaceEvent, error)
	CreateEvent(ctx context.Context, form *models.RaceEventForm) (*models.RaceEvent, error)
	UpdateEvent(ctx context.Context, id int, form *models.RaceEventForm) (*models.RaceEvent, error)
	GetAllCircuits(ctx context.Context) ([]models.Circuit, error)
	CreateCircuit(ctx context.Context, form *models.CircuitForm) (*models.Circuit, error)
}

// eventService implements EventService interface
type eventService struct {
	eventRepo   repositories.EventRepository
	circuitRepo repositories.CircuitRepository
	notifier    *stream.Notifier
}

// NewEventService creates a new race calendar service
func NewEventService(eventRepo repositories.EventRepository, circuitRepo repositories.CircuitRepository, notifier *stream.Notifier) EventService {
	return &eventService{
		eventRepo:   eventRepo,
		circuitRepo: circuitRepo,
		notifier:    notifier,
	}
}

// GetAllEvents retrieves all race events
func (s *eventService) GetAllEvents(ctx context.Context) ([]models.RaceEvent, error) {
	return s.eventRepo.GetAll(ctx)
}

// GetEventByID retrieves a race event by ID
func (s *eventService) GetEventByID(ctx context.Context, id int) (*models.RaceEvent, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid event ID: %d", id)
	}
	return s.eventRepo.GetByID(ctx, id)
}

// CreateEvent creates a new race event at an existing circuit
func (s *eventService) CreateEvent(ctx context.Context, form *models.RaceEventForm) (*models.RaceEvent, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errs, ", "))
	}

	if _, err := s.circuitRepo.GetByID(ctx, form.CircuitID); err != nil {
		return nil, fmt.Errorf("circuit not found: %w", err)
	}

	event := &models.RaceEvent{
		Name:      strings.TrimSpace(form.Name),
		CircuitID: form.CircuitID,
		StartAt:   form.StartAt,
		Status:    form.Status,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.notifier.Emit(ctx, "EVENT_CREATE", fmt.Sprintf("Event %s created", event.Name),
		"events", strconv.Itoa(event.ID),
		map[string]any{"name": event.Name, "circuit_id": event.CircuitID},
		models.AuditSuccess)

	return event, nil
}

// UpdateEvent updates an existing race event
func (s *eventService) UpdateEvent(ctx context.Context, id int, form *models.RaceEventForm) (*models.RaceEvent, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid event ID: %d", id)
	}

	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errs, ", "))
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}

	if form.CircuitID != event.CircuitID {
		if _, err := s.circuitRepo.GetByID(ctx, form.CircuitID); err != nil {
			return nil, fmt.Errorf("circuit not found: %w", err)
		}
	}

	event.Name = strings.TrimSpace(form.Name)
	event.CircuitID = form.CircuitID
	event.StartAt = form.StartAt
	if form.Status != "" {
		event.Status = form.Status
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.notifier.Emit(ctx, "EVENT_UPDATE", fmt.Sprintf("Event %s updated", event.Name),
		"events", strconv.Itoa(event.ID),
		map[string]any{"name": event.Name, "status": event.Status},
		models.AuditSuccess)

	return event, nil
}

// GetAllCircuits retrieves all circuits
func (s *eventService) GetAllCircuits(ctx context.Context) ([]models.Circuit, error) {
	return s.circuitRepo.GetAll(ctx)
}

// CreateCircuit creates a new circuit
func (s *eventService) CreateCircuit(ctx context.Context, form *models.CircuitForm) (*models.Circuit, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errs, ", "))
	}

	circuit := &models.Circuit{
		Name:     strings.TrimSpace(form.Name),
		Location: strings.TrimSpace(form.Location),
		LengthKM: form.LengthKM,
		Laps:     form.Laps,
	}

	if err := s.circuitRepo.Create(ctx, circuit); err != nil {
		return nil, fmt.Errorf("failed to create circuit: %w", err)
	}

	s.notifier.Emit(ctx, "CIRCUIT_CREATE", fmt.Sprintf("Circuit %s created", circuit.Name),
		"circuits", strconv.Itoa(circuit.ID),
		map[string]any{"name": circuit.Name, "laps": circuit.Laps},
		models.AuditSuccess)

	return circuit, nil
}
