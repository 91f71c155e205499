package services

import (
	"github.com/tc2000/fantasy/authenticator"
	"github.com/tc2000/fantasy/repositories"
	"github.com/tc2000/fantasy/stream"
)

// Services holds all service instances
type Services struct {
	Auth  AuthService
	Team  TeamService
	Pilot PilotService
	Event EventService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, tokens *authenticator.TokenManager, notifier *stream.Notifier) *Services {
	return &Services{
		Auth:  NewAuthService(repos.User, tokens, notifier),
		Team:  NewTeamService(repos.Team, repos.Pilot, notifier),
		Pilot: NewPilotService(repos.Pilot, repos.Team, notifier),
		Event: NewEventService(repos.Event, repos.Circuit, notifier),
	}
}
