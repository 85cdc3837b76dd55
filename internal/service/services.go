package service

import (
	"github.com/tandemchat/tandem/internal/agent"
	"github.com/tandemchat/tandem/internal/config"
	"github.com/tandemchat/tandem/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Room    *RoomService
	Message *MessageService
	Agent   *AgentService
	Status  *StatusService
}

func NewServices(repos *repository.Repositories, registry *agent.Registry, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, cfg),
		Room:    NewRoomService(repos.Room, repos.User),
		Message: NewMessageService(repos.Message, repos.Room, repos.User),
		Agent:   NewAgentService(registry),
		Status:  NewStatusService(repos.StatusCheck),
	}
}
