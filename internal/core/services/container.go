package services

import (
	portsrepo "github.com/streamhive/accounts-backend/internal/core/ports/repositories"
	portssvc "github.com/streamhive/accounts-backend/internal/core/ports/services"
	"github.com/streamhive/accounts-backend/internal/platform/config"
)

// NewServiceContainer wires the service layer together for injection into
// the handlers.
func NewServiceContainer(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, media portssvc.MediaStore) *portssvc.ServiceContainer {
	tokenService := NewTokenService(cfg)
	return &portssvc.ServiceContainer{
		User:  NewUserService(userRepo, media),
		Auth:  NewAuthService(userRepo, tokenService),
		Token: tokenService,
	}
}
