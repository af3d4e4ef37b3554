package services

// ServiceContainer holds all service facades for dependency injection into
// the handler layer.
type ServiceContainer struct {
	User  UserSvcFacade
	Auth  AuthSvcFacade
	Token TokenSvcFacade
}
