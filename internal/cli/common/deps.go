package common

import (
	"github.com/camarero/camarero/config"
	"github.com/camarero/camarero/server"
	"github.com/camarero/camarero/session"
)

type CommandDependencies struct {
	Contexts config.ContextService
	Server   server.ResourceServer
	Sessions session.Reader
}

func RequireContexts(deps CommandDependencies) (config.ContextService, error) {
	if deps.Contexts == nil {
		return nil, ValidationError("context service is not configured", nil)
	}
	return deps.Contexts, nil
}

func RequireServer(deps CommandDependencies) (server.ResourceServer, error) {
	if deps.Server == nil {
		return nil, ValidationError("resource server is not configured: check the active context", nil)
	}
	return deps.Server, nil
}

func RequireSessions(deps CommandDependencies) (session.Reader, error) {
	if deps.Sessions == nil {
		return nil, ValidationError("session reader is not configured", nil)
	}
	return deps.Sessions, nil
}
