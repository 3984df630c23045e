package core

import (
	"context"
)

// Interface defines a common lifecycle for all services
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

// Registry manages service lifecycles in registration order
type Registry struct {
	services []Interface
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		services: make([]Interface, 0),
	}
}

// Register adds a service to the registry
func (r *Registry) Register(service Interface) {
	r.services = append(r.services, service)
}

// StartAll starts all registered services, stopping at the first error
func (r *Registry) StartAll(ctx context.Context) error {
	for _, service := range r.services {
		if err := service.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StopAll stops all registered services in reverse order
func (r *Registry) StopAll() {
	for i := len(r.services) - 1; i >= 0; i-- {
		r.services[i].Stop()
	}
}
