// Package services tracks the external collaborators this service depends
// on (Postgres, Redis, the hosted table store) and answers readiness
// probes against them.
package services

import "context"

// Provider is one external collaborator that can be health-checked
type Provider interface {
	// Type returns the collaborator type name
	Type() string

	// HealthCheck checks if the collaborator is reachable
	HealthCheck(ctx context.Context) error
}

// BaseProvider provides the shared type tag
type BaseProvider struct {
	serviceType string
}

// Type returns the collaborator type
func (p *BaseProvider) Type() string {
	return p.serviceType
}
