// Package enrichment defines the optional collaborator that augments keyword
// extraction with skills, an experience level and a confidence value.
package enrichment

import (
	"context"

	"github.com/spigell/resume-ranker/internal/resume"
)

// Strategy derives an enrichment from a job description, an optional role
// and one sample document. Callers must treat every error as recoverable.
type Strategy interface {
	Name() string
	Available() bool
	Enrich(ctx context.Context, description string, role *resume.RoleProfile, sample string) (*resume.Enrichment, error)
}

// Credentials carries what a strategy needs to become available.
type Credentials struct {
	ProjectID   string
	ClientEmail string
	APIKey      string
}

// Configurable is implemented by strategies that start unavailable and
// become available once configured.
type Configurable interface {
	Configure(ctx context.Context, creds Credentials) error
}

// Status is a runtime description of a strategy.
type Status struct {
	Provider  string `json:"provider"`
	Model     string `json:"model,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	Available bool   `json:"available"`
}

// StatusReporter is implemented by strategies that can describe themselves
// in more detail than Name and Available.
type StatusReporter interface {
	Status() Status
}

// Describe returns the status of a strategy. A nil strategy is reported as
// an unavailable "none" provider.
func Describe(s Strategy) Status {
	if s == nil {
		return Status{Provider: "none"}
	}
	if reporter, ok := s.(StatusReporter); ok {
		return reporter.Status()
	}
	return Status{Provider: s.Name(), Available: s.Available()}
}
