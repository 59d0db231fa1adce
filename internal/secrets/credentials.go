package secrets

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/resume-ranker/internal/enrichment"
)

type serviceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id" validate:"required"`
	ClientEmail string `json:"client_email" validate:"required,email"`
}

// LoadCredentials reads a Google service-account key and returns the parts
// an enrichment strategy needs. The private key is never kept.
func LoadCredentials(file string) (enrichment.Credentials, error) {
	raw, err := Load(Source{Name: "service account credentials", File: file})
	if err != nil {
		return enrichment.Credentials{}, err
	}

	var account serviceAccount
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		return enrichment.Credentials{}, fmt.Errorf("parse service account credentials %q: %w", file, err)
	}

	if err := validator.New().Struct(account); err != nil {
		return enrichment.Credentials{}, fmt.Errorf("invalid service account credentials %q: %w", file, err)
	}

	return enrichment.Credentials{
		ProjectID:   account.ProjectID,
		ClientEmail: account.ClientEmail,
	}, nil
}
