package resume

import "github.com/go-playground/validator/v10"

// RoleProfile is a named list of keywords representing a job archetype.
// Weight is carried for display and is not used when composing scores.
type RoleProfile struct {
	ID          string   `json:"id" mapstructure:"id" validate:"required"`
	Name        string   `json:"name" mapstructure:"name" validate:"required"`
	Keywords    []string `json:"keywords" mapstructure:"keywords" validate:"min=1,dive,required"`
	Weight      float64  `json:"weight" mapstructure:"weight" validate:"gte=0"`
	Description string   `json:"description" mapstructure:"description"`
}

// Validate checks a role profile loaded from configuration.
func (r *RoleProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// KeywordList returns the role keywords, or nil for a nil role.
func (r *RoleProfile) KeywordList() []string {
	if r == nil {
		return nil
	}
	return r.Keywords
}
