// Package roles provides the role profiles a ranking can be biased towards.
package roles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/resume-ranker/internal/resume"
)

const (
	CustomID          = "custom-role"
	customName        = "Custom Role"
	customDescription = "Custom role with user-defined keywords"
	defaultWeight     = 1.0
)

var (
	ErrUnknownRole = errors.New("unknown role")
	ErrNoKeywords  = errors.New("custom role needs at least one keyword")
)

var builtin = []resume.RoleProfile{
	{
		ID:          "data-scientist",
		Name:        "Data Scientist",
		Keywords:    []string{"python", "machine learning", "pandas", "scikit-learn", "tensorflow", "statistics", "sql", "data analysis", "jupyter", "numpy"},
		Weight:      defaultWeight,
		Description: "Focus on ML, data analysis, and statistical modeling skills",
	},
	{
		ID:          "frontend-developer",
		Name:        "Frontend Developer",
		Keywords:    []string{"react", "javascript", "typescript", "html", "css", "responsive design", "api", "git", "webpack", "sass"},
		Weight:      defaultWeight,
		Description: "Emphasis on modern web development technologies",
	},
	{
		ID:          "marketing-analyst",
		Name:        "Marketing Analyst",
		Keywords:    []string{"google analytics", "seo", "social media", "campaign management", "a/b testing", "conversion optimization", "content marketing", "email marketing", "roi", "kpi"},
		Weight:      defaultWeight,
		Description: "Digital marketing and analytics expertise",
	},
	{
		ID:          "product-manager",
		Name:        "Product Manager",
		Keywords:    []string{"product strategy", "roadmap", "user research", "agile", "scrum", "stakeholder management", "market analysis", "user experience", "requirements", "metrics"},
		Weight:      defaultWeight,
		Description: "Product development and strategy focus",
	},
}

// Builtin returns copies of the predefined role profiles.
func Builtin() []resume.RoleProfile {
	out := make([]resume.RoleProfile, 0, len(builtin))
	for _, role := range builtin {
		out = append(out, clone(role))
	}
	return out
}

// Custom builds the ad-hoc role for a user supplied keyword list. Keywords
// are trimmed and lowercased; blank ones are dropped.
func Custom(keywords []string) (*resume.RoleProfile, error) {
	cleaned := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" {
			cleaned = append(cleaned, keyword)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrNoKeywords
	}

	return &resume.RoleProfile{
		ID:          CustomID,
		Name:        customName,
		Keywords:    cleaned,
		Weight:      defaultWeight,
		Description: customDescription,
	}, nil
}

// ParseKeywords splits a comma separated keyword list into a custom role.
func ParseKeywords(list string) (*resume.RoleProfile, error) {
	return Custom(strings.Split(list, ","))
}

// Decode turns raw configuration (a list of maps) into validated role
// profiles. A missing weight defaults to 1.
func Decode(raw any) ([]resume.RoleProfile, error) {
	if raw == nil {
		return nil, nil
	}

	var profiles []resume.RoleProfile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &profiles,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("create roles decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	for i := range profiles {
		if profiles[i].Weight == 0 {
			profiles[i].Weight = defaultWeight
		}
		if err := profiles[i].Validate(); err != nil {
			return nil, fmt.Errorf("role #%d (%q): %w", i+1, profiles[i].ID, err)
		}
	}

	return profiles, nil
}

// Catalog is an ordered set of role profiles addressable by ID.
type Catalog struct {
	profiles []resume.RoleProfile
}

// NewCatalog returns the built-in profiles followed by the extra ones. An
// extra profile with a built-in ID replaces it in place.
func NewCatalog(extra ...resume.RoleProfile) *Catalog {
	c := &Catalog{profiles: Builtin()}
	for _, role := range extra {
		c.put(clone(role))
	}
	return c
}

func (c *Catalog) put(role resume.RoleProfile) {
	for i := range c.profiles {
		if c.profiles[i].ID == role.ID {
			c.profiles[i] = role
			return
		}
	}
	c.profiles = append(c.profiles, role)
}

// Find returns a copy of the profile with the given ID.
func (c *Catalog) Find(id string) (*resume.RoleProfile, error) {
	id = strings.TrimSpace(id)
	for _, role := range c.profiles {
		if role.ID == id {
			found := clone(role)
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRole, id)
}

// List returns copies of all profiles in catalog order.
func (c *Catalog) List() []resume.RoleProfile {
	out := make([]resume.RoleProfile, 0, len(c.profiles))
	for _, role := range c.profiles {
		out = append(out, clone(role))
	}
	return out
}

func clone(role resume.RoleProfile) resume.RoleProfile {
	role.Keywords = append([]string(nil), role.Keywords...)
	return role
}
