package registry

import (
	"fmt"
	"sort"
)

// NotFoundError is returned by Lookup for an unrecognized tool identifier.
// The proxy maps it to HTTP 404; it is never treated as an internal error.
type NotFoundError struct {
	// ID is the identifier that was looked up.
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.ID)
}

// ProfileError is returned when a profile override is invalid.
type ProfileError struct {
	// ID is the tool the invalid override targets.
	ID string

	// Field is the offending profile field.
	Field string

	// Message describes what is invalid.
	Message string
}

// Error implements the error interface.
func (e *ProfileError) Error() string {
	return fmt.Sprintf("invalid profile for tool %q: %s: %s", e.ID, e.Field, e.Message)
}

// Override adjusts a built-in profile. Zero values leave the corresponding
// field untouched, so an override may change only the token budget or only
// the temperature.
type Override struct {
	SystemPrompt string
	MaxTokens    int
	Temperature  *float64
}

// Registry holds the immutable tool-to-profile mapping.
type Registry struct {
	profiles map[string]ToolProfile
}

// New builds a registry from the built-in profiles with optional per-tool
// overrides applied. Overrides for unknown tools are rejected: the registry
// never invents a profile for an identifier it does not ship (a guessed
// default profile would turn client typos into upstream calls).
func New(overrides map[string]Override) (*Registry, error) {
	profiles := make(map[string]ToolProfile)
	for _, p := range defaultProfiles() {
		profiles[p.ID] = p
	}

	for id, ov := range overrides {
		p, ok := profiles[id]
		if !ok {
			return nil, &NotFoundError{ID: id}
		}
		if ov.SystemPrompt != "" {
			p.SystemPrompt = ov.SystemPrompt
		}
		if ov.MaxTokens != 0 {
			p.MaxTokens = ov.MaxTokens
		}
		if ov.Temperature != nil {
			p.Temperature = *ov.Temperature
		}
		if err := validateProfile(p); err != nil {
			return nil, err
		}
		profiles[id] = p
	}

	return &Registry{profiles: profiles}, nil
}

// MustNew is like New but panics on invalid overrides. Intended for
// construction from compiled-in data in tests.
func MustNew(overrides map[string]Override) *Registry {
	r, err := New(overrides)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the profile for the given tool identifier, or a
// *NotFoundError if the identifier is not one of the supported tools.
// Lookup is deterministic and safe for concurrent use.
func (r *Registry) Lookup(id string) (ToolProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return ToolProfile{}, &NotFoundError{ID: id}
	}
	return p, nil
}

// Tools returns the supported tool identifiers in sorted order.
func (r *Registry) Tools() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// validateProfile enforces the profile invariants: a positive token budget
// and a temperature within [0, 1].
func validateProfile(p ToolProfile) error {
	if p.SystemPrompt == "" {
		return &ProfileError{ID: p.ID, Field: "system_prompt", Message: "must not be empty"}
	}
	if p.MaxTokens <= 0 {
		return &ProfileError{ID: p.ID, Field: "max_tokens", Message: "must be positive"}
	}
	if p.Temperature < 0 || p.Temperature > 1 {
		return &ProfileError{ID: p.ID, Field: "temperature", Message: "must be in [0, 1]"}
	}
	return nil
}
