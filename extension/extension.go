// Package extension validates agent extension declarations and checks that
// required extensions are supported by the caller.
package extension

import (
	"fmt"
	"sort"
	"strings"

	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
)

// ParamType is the JSON shape a constrained parameter must have
type ParamType string

// ParamType enum values
const (
	ParamString         ParamType = "string"
	ParamNonEmptyString ParamType = "non-empty-string"
	ParamURL            ParamType = "url"
	ParamArray          ParamType = "array"
	ParamObject         ParamType = "object"
	ParamNumber         ParamType = "number"
	ParamBool           ParamType = "bool"
)

// Constraint describes the params an extension accepts. Required names must
// be present; Types is checked for every present parameter it names.
type Constraint struct {
	Required []string
	Types    map[string]ParamType
}

// AuthConstraint applies to extensions whose URI mentions auth
var AuthConstraint = Constraint{
	Types: map[string]ParamType{
		"clientId":    ParamNonEmptyString,
		"scopes":      ParamArray,
		"redirectUri": ParamURL,
	},
}

// WebhookConstraint applies to extensions whose URI mentions webhooks or
// notifications
var WebhookConstraint = Constraint{
	Types: map[string]ParamType{
		"url":    ParamURL,
		"secret": ParamString,
		"events": ParamArray,
	},
}

// SupportedSet is the set of extension URIs a caller understands
type SupportedSet map[string]struct{}

// NewSupportedSet creates a SupportedSet from uris
func NewSupportedSet(uris ...string) SupportedSet {
	set := make(SupportedSet, len(uris))
	for _, uri := range uris {
		set[uri] = struct{}{}
	}
	return set
}

// Contains reports whether uri is supported
func (s SupportedSet) Contains(uri string) bool {
	_, ok := s[uri]
	return ok
}

// Validator checks extension declarations against registered constraints
type Validator struct {
	rules       validation.Rules
	constraints map[string]Constraint
}

// NewValidator creates a Validator with the built-in auth and webhook
// constraints
func NewValidator(rules validation.Rules) *Validator {
	return &Validator{
		rules:       rules,
		constraints: map[string]Constraint{},
	}
}

// Register sets the params constraint for an exact extension URI. It takes
// precedence over the built-in constraints.
func (v *Validator) Register(uri string, constraint Constraint) {
	v.constraints[uri] = constraint
}

// Validate checks ext with the default rules and no registered constraints
func Validate(ext types.AgentExtension, supported SupportedSet) error {
	return NewValidator(validation.DefaultRules()).Validate(ext, supported)
}

// Validate checks the URI, the description, the params and finally whether
// a required extension is in supported.
func (v *Validator) Validate(ext types.AgentExtension, supported SupportedSet) error {
	if err := v.rules.ValidateURI("uri", ext.URI); err != nil {
		return err
	}
	if err := validation.ValidateDescription("description", ext.Description, v.rules.MaxExtensionDescriptionLength); err != nil {
		return err
	}
	if constraint, ok := v.constraintFor(ext.URI); ok {
		if err := v.checkParams(constraint, ext.Params); err != nil {
			return err
		}
	}
	if ext.IsRequired() && !supported.Contains(ext.URI) {
		return validation.NewMissingRequiredExtensionError(ext.URI)
	}
	return nil
}

// CheckCard validates every extension declared in the card's capabilities
func (v *Validator) CheckCard(card types.AgentCard, supported SupportedSet) error {
	for i, ext := range card.Capabilities.Extensions {
		if err := v.Validate(ext, supported); err != nil {
			return validation.Nest(fmt.Sprintf("capabilities.extensions[%d]", i), err)
		}
	}
	return nil
}

// CheckURIs validates a list of extension URIs, as carried by messages and
// artifacts
func (v *Validator) CheckURIs(field string, uris []string) error {
	for i, uri := range uris {
		if err := v.rules.ValidateURI(fmt.Sprintf("%s[%d]", field, i), uri); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) constraintFor(uri string) (Constraint, bool) {
	if constraint, ok := v.constraints[uri]; ok {
		return constraint, true
	}
	lower := strings.ToLower(uri)
	switch {
	case strings.Contains(lower, "auth"):
		return AuthConstraint, true
	case strings.Contains(lower, "webhook"), strings.Contains(lower, "notification"):
		return WebhookConstraint, true
	default:
		return Constraint{}, false
	}
}

func (v *Validator) checkParams(constraint Constraint, params types.Struct) error {
	for _, name := range constraint.Required {
		if _, ok := params[name]; !ok {
			return validation.NewInvalidFieldError("params."+name, validation.ClassEmpty, "parameter is required")
		}
	}

	names := make([]string, 0, len(constraint.Types))
	for name := range constraint.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, ok := params[name]
		if !ok {
			continue
		}
		if err := v.checkType("params."+name, constraint.Types[name], value); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) checkType(field string, want ParamType, value any) error {
	mismatch := validation.NewInvalidFieldError(field, validation.ClassMalformed, "parameter must be of type "+string(want))

	switch want {
	case ParamString:
		if _, ok := value.(string); !ok {
			return mismatch
		}
	case ParamNonEmptyString:
		s, ok := value.(string)
		if !ok {
			return mismatch
		}
		if s == "" {
			return validation.NewInvalidFieldError(field, validation.ClassEmpty, "parameter must be a non-empty string")
		}
	case ParamURL:
		s, ok := value.(string)
		if !ok {
			return mismatch
		}
		return v.rules.ValidateURL(field, s)
	case ParamArray:
		if _, ok := value.([]any); !ok {
			return mismatch
		}
	case ParamObject:
		if _, ok := value.(map[string]any); !ok {
			return mismatch
		}
	case ParamNumber:
		switch value.(type) {
		case float64, float32, int, int64, int32:
		default:
			return mismatch
		}
	case ParamBool:
		if _, ok := value.(bool); !ok {
			return mismatch
		}
	default:
		return validation.NewInvalidFieldError(field, validation.ClassUnsupported, "unknown parameter type "+string(want))
	}
	return nil
}
