package validation

import (
	"fmt"
	"mime"
	"net/url"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	semver "golang.org/x/mod/semver"
)

// ValidateURL checks raw with the default rules
func ValidateURL(field, raw string) error { return DefaultRules().ValidateURL(field, raw) }

// ValidateURI checks raw with the default rules
func ValidateURI(field, raw string) error { return DefaultRules().ValidateURI(field, raw) }

// ValidateMediaType checks raw with the default rules
func ValidateMediaType(field, raw string) error { return DefaultRules().ValidateMediaType(field, raw) }

// ValidateIdentifier checks raw with the default rules
func ValidateIdentifier(field, raw string) error {
	return DefaultRules().ValidateIdentifier(field, raw)
}

// ValidateAgentName checks raw with the default rules
func ValidateAgentName(raw string) error { return DefaultRules().ValidateAgentName(raw) }

// ValidateVersion checks raw with the default rules
func ValidateVersion(raw string) error { return DefaultRules().ValidateVersion(raw) }

// ValidateSkillID checks raw with the default rules
func ValidateSkillID(raw string) error { return DefaultRules().ValidateSkillID(raw) }

// ValidateURL accepts absolute URLs whose scheme is permitted and whose host
// is non-empty.
func (r Rules) ValidateURL(field, raw string) error {
	if raw == "" {
		return NewInvalidFieldError(field, ClassEmpty, "URL is required")
	}
	if strings.IndexFunc(raw, unicode.IsSpace) >= 0 {
		return NewInvalidFieldError(field, ClassMalformed, "URL must not contain whitespace")
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return NewInvalidFieldError(field, ClassMalformed, "must be an absolute URL with a scheme")
	}
	if !slices.Contains(r.URLSchemes, strings.ToLower(u.Scheme)) {
		return NewInvalidFieldError(field, ClassUnsupported,
			fmt.Sprintf("URL scheme must be one of %s", strings.Join(r.URLSchemes, ", ")))
	}
	if u.Hostname() == "" {
		return NewInvalidFieldError(field, ClassMalformed, "URL must have a host")
	}

	return nil
}

// ValidateURI accepts any absolute URI, hierarchical with a host or opaque
// (e.g. "urn:a2a:ext:tracing").
func (r Rules) ValidateURI(field, raw string) error {
	if raw == "" {
		return NewInvalidFieldError(field, ClassEmpty, "URI is required")
	}
	if strings.IndexFunc(raw, unicode.IsSpace) >= 0 {
		return NewInvalidFieldError(field, ClassMalformed, "URI must not contain whitespace")
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return NewInvalidFieldError(field, ClassMalformed, "must be an absolute URI with a scheme")
	}
	if u.Opaque == "" && u.Host == "" {
		return NewInvalidFieldError(field, ClassMalformed, "URI must have a host or an opaque part")
	}
	if slices.Contains(r.URLSchemes, strings.ToLower(u.Scheme)) {
		return r.ValidateURL(field, raw)
	}

	return nil
}

// ValidateMediaType accepts any syntactically valid type/subtype with
// optional parameters; the type registry is not consulted.
func (r Rules) ValidateMediaType(field, raw string) error {
	if raw == "" {
		return NewInvalidFieldError(field, ClassEmpty, "media type is required")
	}

	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return NewInvalidFieldError(field, ClassMalformed, "media type must match type/subtype[;parameter]*")
	}

	main, sub, ok := strings.Cut(mediaType, "/")
	if !ok || main == "" || sub == "" {
		return NewInvalidFieldError(field, ClassMalformed, "media type must match type/subtype[;parameter]*")
	}

	return nil
}

// ValidateIdentifier accepts non-empty ids made of ASCII letters, digits,
// '-' and '_' (plus '.' and ':' with AllowExtendedIdentifiers).
func (r Rules) ValidateIdentifier(field, raw string) error {
	if raw == "" {
		return NewInvalidFieldError(field, ClassEmpty, "identifier is required")
	}
	if len(raw) > r.MaxIdentifierLength {
		return NewInvalidFieldError(field, ClassTooLong,
			fmt.Sprintf("identifier must be at most %d characters", r.MaxIdentifierLength))
	}

	for _, c := range raw {
		if isIDChar(c) || (r.AllowExtendedIdentifiers && (c == '.' || c == ':')) {
			continue
		}
		allowed := "letters, digits, '-' and '_'"
		if r.AllowExtendedIdentifiers {
			allowed = "letters, digits, '-', '_', '.' and ':'"
		}
		return NewInvalidFieldError(field, ClassForbidden, "identifier may only contain "+allowed)
	}

	return nil
}

// ValidateAgentName accepts non-empty names without surrounding whitespace.
func (r Rules) ValidateAgentName(raw string) error {
	if raw == "" {
		return NewInvalidFieldError("name", ClassEmpty, "agent name is required")
	}
	if utf8.RuneCountInString(raw) > r.MaxAgentNameLength {
		return NewInvalidFieldError("name", ClassTooLong,
			fmt.Sprintf("agent name must be at most %d characters", r.MaxAgentNameLength))
	}
	if strings.TrimSpace(raw) != raw {
		return NewInvalidFieldError("name", ClassMalformed, "agent name must not start or end with whitespace")
	}

	return nil
}

// ValidateVersion accepts major.minor.patch with optional pre-release and
// build metadata.
func (r Rules) ValidateVersion(raw string) error {
	if raw == "" {
		return NewInvalidFieldError("version", ClassEmpty, "version is required")
	}
	if len(raw) > r.MaxVersionLength {
		return NewInvalidFieldError("version", ClassTooLong,
			fmt.Sprintf("version must be at most %d characters", r.MaxVersionLength))
	}

	core := raw
	if i := strings.IndexAny(raw, "-+"); i >= 0 {
		core = raw[:i]
	}
	if strings.Count(core, ".") != 2 || !semver.IsValid("v"+raw) {
		return NewInvalidFieldError("version", ClassMalformed, "version must be major.minor.patch[-prerelease][+build]")
	}

	return nil
}

// ValidateSkillID accepts non-empty ids of letters, digits, '-', '_' and '.'.
func (r Rules) ValidateSkillID(raw string) error {
	if raw == "" {
		return NewInvalidFieldError("id", ClassEmpty, "skill id is required")
	}
	if len(raw) > r.MaxSkillIDLength {
		return NewInvalidFieldError("id", ClassTooLong,
			fmt.Sprintf("skill id must be at most %d characters", r.MaxSkillIDLength))
	}
	for _, c := range raw {
		if !isIDChar(c) && c != '.' {
			return NewInvalidFieldError("id", ClassForbidden, "skill id may only contain letters, digits, '-', '_' and '.'")
		}
	}

	return nil
}

// ValidateDescription bounds an optional free-text field.
func ValidateDescription(field string, raw *string, max int) error {
	if raw == nil {
		return nil
	}
	if utf8.RuneCountInString(*raw) > max {
		return NewInvalidFieldError(field, ClassTooLong, fmt.Sprintf("must be at most %d characters", max))
	}
	return nil
}

// ValidateTimestamp accepts RFC 3339 timestamps.
func ValidateTimestamp(field, raw string) error {
	if raw == "" {
		return NewInvalidFieldError(field, ClassEmpty, "timestamp is required")
	}
	if _, err := time.Parse(time.RFC3339, raw); err != nil {
		return NewInvalidFieldError(field, ClassMalformed, "timestamp must be RFC 3339")
	}
	return nil
}

// ValidateNonEmpty rejects empty strings.
func ValidateNonEmpty(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return NewInvalidFieldError(field, ClassEmpty, "value is required")
	}
	return nil
}

func isIDChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}
