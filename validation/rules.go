package validation

// Rules holds the bounds applied by the field validators. The zero value is
// not useful; start from DefaultRules.
type Rules struct {
	// MaxIdentifierLength bounds task, message, artifact and context ids
	MaxIdentifierLength int
	// AllowExtendedIdentifiers additionally permits '.' and ':' in identifiers
	AllowExtendedIdentifiers bool
	// URLSchemes lists the lower-case schemes a URL may use
	URLSchemes []string
	// MaxAgentNameLength bounds agent names, in characters
	MaxAgentNameLength int
	// MaxVersionLength bounds version strings
	MaxVersionLength int
	// MaxSkillIDLength bounds skill ids
	MaxSkillIDLength int
	// MaxSchemeDescriptionLength bounds security scheme descriptions
	MaxSchemeDescriptionLength int
	// MaxExtensionDescriptionLength bounds extension descriptions
	MaxExtensionDescriptionLength int
}

// Default bounds
const (
	DefaultMaxIdentifierLength           = 255
	DefaultMaxAgentNameLength            = 100
	DefaultMaxVersionLength              = 50
	DefaultMaxSkillIDLength              = 100
	DefaultMaxSchemeDescriptionLength    = 500
	DefaultMaxExtensionDescriptionLength = 1000
)

// DefaultRules returns the bounds of the A2A protocol schema
func DefaultRules() Rules {
	return Rules{
		MaxIdentifierLength:           DefaultMaxIdentifierLength,
		URLSchemes:                    []string{"http", "https"},
		MaxAgentNameLength:            DefaultMaxAgentNameLength,
		MaxVersionLength:              DefaultMaxVersionLength,
		MaxSkillIDLength:              DefaultMaxSkillIDLength,
		MaxSchemeDescriptionLength:    DefaultMaxSchemeDescriptionLength,
		MaxExtensionDescriptionLength: DefaultMaxExtensionDescriptionLength,
	}
}
