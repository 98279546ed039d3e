package protocol

import (
	"errors"
	"fmt"

	extension "github.com/inference-gateway/a2a-conformance/extension"
	security "github.com/inference-gateway/a2a-conformance/security"
	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
)

// ValidateAgentCard checks card with the default rules
func ValidateAgentCard(card types.AgentCard, supported extension.SupportedSet) error {
	return defaultValidator.ValidateAgentCard(card, supported)
}

// ValidateAgentCard checks the identity, endpoints, media types, skills,
// security and extensions of an agent card. Required extensions must be in
// supported.
func (v *Validator) ValidateAgentCard(card types.AgentCard, supported extension.SupportedSet) error {
	if err := v.rules.ValidateAgentName(card.Name); err != nil {
		return err
	}
	if err := v.rules.ValidateVersion(card.Version); err != nil {
		return err
	}
	if err := relabel("protocolVersion", v.rules.ValidateVersion(card.ProtocolVersion)); err != nil {
		return err
	}
	if err := v.rules.ValidateURL("url", card.URL); err != nil {
		return err
	}
	if err := v.validateCardLinks(card); err != nil {
		return err
	}
	if err := v.validateInterfaces(card); err != nil {
		return err
	}
	if err := v.validateModes("defaultInputModes", card.DefaultInputModes, true); err != nil {
		return err
	}
	if err := v.validateModes("defaultOutputModes", card.DefaultOutputModes, true); err != nil {
		return err
	}
	if err := v.validateSkills(card.Skills); err != nil {
		return err
	}
	if err := v.security.ValidateAll(card.SecuritySchemes); err != nil {
		return err
	}
	if err := security.ValidateRequirements(card); err != nil {
		return err
	}
	return v.extensions.CheckCard(card, supported)
}

func (v *Validator) validateCardLinks(card types.AgentCard) error {
	if card.Provider != nil {
		if err := validation.ValidateNonEmpty("provider.organization", card.Provider.Organization); err != nil {
			return err
		}
		if err := v.rules.ValidateURL("provider.url", card.Provider.URL); err != nil {
			return err
		}
	}
	if card.IconURL != nil {
		if err := v.rules.ValidateURL("iconUrl", *card.IconURL); err != nil {
			return err
		}
	}
	if card.DocumentationURL != nil {
		if err := v.rules.ValidateURL("documentationUrl", *card.DocumentationURL); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateInterfaces(card types.AgentCard) error {
	if card.PreferredTransport != nil && !card.PreferredTransport.IsValid() {
		return validation.NewInvalidFieldError("preferredTransport", validation.ClassUnsupported,
			fmt.Sprintf("unknown transport %q", *card.PreferredTransport))
	}
	for i, iface := range card.AdditionalInterfaces {
		field := fmt.Sprintf("additionalInterfaces[%d]", i)
		if !iface.Transport.IsValid() {
			return validation.NewInvalidFieldError(field+".transport", validation.ClassUnsupported,
				fmt.Sprintf("unknown transport %q", iface.Transport))
		}
		if err := v.rules.ValidateURL(field+".url", iface.URL); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateModes(field string, modes []string, required bool) error {
	if required && len(modes) == 0 {
		return validation.NewInvalidFieldError(field, validation.ClassEmpty, "at least one media type is required")
	}
	for i, mode := range modes {
		if err := v.rules.ValidateMediaType(fmt.Sprintf("%s[%d]", field, i), mode); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateSkills(skills []types.AgentSkill) error {
	seen := make(map[string]int, len(skills))
	for i, skill := range skills {
		field := fmt.Sprintf("skills[%d]", i)
		if err := v.rules.ValidateSkillID(skill.ID); err != nil {
			return validation.Nest(field, err)
		}
		if first, ok := seen[skill.ID]; ok {
			return validation.NewInvalidFieldError(field+".id", validation.ClassForbidden,
				fmt.Sprintf("skill id %q duplicates skills[%d]", skill.ID, first))
		}
		seen[skill.ID] = i

		if err := validation.ValidateNonEmpty(field+".name", skill.Name); err != nil {
			return err
		}
		if err := v.validateModes(field+".inputModes", skill.InputModes, false); err != nil {
			return err
		}
		if err := v.validateModes(field+".outputModes", skill.OutputModes, false); err != nil {
			return err
		}
	}
	return nil
}

// relabel renames the field of an InvalidFieldError produced by a validator
// with a fixed field name
func relabel(field string, err error) error {
	var fieldErr *validation.InvalidFieldError
	if !errors.As(err, &fieldErr) {
		return err
	}
	renamed := *fieldErr
	renamed.Field = field
	return &renamed
}
