package types

import (
	jsonschema "github.com/invopop/jsonschema"
)

// AgentCardSchemaID is the $id of the reflected agent card schema
const AgentCardSchemaID = "https://a2a-protocol.org/schemas/" + ProtocolVersion + "/agent-card.json"

// AgentCardSchema reflects the JSON Schema of AgentCard from its struct tags.
func AgentCardSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(&AgentCard{})
	schema.ID = jsonschema.ID(AgentCardSchemaID)
	schema.Title = "A2A Agent Card"
	schema.Description = "Self-describing manifest of an A2A agent, protocol version " + ProtocolVersion
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}
