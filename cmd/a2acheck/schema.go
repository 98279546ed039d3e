package main

import (
	cobra "github.com/spf13/cobra"

	types "github.com/inference-gateway/a2a-conformance/types"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the agent card",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeJSON(cmd.OutOrStdout(), types.AgentCardSchema())
	},
}
