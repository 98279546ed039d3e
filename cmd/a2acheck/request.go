package main

import (
	"encoding/json"

	cobra "github.com/spf13/cobra"

	protocol "github.com/inference-gateway/a2a-conformance/protocol"
)

var requestCmd = &cobra.Command{
	Use:   "request FILE",
	Short: "Validate a JSON-RPC request and print its canonical form or the error response",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequest,
}

func runRequest(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	checker, err := newChecker()
	if err != nil {
		return err
	}

	req, err := checker.CheckRequest(cmd.Context(), data)
	if err != nil {
		if writeErr := writeJSON(cmd.OutOrStdout(), protocol.NewErrorResponse(requestID(data), err)); writeErr != nil {
			return writeErr
		}
		return errNotConformant
	}

	envelope, err := req.Envelope()
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), envelope)
}

// requestID recovers the id of a request that failed validation, or nil
func requestID(data []byte) any {
	var probe struct {
		ID any `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil
	}
	switch probe.ID.(type) {
	case string, float64:
		return probe.ID
	default:
		return nil
	}
}
