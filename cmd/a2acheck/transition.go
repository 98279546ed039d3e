package main

import (
	"fmt"

	cobra "github.com/spf13/cobra"

	lifecycle "github.com/inference-gateway/a2a-conformance/lifecycle"
	types "github.com/inference-gateway/a2a-conformance/types"
)

var transitionCmd = &cobra.Command{
	Use:   "transition STATE EVENT...",
	Short: "Replay events through the task state machine",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTransition,
}

func runTransition(cmd *cobra.Command, args []string) error {
	checker, err := newChecker()
	if err != nil {
		return err
	}

	start := types.TaskState(args[0])
	events := make([]lifecycle.Event, 0, len(args)-1)
	for _, arg := range args[1:] {
		events = append(events, lifecycle.Event(arg))
	}

	out := cmd.OutOrStdout()
	state, err := checker.CheckTransitions(cmd.Context(), start, events...)
	if err != nil {
		fmt.Fprintf(out, "✗ stopped in %s: %v\n", state, err)
		if allowed := lifecycle.Allowed(state); len(allowed) > 0 {
			fmt.Fprintf(out, "  allowed events: %v\n", allowed)
		}
		return errNotConformant
	}

	fmt.Fprintf(out, "✓ %s\n", state)
	return nil
}
