package main

import (
	"fmt"

	cobra "github.com/spf13/cobra"
	zap "go.uber.org/zap"

	types "github.com/inference-gateway/a2a-conformance/types"
)

var (
	supportedExtensions []string
	discover            bool
)

var cardCmd = &cobra.Command{
	Use:   "card FILE",
	Short: "Validate an agent card (JSON or YAML, - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCard,
}

func init() {
	cardCmd.Flags().StringArrayVar(&supportedExtensions, "supported-extension", nil, "extension URI treated as supported (repeatable)")
	cardCmd.Flags().BoolVar(&discover, "discover", false, "fetch the discovery document of OpenID Connect schemes")
}

func runCard(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	var card types.AgentCard
	if err := decodeDocument(args[0], data, &card); err != nil {
		return err
	}

	cfg.ExtensionsConfig.Supported = append(cfg.ExtensionsConfig.Supported, supportedExtensions...)
	if discover {
		cfg.OIDCConfig.Enable = true
	}

	checker, err := newChecker()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := checker.CheckAgentCard(cmd.Context(), card); err != nil {
		fmt.Fprintf(out, "✗ agent card %q: %v\n", card.Name, err)
		return errNotConformant
	}
	fmt.Fprintf(out, "✓ agent card %q (version %s, protocol %s)\n", card.Name, card.Version, card.ProtocolVersion)

	if !discover {
		return nil
	}

	documents, err := checker.DiscoverOpenIDConnect(cmd.Context(), card)
	if err != nil {
		fmt.Fprintf(out, "✗ discovery: %v\n", err)
		return errNotConformant
	}
	for _, name := range card.SecuritySchemes.Names() {
		document, ok := documents[name]
		if !ok {
			continue
		}
		logger.Debug("discovery document fetched", zap.String("scheme", name), zap.String("issuer", document.Issuer))
		fmt.Fprintf(out, "✓ %s: issuer %s, token endpoint %s\n", name, document.Issuer, document.TokenURL)
	}
	return nil
}
