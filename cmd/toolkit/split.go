package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youruser/cardtoolkit/internal/cards"
	"github.com/youruser/cardtoolkit/internal/util"
)

func newSplitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "split <script|->",
		Short: "Print the cards of a script as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := util.ReadInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(cards.SplitScript(string(raw))); err != nil {
				return fmt.Errorf("write cards: %w", err)
			}
			return nil
		},
	}
}

func newFontsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List the font families available to --font and setting files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range a.fonts.Families() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
