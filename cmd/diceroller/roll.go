package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cory-johannsen/diceroller/internal/dice"
)

var (
	totalColor = color.New(color.FgGreen, color.Bold)
	exprColor  = color.New(color.FgCyan)
)

func newRollCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "roll TEXT...",
		Short: "Roll a natural-language dice request",
		Example: `  diceroller roll 2d10 + 2d4 + 4
  diceroller roll "d20 with advantage +3" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			a, err := initializeApp(cfg)
			if err != nil {
				return fmt.Errorf("initializing: %w", err)
			}
			defer func() { _ = a.logger.Sync() }()

			res, err := a.roller.Roll(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return writeRoll(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full roll record as JSON")
	return cmd
}

func newParseCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "parse TEXT...",
		Short:   "Show the canonical expression for a request without rolling",
		Example: `  diceroller parse roll 3d8 plus 2`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			a, err := initializeApp(cfg)
			if err != nil {
				return fmt.Errorf("initializing: %w", err)
			}
			defer func() { _ = a.logger.Sync() }()

			req, err := a.roller.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), parsedView(req))
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (mode: %s)\n", exprColor.Sprint(req.NormalizedExpression), req.Mode)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parsed request as JSON")
	return cmd
}

func writeRoll(w io.Writer, res dice.RollResult) error {
	if _, err := fmt.Fprintln(w, exprColor.Sprint(res.NormalizedExpression)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, res.Explanation); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %s\n", totalColor.Sprint(res.Total))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type parsedJSON struct {
	Input                string `json:"input"`
	NormalizedInput      string `json:"normalized_input"`
	Mode                 string `json:"mode"`
	NormalizedExpression string `json:"normalized_expression"`
	TermCount            int    `json:"term_count"`
}

func parsedView(req dice.ParsedRollRequest) parsedJSON {
	return parsedJSON{
		Input:                req.Input,
		NormalizedInput:      req.NormalizedInput,
		Mode:                 string(req.Mode),
		NormalizedExpression: req.NormalizedExpression,
		TermCount:            len(req.Terms()),
	}
}
