package main

import (
	"github.com/spf13/cobra"

	"github.com/cory-johannsen/diceroller/internal/config"
)

// serviceName tags every log line emitted by the binary.
const serviceName = "diceroller"

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "diceroller",
		Short: "Roll D&D dice from natural-language requests",
		Long: `diceroller turns requests such as "2d10 + 2d4 + 4" or
"d20 with advantage +3" into audited dice rolls.

Run "diceroller serve" to expose the roll_dice and parse_dice MCP tools,
or use "roll" and "parse" directly from the terminal. Settings come from
the optional --config YAML file, then DICE_* environment variables
(a .env file in the working directory is loaded first).`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML configuration file (defaults and DICE_* env when empty)")

	cmd.AddCommand(
		newServeCmd(opts),
		newRollCmd(opts),
		newParseCmd(opts),
	)
	return cmd
}

func (o *rootOptions) load() (config.Config, error) {
	return config.Load(o.configPath)
}
