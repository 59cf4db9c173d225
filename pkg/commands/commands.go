package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/stickynote/pkg/commands/options"
	"tableflip.dev/stickynote/pkg/store"
)

var (
	output  = &options.OutputOptions{}
	logging = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "stickynote",
		Short: base.Wrap80("A sticky note for the terminal that remembers what you wrote."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddLogArgs(cmd, logging)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShow(topLevel)
	addSet(topLevel)
	addColor(topLevel)
	addUI(topLevel)
	addReset(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// openStore loads the config and opens the note store it names.
func openStore() (store.Config, *store.Gateway, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	g, err := store.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, g, nil
}
