package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stickynote/pkg/commands/options"
	"tableflip.dev/stickynote/pkg/runner/update"
)

func addColor(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "color <hex>",
		Aliases: []string{"colour"},
		Short:   "Change the note background colour",
		Example: `
stickynote color "#F8B4D9"
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return colorCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			log, closeLog, err := logging.Logger()
			if err != nil {
				return err
			}
			defer closeLog()
			cfg, g, err := openStore()
			if err != nil {
				return output.HandleError(err)
			}
			defer g.Close()
			u := update.Update{
				Gateway:   g,
				MaxLength: cfg.MaxLength(),
				Color:     &args[0],
				JSON:      output.JSON,
				Plain:     output.Plain,
				Logger:    log,
			}
			err = u.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
