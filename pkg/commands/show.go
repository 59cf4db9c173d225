package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stickynote/pkg/commands/options"
	"tableflip.dev/stickynote/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	fo := &options.FollowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the sticky note",
		Example: `
stickynote show
stickynote show --follow
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			s := show.Show{
				Gateway:   g,
				MaxLength: cfg.MaxLength(),
				Follow:    fo.Follow,
				JSON:      output.JSON,
				Plain:     output.Plain,
				Logger:    log,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddFollowArgs(cmd, fo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
