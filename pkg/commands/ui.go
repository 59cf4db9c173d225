package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stickynote/pkg/commands/options"
	"tableflip.dev/stickynote/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	lo := &options.LogOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive note editor",
		Example: `
stickynote ui
STICKYNOTE_TRACKER_COMMAND="mindar-tracker --camera 0" stickynote ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, g, err := openStore()
			if err != nil {
				return err
			}
			defer g.Close()

			i := ui.UI{Config: cfg, Gateway: g}
			if lo.File != "" {
				lo.Verbose = logging.Verbose
				log, closeLog, err := lo.Logger()
				if err != nil {
					return err
				}
				defer closeLog()
				i.Logger = log
			}
			return i.Do(cmd.Context())
		},
	}

	options.AddLogFileArg(cmd, lo)
	topLevel.AddCommand(cmd)
}
