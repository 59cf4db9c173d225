package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/stickynote/pkg/commands/options"
	"tableflip.dev/stickynote/pkg/runner/update"
)

func addSet(topLevel *cobra.Command) {
	co := &options.ColorOptions{}
	ro := &options.RawOptions{}
	var text string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the note text",
		Example: `
stickynote set buy milk
stickynote set call back at 3 --color "#A7D8F0"
stickynote set --raw '{"text":"hi","color":"#000000"}'
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 && ro.Raw == "" {
				return errors.New("requires note text or --raw")
			}
			text = strings.Join(args, " ")
			return nil
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
				Raw:       ro.Raw,
				JSON:      output.JSON,
				Plain:     output.Plain,
				Logger:    log,
			}
			if ro.Raw == "" {
				u.Text = &text
				if co.Changed(cmd) {
					u.Color = &co.Color
				}
			}
			err = u.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddColorArgs(cmd, co)
	options.AddRawArgs(cmd, ro)
	_ = cmd.RegisterFlagCompletionFunc("color", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return colorCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
