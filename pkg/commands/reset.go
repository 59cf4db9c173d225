package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stickynote/pkg/runner/reset"
)

func addReset(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the stored note and go back to the default one.",
		Example: `
stickynote reset
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, g, err := openStore()
			if err != nil {
				return err
			}
			defer g.Close()
			r := reset.Reset{Gateway: g}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
