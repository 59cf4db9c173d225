package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stickynote/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	raw := false
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the note and where it is stored.",
		Example: `
stickynote info
stickynote info --raw
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, g, err := openStore()
			if err != nil {
				return err
			}
			defer g.Close()
			s := info.Info{
				Config:  cfg,
				Gateway: g,
				Raw:     raw,
			}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Also print the stored payload.")
	topLevel.AddCommand(cmd)
}
