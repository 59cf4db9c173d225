package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/stickynote/pkg/tui/palette"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(stickynote completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(stickynote completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func colorCompletions(toComplete string) []string {
	out := make([]string, 0, len(palette.Presets))
	for _, opt := range palette.Presets {
		if strings.HasPrefix(strings.ToLower(opt.Color), strings.ToLower(toComplete)) {
			out = append(out, opt.Color+"\t"+opt.Label)
		}
	}
	return out
}
