// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// ColorOptions carries the --color flag.
type ColorOptions struct {
	Color string
}

func AddColorArgs(cmd *cobra.Command, o *ColorOptions) {
	cmd.Flags().StringVarP(&o.Color, "color", "c", "",
		`Background colour for the note, example: --color="#F5EE84".`)
}

// Changed reports whether --color was given.
func (o *ColorOptions) Changed(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("color")
}

// FollowOptions
type FollowOptions struct {
	Follow bool
}

func AddFollowArgs(cmd *cobra.Command, o *FollowOptions) {
	cmd.Flags().BoolVarP(&o.Follow, "follow", "f", false,
		"Keep running and print the note again whenever it changes.")
}

// RawOptions
type RawOptions struct {
	Raw string
}

func AddRawArgs(cmd *cobra.Command, o *RawOptions) {
	cmd.Flags().StringVar(&o.Raw, "raw", "",
		`Set the note from a JSON object, example: --raw='{"text":"hi","color":"#000000"}'.`)
}
