package options

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Verbose bool
	File    string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug details to stderr.")
}

func AddLogFileArg(cmd *cobra.Command, o *LogOptions) {
	cmd.Flags().StringVar(&o.File, "log-file", "",
		"Write logs to this file while the editor owns the terminal.")
}

// Logger builds the command logger. The returned close func is never nil.
func (o *LogOptions) Logger() (*slog.Logger, func() error, error) {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if o.File != "" {
		f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closeFn, err
		}
		w, closeFn = f, f.Close
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}
