package store

import (
	"errors"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// BackendDiskv stores the note as a file under the base path.
	BackendDiskv = "diskv"
	// BackendSQLite stores the note in a SQLite database under the base path.
	BackendSQLite = "sqlite"

	// DefaultKey is the single key the note lives under.
	DefaultKey = "mindar-sticky-note"
)

// Config describes where and how the note is persisted.
type Config interface {
	BasePath() string
	Backend() string
	Key() string
	MaxLength() int
	TrackerCommand() []string
}

// LoadConfig reads .stickynote.yaml and STICKYNOTE_* environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.stickynote.db")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("key", DefaultKey)
	v.SetDefault("max_length", 0)
	v.SetDefault("tracker.command", "")
	v.SetConfigName(".stickynote") // .yaml is implicit
	v.SetEnvPrefix("STICKYNOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("STICKYNOTE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:    path,
		Kind:    strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		NoteKey: v.GetString("key"),
		Max:     v.GetInt("max_length"),
		Tracker: strings.Fields(v.GetString("tracker.command")),
	}, nil
}

// StaticConfig is a Config built in code, mostly for tests and embedding.
type StaticConfig struct {
	Path    string
	Kind    string
	NoteKey string
	Max     int
	Tracker []string
}

func (s StaticConfig) BasePath() string         { return s.Path }
func (s StaticConfig) Backend() string          { return backendOrDefault(s.Kind) }
func (s StaticConfig) Key() string              { return keyOrDefault(s.NoteKey) }
func (s StaticConfig) MaxLength() int           { return s.Max }
func (s StaticConfig) TrackerCommand() []string { return s.Tracker }

type fileConfig struct {
	Path    string   `json:"path"`
	Kind    string   `json:"backend"`
	NoteKey string   `json:"key"`
	Max     int      `json:"max_length"`
	Tracker []string `json:"tracker_command,omitempty"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Backend() string {
	return backendOrDefault(f.Kind)
}

func (f *fileConfig) Key() string {
	return keyOrDefault(f.NoteKey)
}

func (f *fileConfig) MaxLength() int {
	return f.Max
}

func (f *fileConfig) TrackerCommand() []string {
	return f.Tracker
}

func backendOrDefault(b string) string {
	if b == "" {
		return BackendDiskv
	}
	return b
}

func keyOrDefault(k string) string {
	if strings.TrimSpace(k) == "" {
		return DefaultKey
	}
	return k
}
