// Package store persists the sticky note under a single key.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"tableflip.dev/stickynote/pkg/note"
)

var (
	// ErrUnavailable means there is no durable store to talk to.
	ErrUnavailable = errors.New("store: unavailable")
	// ErrNoRecord means nothing is stored under the key.
	ErrNoRecord = errors.New("store: no record")
	// ErrCorrupt means the stored value is not valid JSON.
	ErrCorrupt = errors.New("store: corrupt record")
	// ErrShape means the stored value lacks string text and color fields.
	ErrShape = errors.New("store: unexpected record shape")
)

// Gateway loads and saves the note record.
type Gateway struct {
	kv       KV
	key      string
	basePath string
	backend  string
	close    func() error
}

// New wraps kv. A nil kv yields a gateway that reports ErrUnavailable.
func New(kv KV, key string) *Gateway {
	return &Gateway{kv: kv, key: keyOrDefault(key), close: nop}
}

// Open builds a gateway from cfg, loading the config when cfg is nil.
func Open(cfg Config) (*Gateway, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	kv, closeFn, err := OpenKV(cfg)
	if err != nil {
		return nil, err
	}
	return &Gateway{
		kv:       kv,
		key:      cfg.Key(),
		basePath: cfg.BasePath(),
		backend:  cfg.Backend(),
		close:    closeFn,
	}, nil
}

// Key returns the key the note is stored under.
func (g *Gateway) Key() string {
	return g.key
}

// Close releases the backend.
func (g *Gateway) Close() error {
	if g == nil || g.close == nil {
		return nil
	}
	return g.close()
}

// Raw returns the stored bytes without decoding them.
func (g *Gateway) Raw() ([]byte, error) {
	if g == nil || g.kv == nil {
		return nil, ErrUnavailable
	}
	raw, err := g.kv.Read(g.key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %q: %w", g.key, err)
	}
	if len(raw) == 0 {
		return nil, ErrNoRecord
	}
	return raw, nil
}

// Load returns the stored text and colour verbatim. Sanitizing is left to
// the caller.
func (g *Gateway) Load() (note.Record, error) {
	raw, err := g.Raw()
	if err != nil {
		return note.Record{}, err
	}
	return Decode(raw)
}

// Decode parses a stored value.
func Decode(raw []byte) (note.Record, error) {
	if !json.Valid(raw) {
		return note.Record{}, ErrCorrupt
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return note.Record{}, ErrShape
	}
	text, ok := jsonString(fields["text"])
	if !ok {
		return note.Record{}, fmt.Errorf("%w: text is not a string", ErrShape)
	}
	color, ok := jsonString(fields["color"])
	if !ok {
		return note.Record{}, fmt.Errorf("%w: color is not a string", ErrShape)
	}
	return note.Record{Text: text, Color: color}, nil
}

// Save writes r under the key.
func (g *Gateway) Save(r note.Record) error {
	if g == nil || g.kv == nil {
		return ErrUnavailable
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := g.kv.Write(g.key, data); err != nil {
		return fmt.Errorf("store: write %q: %w", g.key, err)
	}
	return nil
}

// Clear removes the stored note. Clearing an empty store is not an error.
func (g *Gateway) Clear() error {
	if g == nil || g.kv == nil {
		return ErrUnavailable
	}
	if err := g.kv.Erase(g.key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %q: %w", g.key, err)
	}
	return nil
}

func jsonString(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
