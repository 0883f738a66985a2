package snapshot

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/store"
)

// Mirror writes the state to a Provider after mutations. Writes are best
// effort: failures are logged and otherwise ignored.
type Mirror struct {
	provider Provider
	logger   *slog.Logger

	mu   sync.Mutex // serialises Save and External
	seen checksum.Tracker
}

// NewMirror creates a Mirror over provider.
func NewMirror(provider Provider, logger *slog.Logger) *Mirror {
	return &Mirror{provider: provider, logger: logger}
}

// Rehydrate loads the stored state. A missing, unreadable or corrupt blob
// yields fallback instead of an error.
func (m *Mirror) Rehydrate(fallback store.State) store.State {
	blob, err := m.provider.Load(Key)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			m.logger.Info("snapshot: none stored, using seed data")
		} else {
			m.logger.Warn("snapshot: load failed, using seed data", slog.String("error", err.Error()))
		}
		return fallback
	}
	s, err := Decode(blob)
	if err != nil {
		m.logger.Warn("snapshot: corrupt blob, using seed data", slog.String("error", err.Error()))
		return fallback
	}
	m.seen.Observe(blob)
	m.logger.Info("snapshot: rehydrated", slog.Int("bytes", len(blob)))
	return s
}

// Save encodes s and writes it unless it is identical to the last blob seen.
func (m *Mirror) Save(s store.State) {
	blob, err := Encode(s)
	if err != nil {
		m.logger.Warn("snapshot: encode failed", slog.String("error", err.Error()))
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.seen.Observe(blob) {
		return
	}
	if err := m.provider.Save(Key, blob); err != nil {
		m.logger.Warn("snapshot: save failed", slog.String("error", err.Error()))
		return
	}
	m.logger.Debug("snapshot: saved", slog.Int("bytes", len(blob)), slog.String("checksum", m.seen.Last()))
}

// Listener returns a store.Listener that mirrors every dispatch.
func (m *Mirror) Listener() store.Listener {
	return func(_ store.Action, s store.State) {
		m.Save(s)
	}
}

// External decodes a blob that appeared in storage without going through
// Save. It reports false when the blob matches one of the mirror's recent
// writes or cannot be decoded.
func (m *Mirror) External(blob []byte) (store.State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen.Known(blob) {
		return store.State{}, false
	}
	m.seen.Observe(blob)
	s, err := Decode(blob)
	if err != nil {
		m.logger.Warn("snapshot: ignoring corrupt external write", slog.String("error", err.Error()))
		return store.State{}, false
	}
	return s, true
}
