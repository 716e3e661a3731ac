package settings

import (
	"context"
	"sync"

	"dario.cat/mergo"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nostromo/mother/internal/debug"
)

// Manager holds the live settings of a process and writes every change through to a Store.
type Manager struct {
	mu       sync.RWMutex
	store    Store
	settings Settings
	getenv   func(string) string
}

// NewManager loads the settings from store. Corrupt settings are replaced by the defaults.
func NewManager(ctx context.Context, store Store, getenv func(string) string) (*Manager, error) {
	settings, err := store.Load(ctx)
	if errors.Is(err, ErrCorruptSettings) {
		debug.GetLogger().Warn("discarding stored settings", zap.Error(err))
		settings, err = Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "loading settings")
	}
	return &Manager{store: store, settings: settings, getenv: getenv}, nil
}

// Current settings, with credentials filled from the environment.
func (m *Manager) Current() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.WithEnvironment(m.getenv)
}

// Stored settings, exactly as persisted.
func (m *Manager) Stored() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Update applies the non-zero fields of patch.
func (m *Manager) Update(ctx context.Context, patch Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.settings
	if err := mergo.Merge(&next, patch, mergo.WithOverride); err != nil {
		return errors.Wrap(err, "merging settings")
	}
	return m.save(ctx, next)
}

// Replace every field.
func (m *Manager) Replace(ctx context.Context, settings Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(ctx, settings)
}

// SetModel changes the active model.
func (m *Manager) SetModel(ctx context.Context, model string) error {
	if model == "" {
		return errors.New("model cannot be empty")
	}
	return m.Update(ctx, Settings{CurrentModel: model})
}

// Reset to the defaults and drop the persisted blob.
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Reset(ctx); err != nil {
		return errors.Wrap(err, "resetting store")
	}
	m.settings = Default()
	return nil
}

func (m *Manager) save(ctx context.Context, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := m.store.Save(ctx, settings); err != nil {
		return errors.Wrap(err, "saving settings")
	}
	m.settings = settings
	return nil
}
