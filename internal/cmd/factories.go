package cmd

import (
	"context"
	"fmt"

	adapterkeymap "github.com/renato0307/keebs/internal/adapters/keymap"
	adapterstorage "github.com/renato0307/keebs/internal/adapters/storage"
	"github.com/renato0307/keebs/internal/config"
	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/ports"
	"github.com/renato0307/keebs/internal/services"
)

// Container holds all dependencies for the application.
// The overrides database is opened on first use, so commands that only
// parse or format shortcuts never touch it.
type Container struct {
	Settings *config.Settings

	dbPath          string
	overrideRepo    ports.OverrideRepository
	overrideService *services.OverrideService
}

// NewContainer creates a new Container
func NewContainer(settings *config.Settings, dbPath string) *Container {
	if settings == nil {
		settings = &config.Settings{}
	}
	return &Container{
		Settings: settings,
		dbPath:   dbPath,
	}
}

// NewContainerWithRepository creates a Container around an existing repository
func NewContainerWithRepository(settings *config.Settings, repo ports.OverrideRepository) *Container {
	c := NewContainer(settings, "")
	c.overrideRepo = repo
	return c
}

// OverrideRepository returns the overrides store, opening the database if needed
func (c *Container) OverrideRepository() (ports.OverrideRepository, error) {
	if c.overrideRepo != nil {
		return c.overrideRepo, nil
	}

	repo, err := adapterstorage.NewSQLiteRepository(c.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open overrides database: %w", err)
	}
	c.overrideRepo = repo
	return c.overrideRepo, nil
}

// OverrideService returns the service CLI commands use to edit overrides on disk.
// It is not bound to a tracker; the demo binds its own.
func (c *Container) OverrideService() (*services.OverrideService, error) {
	if c.overrideService != nil {
		return c.overrideService, nil
	}

	repo, err := c.OverrideRepository()
	if err != nil {
		return nil, err
	}
	c.overrideService = services.NewOverrideService(repo, nil)
	return c.overrideService, nil
}

// DefaultShortcuts returns the settings shortcuts with the keymap file layered on top
func (c *Container) DefaultShortcuts() (domain.ShortcutMap, error) {
	return mergeKeymap(c.Settings.Shortcuts, c.Settings.GetKeymapFile())
}

func mergeKeymap(base domain.ShortcutMap, keymapFile string) (domain.ShortcutMap, error) {
	defaults := base.Clone()
	if keymapFile == "" {
		return defaults, nil
	}

	fromFile, err := adapterkeymap.Load(keymapFile)
	if err != nil {
		return nil, err
	}
	for id, s := range fromFile {
		defaults[id] = s
	}
	logging.Logger.Debug("Keymap file loaded", "path", keymapFile, "shortcuts", len(fromFile))
	return defaults, nil
}

// TrackerConfig builds a tracker configuration from settings, the keymap
// file and, when withOverrides is set, the persisted overrides
func (c *Container) TrackerConfig(ctx context.Context, withOverrides bool) (services.TrackerConfig, error) {
	if err := c.Settings.Validate(); err != nil {
		return services.TrackerConfig{}, fmt.Errorf("invalid settings.json: %w", err)
	}

	triggers, err := c.Settings.GetTriggerKeys()
	if err != nil {
		return services.TrackerConfig{}, err
	}
	defaults, err := c.DefaultShortcuts()
	if err != nil {
		return services.TrackerConfig{}, err
	}

	cfg := services.TrackerConfig{
		TriggerKeys:       triggers,
		Delay:             c.Settings.GetDelay(),
		Theme:             c.Settings.GetTheme(),
		DisabledInitially: c.Settings.IsDisabled(),
		DefaultShortcuts:  defaults,
		Permissive:        c.Settings.IsPermissive(),
	}

	if withOverrides {
		svc, err := c.OverrideService()
		if err != nil {
			return services.TrackerConfig{}, err
		}
		overrides, err := svc.List(ctx)
		if err != nil {
			return services.TrackerConfig{}, err
		}
		cfg.Overrides = overrides
	}

	return cfg, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.overrideRepo != nil {
		return c.overrideRepo.Close()
	}
	return nil
}
