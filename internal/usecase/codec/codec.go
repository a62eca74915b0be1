package codec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingualatina/internal/entity"
	"github.com/eslsoft/lingualatina/internal/repository"
)

// LoadReport tells which slot produced the loaded state.
type LoadReport struct {
	Source   string   // empty when the state came from defaults
	Migrated bool     // true when Source is a legacy slot
	Skipped  []string // slots whose content could not be parsed
}

// Codec reads and writes the application state through a slot store.
type Codec struct {
	store      repository.SlotStore
	key        string
	migrations []Migration
	logger     logrus.FieldLogger
	now        func() time.Time
	loc        *time.Location
}

type Option func(*Codec)

// WithMigrations replaces the legacy slot list.
func WithMigrations(migrations []Migration) Option {
	return func(c *Codec) { c.migrations = migrations }
}

func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(c *Codec) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// New constructs a codec bound to the current slot key.
func New(store repository.SlotStore, logger logrus.FieldLogger, opts ...Option) *Codec {
	c := &Codec{
		store:      store,
		key:        CurrentKey,
		migrations: DefaultMigrations(),
		logger:     logger,
		now:        time.Now,
		loc:        time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the current slot key.
func (c *Codec) Key() string { return c.key }

// Load reads the current slot, then legacy slots newest first, then defaults.
// Unparseable content counts as absent; store failures are returned.
func (c *Codec) Load(ctx context.Context) (*entity.AppState, LoadReport, error) {
	var report LoadReport
	candidates := append([]Migration{{Key: c.key}}, c.migrations...)
	env := MigrationEnv{Now: c.now(), Location: c.loc}

	for _, candidate := range candidates {
		data, err := c.store.Get(ctx, candidate.Key)
		if errors.Is(err, repository.ErrSlotNotFound) {
			continue
		}
		if err != nil {
			return nil, report, fmt.Errorf("read slot %q: %w", candidate.Key, err)
		}
		raw, err := ParseObject(data)
		if err != nil {
			c.logger.WithError(err).WithField("slot", candidate.Key).Warn("ignoring unreadable storage slot")
			report.Skipped = append(report.Skipped, candidate.Key)
			continue
		}
		if candidate.Migrate != nil {
			raw = candidate.Migrate(raw, env)
			report.Migrated = true
		}
		report.Source = candidate.Key
		return Merge(raw, DecodeOptions{Now: env.Now}), report, nil
	}
	return Defaults(), report, nil
}

// Save writes the state to the current slot.
func (c *Codec) Save(ctx context.Context, st *entity.AppState) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	if err := c.store.Put(ctx, c.key, data); err != nil {
		return fmt.Errorf("write slot %q: %w", c.key, err)
	}
	return nil
}

// Clear removes the current slot. Legacy slots are left alone.
func (c *Codec) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("delete slot %q: %w", c.key, err)
	}
	return nil
}
