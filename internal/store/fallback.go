package store

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func NewGormPinger(db *gorm.DB) Pinger {
	if db == nil {
		return nil
	}
	return gormPinger{db: db}
}

var errNoDatabase = errors.New("no database configured")

// Fallback latches into mock mode the first time the database cannot be
// reached. It never unlatches for the lifetime of the process.
type Fallback struct {
	enabled bool
	pinger  Pinger
	timeout time.Duration
	logger  *zap.Logger
	latched atomic.Bool
}

func NewFallback(enabled bool, pinger Pinger, timeout time.Duration, logger *zap.Logger) *Fallback {
	return &Fallback{
		enabled: enabled,
		pinger:  pinger,
		timeout: timeout,
		logger:  logger,
	}
}

func (f *Fallback) Enabled() bool {
	return f.enabled
}

func (f *Fallback) Latched() bool {
	return f.latched.Load()
}

// Active reports whether mock data must be served.
func (f *Fallback) Active(ctx context.Context) bool {
	if !f.enabled {
		return false
	}
	if f.latched.Load() {
		return true
	}

	if err := f.ping(ctx); err != nil {
		f.Latch(err)
		return true
	}
	return false
}

func (f *Fallback) ping(ctx context.Context) error {
	if f.pinger == nil {
		return errNoDatabase
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	return f.pinger.Ping(ctx)
}

// Latch switches to mock mode. Only the first call logs.
func (f *Fallback) Latch(reason error) {
	if !f.enabled {
		return
	}
	if f.latched.CompareAndSwap(false, true) {
		f.logger.Warn("Database unreachable, serving mock data for events and members until restart",
			zap.Error(reason))
	}
}

// Provider hands out the store that currently backs events and members.
type Provider struct {
	fallback *Fallback
	db       *GormStore
	mock     *MemoryStore
}

func NewProvider(db *gorm.DB, fallback *Fallback, mock *MemoryStore) *Provider {
	p := &Provider{fallback: fallback, mock: mock}
	if db != nil {
		p.db = NewGormStore(db)
	}
	return p
}

func (p *Provider) Fallback() *Fallback {
	return p.fallback
}

func (p *Provider) Events(ctx context.Context) (EventStore, bool) {
	if p.useMock(ctx) {
		return p.mock, true
	}
	return p.db, false
}

func (p *Provider) Members(ctx context.Context) (MemberStore, bool) {
	if p.useMock(ctx) {
		return p.mock, true
	}
	return p.db, false
}

func (p *Provider) useMock(ctx context.Context) bool {
	if p.fallback.Active(ctx) {
		return true
	}
	return p.db == nil
}
