package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakePinger struct {
	mu    sync.Mutex
	err   error
	calls atomic.Int32
}

func (p *fakePinger) Ping(ctx context.Context) error {
	p.calls.Add(1)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *fakePinger) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func TestFallbackLatchesOnFailure(t *testing.T) {
	ctx := context.Background()
	pinger := &fakePinger{}
	f := NewFallback(true, pinger, time.Second, zap.NewNop())

	assert.False(t, f.Active(ctx))
	assert.False(t, f.Latched())

	pinger.fail(errors.New("connection refused"))
	assert.True(t, f.Active(ctx))
	assert.True(t, f.Latched())

	pinger.fail(nil)
	calls := pinger.calls.Load()
	assert.True(t, f.Active(ctx), "latch must survive a recovered database")
	assert.Equal(t, calls, pinger.calls.Load(), "no ping once latched")
}

func TestFallbackWithoutDatabase(t *testing.T) {
	f := NewFallback(true, NewGormPinger(nil), time.Second, zap.NewNop())
	assert.True(t, f.Active(context.Background()))
}

func TestFallbackDisabled(t *testing.T) {
	pinger := &fakePinger{}
	pinger.fail(errors.New("down"))
	f := NewFallback(false, pinger, time.Second, zap.NewNop())

	assert.False(t, f.Active(context.Background()))
	f.Latch(errors.New("down"))
	assert.False(t, f.Latched())
	assert.Zero(t, pinger.calls.Load())
}

func TestProviderSwitchesToMock(t *testing.T) {
	ctx := context.Background()
	mock := NewMockStore(time.Now())

	f := NewFallback(true, nil, time.Second, zap.NewNop())
	p := NewProvider(nil, f, mock)

	events, isMock := p.Events(ctx)
	assert.True(t, isMock)
	assert.Same(t, mock, events)

	members, isMock := p.Members(ctx)
	assert.True(t, isMock)
	assert.Same(t, mock, members)
}
