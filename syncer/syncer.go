// Package syncer owns the reactions to identity changes: reloading
// role-scoped state and cycling the live update channel. It is the explicit
// counterpart of what the browser build expressed as effect dependencies.
package syncer

import (
	"context"
	"sync"

	"gomelclient/pkg/logger"
	"gomelclient/pkg/models"
	"gomelclient/session"
	"gomelclient/store"
	"gomelclient/stream"
)

type Syncer struct {
	sess      *session.Manager
	st        *store.Store
	streamCfg stream.Config
	log       logger.ILogger

	mu      sync.Mutex
	channel *stream.Channel
	cancel  context.CancelFunc
}

func New(sess *session.Manager, st *store.Store, streamCfg stream.Config, log logger.ILogger) *Syncer {
	return &Syncer{
		sess:      sess,
		st:        st,
		streamCfg: streamCfg,
		log:       log,
	}
}

// Run performs the initial catalog load, subscribes to identity changes and
// blocks until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	s.st.LoadCatalog(ctx)

	s.sess.OnChange(func(id models.Identity) {
		s.apply(ctx, id)
	})
	s.apply(ctx, s.sess.Identity())

	<-ctx.Done()
	s.stopChannel()
}

// apply re-runs the role-scoped loads and cycles the channel for a new
// identity snapshot. Load failures stay local: background sync has no user
// action to report back to, the cache just stays stale until the next
// trigger.
func (s *Syncer) apply(ctx context.Context, id models.Identity) {
	go func() {
		if err := s.st.RefreshForRole(ctx); err != nil {
			s.log.Warning("syncer: role refresh failed", logger.Error(err))
		}
		if err := s.st.LoadBookings(ctx); err != nil {
			s.log.Warning("syncer: bookings load failed", logger.Error(err))
		}
		if err := s.st.LoadHostBookings(ctx); err != nil {
			s.log.Warning("syncer: host bookings load failed", logger.Error(err))
		}
	}()

	s.stopChannel()
	if !id.Present() {
		return
	}

	ch := stream.New(s.streamCfg, s.st, s.log)
	cctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.channel = ch
	s.cancel = cancel
	s.mu.Unlock()

	go ch.Run(cctx)
}

func (s *Syncer) stopChannel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.channel = nil
	}
}

// ChannelState exposes the live channel state for introspection; idle when
// no identity is present.
func (s *Syncer) ChannelState() stream.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.channel == nil {
		return stream.StateIdle
	}
	return s.channel.State()
}
