package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"webpersonal/api/internal/repository"
	"webpersonal/api/internal/storage"
)

// Scheduler runs the nightly avatar sweep: objects in the avatars
// bucket that no user record references anymore get deleted. Orphans
// appear when an avatar is replaced mid-request and the row update
// fails afterwards.
type Scheduler struct {
	cron  *cron.Cron
	users *repository.UserRepository
	store *storage.ObjectStore
	log   zerolog.Logger
}

func NewScheduler(users *repository.UserRepository, store *storage.ObjectStore, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		users: users,
		store: store,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.store == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("0 0 3 * * *", s.sweepOrphanedAvatars); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) sweepOrphanedAvatars() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	referenced, err := s.users.AvatarKeys(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("load referenced avatars failed")
		return
	}
	inUse := make(map[string]struct{}, len(referenced))
	for _, key := range referenced {
		inUse[key] = struct{}{}
	}

	stored, err := s.store.ListAvatarKeys(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list avatar objects failed")
		return
	}

	removed := 0
	for _, key := range stored {
		if _, ok := inUse[key]; ok {
			continue
		}
		if err := s.store.RemoveAvatar(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("remove orphaned avatar failed")
			continue
		}
		removed++
	}

	s.log.Info().Int("removed", removed).Int("stored", len(stored)).Msg("avatar sweep finished")
}
