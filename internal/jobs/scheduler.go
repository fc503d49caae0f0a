package jobs

import (
	"time"

	"gameforge/internal/repository"
	"gameforge/internal/service"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

type Scheduler struct {
	cron      *gocron.Scheduler
	log       *zap.SugaredLogger
	users     *repository.UserRepository
	sanctions *repository.SanctionRepository
	notifier  *service.NotificationService
}

func NewScheduler(
	log *zap.SugaredLogger,
	users *repository.UserRepository,
	sanctions *repository.SanctionRepository,
	notifier *service.NotificationService,
) *Scheduler {
	return &Scheduler{
		cron:      gocron.NewScheduler(time.UTC),
		log:       log,
		users:     users,
		sanctions: sanctions,
		notifier:  notifier,
	}
}

// Start registers the background jobs and runs them asynchronously.
func (s *Scheduler) Start() error {
	if _, err := s.cron.Every(1).Minute().SingletonMode().Do(s.liftExpiredBans); err != nil {
		return err
	}
	s.cron.StartAsync()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// liftExpiredBans reactivates accounts whose temporary bans have run out.
// Sanction rows themselves are immutable; only the account flag changes.
func (s *Scheduler) liftExpiredBans() {
	ids, err := s.sanctions.ExpiredBanUserIDs(time.Now())
	if err != nil {
		s.log.Errorw("expired ban sweep failed", "error", err)
		return
	}
	for _, id := range ids {
		if err := s.users.SetActive(id, true); err != nil {
			s.log.Errorw("failed to reactivate user", "user_id", id, "error", err)
			continue
		}
		s.log.Infow("temporary ban lifted", "user_id", id)
		if s.notifier != nil {
			s.notifier.NotifyBanLifted(id)
		}
	}
}
