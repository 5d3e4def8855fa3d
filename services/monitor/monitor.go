package monitor

import (
	"context"
	"fmt"
	"time"

	snapshotRepo "padelwatch/database/repository/snapshot"
	subscriptionRepo "padelwatch/database/repository/subscription"
	"padelwatch/models"
	"padelwatch/services/arenal"
	"padelwatch/services/notification"
	"padelwatch/utils"
)

// Service runs the availability monitor cycle.
type Service interface {
	RunCycle(ctx context.Context) error
}

// DefaultMonitorService implements Service: sweep expired subscriptions, then
// for each subscribed date fetch live availability, diff it against the last
// committed snapshot, alert matching subscribers, and commit the new snapshot.
type DefaultMonitorService struct {
	Subscriptions subscriptionRepo.Repository
	Snapshots     snapshotRepo.Repository
	Fetcher       arenal.Client
	Normalizer    *Normalizer
	Notifier      notification.Service

	// NotifyOnce switches the subscription lifecycle: when set, a subscription
	// is deleted after its first successfully delivered alert instead of
	// living until its date expires.
	NotifyOnce bool

	// Now is an injectable clock; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultMonitorService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RunCycle executes one monitor pass. Per-date failures are logged and do not
// stop the remaining dates; a recover guard keeps an unexpected panic from
// reaching the scheduler.
func (s *DefaultMonitorService) RunCycle(ctx context.Context) (err error) {
	logger := utils.GetLogger().Sugar()
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("monitor: cycle aborted by panic: %v", r)
			err = fmt.Errorf("monitor cycle aborted by panic: %v", r)
		}
	}()

	today := s.now().Format("2006-01-02")
	removed, sweepErr := s.Subscriptions.DeleteExpired(today)
	if sweepErr != nil {
		logger.Errorw("monitor: expiry sweep failed", "err", sweepErr)
	} else if removed > 0 {
		logger.Infow("monitor: expired subscriptions removed", "count", removed)
	}

	subs, err := s.Subscriptions.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		logger.Debug("monitor: no active subscriptions")
		return nil
	}

	// One fetch per distinct date, however many subscriptions share it.
	byDate := make(map[string][]models.Subscription)
	for _, sub := range subs {
		byDate[sub.Date] = append(byDate[sub.Date], sub)
	}

	for date, dateSubs := range byDate {
		s.runDate(ctx, date, dateSubs)
	}
	return nil
}

// runDate handles one monitored date end to end. The snapshot is committed
// only after the notification attempts, so a failure before the commit leaves
// the previous snapshot in place and the next cycle recomputes the same new
// slots and retries delivery.
func (s *DefaultMonitorService) runDate(ctx context.Context, date string, subs []models.Subscription) {
	logger := utils.GetLogger().Sugar()
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("monitor: date processing panicked", "date", date, "panic", r)
		}
	}()

	previous, err := s.Snapshots.Get(date)
	if err != nil {
		logger.Errorw("monitor: failed to load snapshot", "date", date, "err", err)
		return
	}

	raw, err := s.Fetcher.FetchSlots(ctx, date)
	if err != nil {
		logger.Errorw("monitor: fetch failed, treating as no availability", "date", date, "err", err)
		raw = nil
	}
	current, err := s.Normalizer.Normalize(raw)
	if err != nil {
		logger.Errorw("monitor: normalize failed, treating as no availability", "date", date, "err", err)
		current = nil
	}

	fresh := Diff(current, previous)
	if len(fresh) == 0 {
		// Nothing new to announce. Rewrite only when slots disappeared, so a
		// later reappearance is flagged as new again.
		if !SameSet(current, previous) {
			if err := s.Snapshots.Put(date, current); err != nil {
				logger.Errorw("monitor: failed to commit snapshot", "date", date, "err", err)
			}
		}
		return
	}
	logger.Infow("monitor: new slots appeared", "date", date, "count", len(fresh))

	// fresh preserves the normalizer's (StartsAt, CourtID) ordering, so each
	// alert lists slots in start-time order.
	for _, sub := range subs {
		matched := Match(fresh, sub.MinTime, sub.MinDuration)
		if len(matched) == 0 {
			continue
		}

		if err := s.Notifier.SendSlotAlert(sub.Email, date, matched); err != nil {
			logger.Errorw("monitor: notification failed", "email", sub.Email, "date", date, "err", err)
			continue
		}
		logger.Infow("monitor: notification sent", "email", sub.Email, "date", date, "slots", len(matched))

		if s.NotifyOnce {
			if err := s.Subscriptions.Delete(sub.ID); err != nil {
				logger.Errorw("monitor: failed to delete notified subscription", "id", sub.ID, "err", err)
			}
		}
	}

	if err := s.Snapshots.Put(date, current); err != nil {
		logger.Errorw("monitor: failed to commit snapshot", "date", date, "err", err)
	}
}
