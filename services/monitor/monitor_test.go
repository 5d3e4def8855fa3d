package monitor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	subscriptionRepo "padelwatch/database/repository/subscription"
	"padelwatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeSubscriptionRepo struct {
	subs    []models.Subscription
	deleted []string
}

func (f *fakeSubscriptionRepo) Create(sub *models.Subscription) error {
	for _, s := range f.subs {
		if s.Email == sub.Email && s.Date == sub.Date && s.MinTime == sub.MinTime && s.MinDuration == sub.MinDuration {
			return subscriptionRepo.ErrDuplicate
		}
	}
	f.subs = append(f.subs, *sub)
	return nil
}

func (f *fakeSubscriptionRepo) ListAll() ([]models.Subscription, error) {
	return append([]models.Subscription(nil), f.subs...), nil
}

func (f *fakeSubscriptionRepo) ListByEmail(email string) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, s := range f.subs {
		if s.Email == email {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) Delete(id string) error {
	for i, s := range f.subs {
		if s.ID == id {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return subscriptionRepo.ErrNotFound
}

func (f *fakeSubscriptionRepo) DeleteExpired(before string) (int64, error) {
	var kept []models.Subscription
	var removed int64
	for _, s := range f.subs {
		if s.Date < before {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	f.subs = kept
	return removed, nil
}

type fakeSnapshotRepo struct {
	snapshots map[string][]models.Slot
	putCalls  int
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{snapshots: make(map[string][]models.Slot)}
}

func (f *fakeSnapshotRepo) Get(date string) ([]models.Slot, error) {
	return f.snapshots[date], nil
}

func (f *fakeSnapshotRepo) Put(date string, slots []models.Slot) error {
	f.putCalls++
	f.snapshots[date] = append([]models.Slot(nil), slots...)
	return nil
}

type fakeFetcher struct {
	slots map[string][]models.RawSlot
	err   error
	calls int
}

func (f *fakeFetcher) FetchSlots(ctx context.Context, date string) ([]models.RawSlot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.slots[date], nil
}

type sentAlert struct {
	email string
	date  string
	slots []models.Slot
}

type fakeNotifier struct {
	sent []sentAlert
	fail bool
}

func (f *fakeNotifier) SendSlotAlert(email, date string, slots []models.Slot) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, sentAlert{email: email, date: date, slots: append([]models.Slot(nil), slots...)})
	return nil
}

// --- Helpers ---

const testDate = "2024-06-01"

// rawAt builds a raw record whose local Brussels start on testDate is
// localTime (CEST, UTC+2) with the given duration in minutes.
func rawAt(courtID int, localHour, durationMin int) models.RawSlot {
	start := time.Date(2024, 6, 1, localHour-2, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(durationMin) * time.Minute)
	return models.RawSlot{
		CourtID:  courtID,
		StartsAt: start.Format(time.RFC3339),
		EndsAt:   end.Format(time.RFC3339),
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, subs *fakeSubscriptionRepo, snaps *fakeSnapshotRepo, fetcher *fakeFetcher, notifier *fakeNotifier) *DefaultMonitorService {
	t.Helper()
	normalizer, err := NewNormalizer(models.DefaultCourts(), "Europe/Brussels")
	require.NoError(t, err)
	return &DefaultMonitorService{
		Subscriptions: subs,
		Snapshots:     snaps,
		Fetcher:       fetcher,
		Normalizer:    normalizer,
		Notifier:      notifier,
		Now:           fixedClock,
	}
}

// --- Tests ---

func TestCycleNotifiesOnNewSlotAndCommitsSnapshot(t *testing.T) {
	subs := &fakeSubscriptionRepo{subs: []models.Subscription{
		{ID: "sub-1", Email: "ann@example.com", Date: testDate, MinTime: "20:00", MinDuration: 60},
	}}
	snaps := newFakeSnapshotRepo()
	snaps.snapshots[testDate] = []models.Slot{
		{CourtName: "2 | Vandelanotte (Grimbergen)", CourtID: 20, StartsAt: "20:00", Duration: 90},
	}
	fetcher := &fakeFetcher{slots: map[string][]models.RawSlot{
		testDate: {rawAt(20, 20, 90), rawAt(21, 21, 90)},
	}}
	notifier := &fakeNotifier{}

	svc := newTestService(t, subs, snaps, fetcher, notifier)
	require.NoError(t, svc.RunCycle(context.Background()))

	// Exactly one alert, containing only the newly appeared court-21 slot.
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "ann@example.com", notifier.sent[0].email)
	require.Len(t, notifier.sent[0].slots, 1)
	assert.Equal(t, 21, notifier.sent[0].slots[0].CourtID)
	assert.Equal(t, "21:00", notifier.sent[0].slots[0].StartsAt)

	// The full current set is the committed snapshot.
	assert.Len(t, snaps.snapshots[testDate], 2)

	// The subscription survives the notification.
	remaining, _ := subs.ListAll()
	assert.Len(t, remaining, 1)
}

func TestCycleIsIdempotentWhenNothingChanges(t *testing.T) {
	subs := &fakeSubscriptionRepo{subs: []models.Subscription{
		{ID: "sub-1", Email: "ann@example.com", Date: testDate, MinTime: "20:00", MinDuration: 60},
	}}
	snaps := newFakeSnapshotRepo()
	fetcher := &fakeFetcher{slots: map[string][]models.RawSlot{
		testDate: {rawAt(20, 20, 90)},
	}}
	notifier := &fakeNotifier{}
	svc := newTestService(t, subs, snaps, fetcher, notifier)

	require.NoError(t, svc.RunCycle(context.Background()))
	require.Len(t, notifier.sent, 1)
	putsAfterFirst := snaps.putCalls

	// Second run against an unchanged API: no alerts, no snapshot rewrite.
	require.NoError(t, svc.RunCycle(context.Background()))
	assert.Len(t, notifier.sent, 1)
	assert.Equal(t, putsAfterFirst, snaps.putCalls)
}

func TestCycleFetchesOncePerDistinctDate(t *testing.T) {
	subs := &fakeSubscriptionRepo{subs: []models.Subscription{
		{ID: "sub-1", Email: "ann@example.com", Date: testDate, MinTime: "18:00", MinDuration: 60},
		{ID: "sub-2", Email: "ben@example.com", Date: testDate, MinTime: "20:00", MinDuration: 90},
	}}
	snaps := newFakeSnapshotRepo()
	fetcher := &fakeFetcher{slots: map[string][]models.RawSlot{
		testDate: {rawAt(20, 20, 90)},
	}}
	notifier := &fakeNotifier{}
	svc := newTestService(t, subs, snaps, fetcher, notifier)

	require.NoError(t, svc.RunCycle(context.Background()))
	assert.Equal(t, 1, fetcher.calls)
	assert.Len(t, notifier.sent, 2)
}

func TestCycleSweepsExpiredSubscriptions(t *testing.T) {
	subs := &fakeSubscriptionRepo{subs: []models.Subscription{
		{ID: "old", Email: "ann@example.com", Date: "2024-05-31", MinTime: "20:00", MinDuration: 60},
	}}
	snaps := newFakeSnapshotRepo()
	fetcher := &fakeFetcher{}
	notifier := &fakeNotifier{}
	svc := newTestService(t, subs, snaps, fetcher, notifier)

	require.NoError(t, svc.RunCycle(context.Background()))

	remaining, _ := subs.ListAll()
	assert.Empty(t, remaining)
	// The expired date is gone before any fetch happens.
	assert.Equal(t, 0, fetcher.calls)
}

func TestCycleCommitsSnapshotDespiteNotificationFailure(t *testing.T) {
	subs := &fakeSubscriptionRepo{subs: []models.Subscription{
		{ID: "sub-1", Email: "ann@example.com", Date: testDate, MinTime: "20:00", MinDuration: 60},
	}}
	snaps := newFakeSnapshotRepo()
	fetcher := &fakeFetcher{slots: map[string][]models.RawSlot{
		testDate: {rawAt(20, 20, 90)},
	}}
	notifier := &fakeNotifier{fail: true}
	svc := newTestService(t, subs, snaps, fetcher, notifier)

	require.NoError(t, svc.RunCycle(context.Background()))

	// Delivery failed but the snapshot commit still happened.
	assert.Empty(t, notifier.sent)
	assert.Len(t, snaps.snapshots[testDate], 1)
}

func TestCycleRewritesSnapshotWhenSlotsOnlyDisappear(t *testing.T) {
	subs := &fakeSubscriptionRepo{subs: []models.Subscription{
		{ID: "sub-1", Email: "ann@example.com", Date: testDate, MinTime: "20:00", MinDuration: 60},
	}}
	snaps := newFakeSnapshotRepo()
	snaps.snapshots[testDate] = []models.Slot{
		{CourtID: 20, StartsAt: "20:00", Duration: 90, CourtName: "2 | Vandelanotte (Grimbergen)"},
		{CourtID: 21, StartsAt: "21:00", Duration: 90, CourtName: "3 | JP TRUCKS (Grimbergen)"},
	}
	fetcher := &fakeFetcher{slots: map[string][]models.RawSlot{
		testDate: {rawAt(20, 20, 90)},
	}}
	notifier := &fakeNotifier{}
	svc := newTestService(t, subs, snaps, fetcher, notifier)

	require.NoError(t, svc.RunCycle(context.Background()))

	// No alert, but the shrunken set replaces the snapshot so a later
	// reappearance of the court-21 slot counts as new again.
	assert.Empty(t, notifier.sent)
	assert.Len(t, snaps.snapshots[testDate], 1)
	assert.Equal(t, 1, snaps.putCalls)
}

func TestCycleTreatsFetchFailureAsNoAvailability(t *testing.T) {
	subs := &fakeSubscriptionRepo{subs: []models.Subscription{
		{ID: "sub-1", Email: "ann@example.com", Date: testDate, MinTime: "20:00", MinDuration: 60},
	}}
	snaps := newFakeSnapshotRepo()
	snaps.snapshots[testDate] = []models.Slot{
		{CourtID: 20, StartsAt: "20:00", Duration: 90},
	}
	fetcher := &fakeFetcher{err: fmt.Errorf("connection refused")}
	notifier := &fakeNotifier{}
	svc := newTestService(t, subs, snaps, fetcher, notifier)

	require.NoError(t, svc.RunCycle(context.Background()))
	assert.Empty(t, notifier.sent)
	assert.Empty(t, snaps.snapshots[testDate])
}

func TestCycleDeletesSubscriptionAfterNotifyWhenConfigured(t *testing.T) {
	subs := &fakeSubscriptionRepo{subs: []models.Subscription{
		{ID: "sub-1", Email: "ann@example.com", Date: testDate, MinTime: "20:00", MinDuration: 60},
	}}
	snaps := newFakeSnapshotRepo()
	fetcher := &fakeFetcher{slots: map[string][]models.RawSlot{
		testDate: {rawAt(20, 20, 90)},
	}}
	notifier := &fakeNotifier{}
	svc := newTestService(t, subs, snaps, fetcher, notifier)
	svc.NotifyOnce = true

	require.NoError(t, svc.RunCycle(context.Background()))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, []string{"sub-1"}, subs.deleted)
}
