package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"bambawatch/internal/config"
	"bambawatch/internal/datastore"
	"bambawatch/internal/models"
	"bambawatch/internal/notifier"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	available bool
}

func (fc *fakeChecker) CheckStore(_ context.Context, store models.Store) models.Observation {
	return models.NewObservation(store.Name, time.Now(), []models.Item{
		models.NewItem("Bamba | 25g", "$2.50", fc.available),
	})
}

type allowAllGuard struct{}

func (allowAllGuard) AllowRun() bool { return true }

type denyGuard struct{}

func (denyGuard) AllowRun() bool { return false }

type recordingDispatcher struct {
	messages []notifier.Message
}

func (rd *recordingDispatcher) Dispatch(_ context.Context, messages []notifier.Message) int {
	rd.messages = append(rd.messages, messages...)
	return len(messages)
}

type failingSubscriberStore struct{}

func (failingSubscriberStore) List(context.Context, models.Frequency) ([]models.Subscriber, error) {
	return nil, errors.New("subscriber backend down")
}
func (failingSubscriberStore) Upsert(context.Context, string, models.Preferences) (datastore.UpsertOutcome, error) {
	return "", errors.New("subscriber backend down")
}
func (failingSubscriberStore) Remove(context.Context, string) (bool, error) {
	return false, errors.New("subscriber backend down")
}
func (failingSubscriberStore) Close() error { return nil }

func testConfig(t *testing.T) *config.GlobalConfig {
	t.Helper()
	cfg := config.NewDefaultGlobalConfig()
	cfg.Stores = []models.Store{{Name: "Dianella", URL: "https://example.com/dianella"}}
	cfg.StorageConfig.HistoryFile = filepath.Join(t.TempDir(), "history.json")
	cfg.ExtractorConfig.MinStepDelayMs = 0
	cfg.ExtractorConfig.MaxStepDelayMs = 0
	// Keep tests independent of the wall clock.
	cfg.SchedulerConfig.OperatingHourStart = 0
	cfg.SchedulerConfig.OperatingHourEnd = 24
	cfg.SchedulerConfig.Timezone = "UTC"
	return cfg
}

func newTestOrchestrator(t *testing.T, cfg *config.GlobalConfig, checker StoreChecker, guard RunGuard, subs datastore.SubscriberStore, dispatcher MessageDispatcher) *Orchestrator {
	t.Helper()
	history := datastore.NewHistoryStore(cfg.StorageConfig, zerolog.Nop())
	return NewOrchestrator(cfg, checker, guard, history, subs, dispatcher, time.UTC, zerolog.Nop())
}

func newFileSubscribers(t *testing.T, prefs models.Preferences) datastore.SubscriberStore {
	t.Helper()
	store := datastore.NewFileSubscriberStore(filepath.Join(t.TempDir(), "subs.json"), zerolog.Nop())
	_, err := store.Upsert(context.Background(), "sub@example.com", prefs)
	require.NoError(t, err)
	return store
}

func TestRunCycle_AppendsHistoryAndNotifies(t *testing.T) {
	cfg := testConfig(t)
	dispatcher := &recordingDispatcher{}
	subs := newFileSubscribers(t, models.Preferences{Frequency: models.FrequencyImmediate})

	orch := newTestOrchestrator(t, cfg, &fakeChecker{available: true}, allowAllGuard{}, subs, dispatcher)
	require.NoError(t, orch.RunCycle(context.Background()))

	history, err := datastore.NewHistoryStore(cfg.StorageConfig, zerolog.Nop()).Load()
	require.NoError(t, err)
	require.Len(t, history.Runs, 1)
	assert.True(t, history.Runs[0][0].Available)

	require.Len(t, dispatcher.messages, 1)
	assert.Equal(t, "sub@example.com", dispatcher.messages[0].To)
	assert.Contains(t, dispatcher.messages[0].Subject, "ALERT")
}

func TestRunCycle_SubscriberLookupFailureStillRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	dispatcher := &recordingDispatcher{}

	orch := newTestOrchestrator(t, cfg, &fakeChecker{available: true}, allowAllGuard{}, failingSubscriberStore{}, dispatcher)
	require.NoError(t, orch.RunCycle(context.Background()))

	history, err := datastore.NewHistoryStore(cfg.StorageConfig, zerolog.Nop()).Load()
	require.NoError(t, err)
	assert.Len(t, history.Runs, 1)
	assert.Empty(t, dispatcher.messages)
}

func TestRunCycle_GuardSkipsRunWithoutTouchingHistory(t *testing.T) {
	cfg := testConfig(t)
	dispatcher := &recordingDispatcher{}
	subs := newFileSubscribers(t, models.Preferences{})

	orch := newTestOrchestrator(t, cfg, &fakeChecker{available: true}, denyGuard{}, subs, dispatcher)
	require.NoError(t, orch.RunCycle(context.Background()))

	history, err := datastore.NewHistoryStore(cfg.StorageConfig, zerolog.Nop()).Load()
	require.NoError(t, err)
	assert.Empty(t, history.Runs)
}

func TestRunCycle_OutsideOperatingHoursIsCleanNoOp(t *testing.T) {
	cfg := testConfig(t)
	// An empty window puts every invocation outside operating hours.
	cfg.SchedulerConfig.OperatingHourStart = 0
	cfg.SchedulerConfig.OperatingHourEnd = 0
	dispatcher := &recordingDispatcher{}
	subs := newFileSubscribers(t, models.Preferences{})

	orch := newTestOrchestrator(t, cfg, &fakeChecker{available: true}, allowAllGuard{}, subs, dispatcher)
	require.NoError(t, orch.RunCycle(context.Background()))

	history, err := datastore.NewHistoryStore(cfg.StorageConfig, zerolog.Nop()).Load()
	require.NoError(t, err)
	assert.Empty(t, history.Runs, "history must stay untouched outside the window")
	assert.Empty(t, dispatcher.messages)
}

func TestWithinOperatingHours(t *testing.T) {
	cfg := testConfig(t)
	cfg.SchedulerConfig.OperatingHourStart = 7
	cfg.SchedulerConfig.OperatingHourEnd = 23

	orch := newTestOrchestrator(t, cfg, &fakeChecker{}, allowAllGuard{}, newFileSubscribers(t, models.Preferences{}), &recordingDispatcher{})

	assert.True(t, orch.WithinOperatingHours(time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC)))
	assert.True(t, orch.WithinOperatingHours(time.Date(2025, 6, 10, 22, 59, 0, 0, time.UTC)))
	assert.False(t, orch.WithinOperatingHours(time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)))
	assert.False(t, orch.WithinOperatingHours(time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC)))
}

func TestRunDigest_SendsToDailySubscribers(t *testing.T) {
	cfg := testConfig(t)
	dispatcher := &recordingDispatcher{}
	subs := newFileSubscribers(t, models.Preferences{Frequency: models.FrequencyDaily})

	orch := newTestOrchestrator(t, cfg, &fakeChecker{available: true}, allowAllGuard{}, subs, dispatcher)

	// One cycle today, then the digest.
	require.NoError(t, orch.RunCycle(context.Background()))
	require.NoError(t, orch.RunDigest(context.Background()))

	// The immediate pass sent nothing (the only subscriber is daily), the
	// digest pass sent one summary.
	require.Len(t, dispatcher.messages, 1)
	assert.Contains(t, dispatcher.messages[0].Subject, "Daily report")
	assert.True(t, dispatcher.messages[0].HTML)
}

func TestRunDigest_NoRunsToday(t *testing.T) {
	cfg := testConfig(t)
	dispatcher := &recordingDispatcher{}
	subs := newFileSubscribers(t, models.Preferences{Frequency: models.FrequencyDaily})

	orch := newTestOrchestrator(t, cfg, &fakeChecker{}, allowAllGuard{}, subs, dispatcher)
	require.NoError(t, orch.RunDigest(context.Background()))
	assert.Empty(t, dispatcher.messages)
}
