package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liendesk/internal/domain"
	"liendesk/internal/store"
)

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Data: domain.Draft{
			Details: domain.DetailsSection{ProjectName: "Tower", StateID: "TX"},
			Dates:   domain.DatesSection{StartDate: domain.NewDate(2024, 1, 1)},
			Contract: domain.ContractSection{
				BaseAmount: 100000, AdditionalAmount: 20000, PaymentsReceived: 30000,
			},
		},
		Step:    domain.StepContract,
		MaxStep: domain.StepContacts,
	}
}

func backends(t *testing.T) map[string]store.DraftStore {
	t.Helper()
	ctx := context.Background()

	sqlite, err := store.OpenSQLiteDraftStore(ctx, filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	mr := miniredis.RunT(t)
	rdb, err := store.OpenRedisDraftStore(ctx, "redis://"+mr.Addr(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return map[string]store.DraftStore{
		"file":   store.NewFileDraftStore(t.TempDir()),
		"memory": store.NewMemoryDraftStore(),
		"sqlite": sqlite,
		"redis":  rdb,
	}
}

func TestDraftStores_RoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := s.LoadDraft(ctx)
			require.NoError(t, err)
			assert.False(t, ok, "empty store")

			want := sampleSnapshot()
			require.NoError(t, s.SaveDraft(ctx, want))
			got, ok, err := s.LoadDraft(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want, got)

			// last write wins
			want.Step = domain.StepDates
			require.NoError(t, s.SaveDraft(ctx, want))
			got, _, err = s.LoadDraft(ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.StepDates, got.Step)

			require.NoError(t, s.ClearDraft(ctx))
			_, ok, err = s.LoadDraft(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.ClearDraft(ctx), "clearing twice is fine")
		})
	}
}

func TestFileDraftStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drafts", domain.DraftKey+".json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, ok, err := store.NewFileDraftStore(dir).LoadDraft(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, store.ErrCorruptDraft)
}

func TestRedisDraftStore_TTLAndCorruptValue(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := store.NewRedisDraftStore(client, 10*time.Minute)

	require.NoError(t, s.SaveDraft(ctx, sampleSnapshot()))
	assert.Equal(t, 10*time.Minute, mr.TTL(domain.DraftKey))

	mr.FastForward(11 * time.Minute)
	_, ok, err := s.LoadDraft(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "expired draft")

	require.NoError(t, mr.Set(domain.DraftKey, "garbage"))
	_, _, err = s.LoadDraft(ctx)
	assert.ErrorIs(t, err, store.ErrCorruptDraft)
}

func TestRedisDraftStore_ScopedPerAccount(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	alice, err := store.OpenDraftStore(ctx, store.DraftOptions{Backend: "redis", RedisURL: "redis://" + mr.Addr(), Account: "u-alice"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = alice.Close() })
	bob, err := store.OpenDraftStore(ctx, store.DraftOptions{Backend: "redis", RedisURL: "redis://" + mr.Addr(), Account: "u-bob"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = bob.Close() })

	require.NoError(t, alice.SaveDraft(ctx, sampleSnapshot()))
	assert.True(t, mr.Exists(domain.DraftKey+":u-alice"))
	assert.False(t, mr.Exists(domain.DraftKey))

	_, ok, err := bob.LoadDraft(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "another account sees no draft")

	require.NoError(t, bob.ClearDraft(ctx))
	_, ok, err = alice.LoadDraft(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOpenDraftStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.OpenDraftStore(ctx, store.DraftOptions{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &store.FileDraftStore{}, s)

	s, err = store.OpenDraftStore(ctx, store.DraftOptions{Backend: "SQLite", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &store.SQLiteDraftStore{}, s)
	require.NoError(t, s.Close())

	_, err = store.OpenDraftStore(ctx, store.DraftOptions{Backend: "etcd"})
	assert.Error(t, err)
}
