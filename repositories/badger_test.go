package repositories

import (
	"afk-sentinel/domain"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func newTestStores(t *testing.T) Stores {
	db, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBadgerStores(db, logs.GetLoggerFromLevel(slog.LevelDebug))
}

func Test_BadgerStore_Set_Get_Delete_Activity(t *testing.T) {
	req := require.New(t)
	stores := newTestStores(t)
	since := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	record := domain.ActivityRecord{
		ParticipantID:      "alice",
		DisplayName:        "Alice",
		AwaySince:          since,
		OriginalLocationID: lo.ToPtr(domain.LocationID("general-voice")),
	}

	// Given a stored away record
	req.NoError(stores.Activity.Set("alice", record))

	// When fetching it back
	fetched, ok, err := stores.Activity.Get("alice")
	req.NoError(err)
	req.True(ok)
	req.Equal(record, fetched)

	// Then deleting it makes it absent, not an error
	req.NoError(stores.Activity.Delete("alice"))
	_, ok, err = stores.Activity.Get("alice")
	req.NoError(err)
	req.False(ok)
}

func Test_BadgerStore_Namespaces_Do_Not_Overlap(t *testing.T) {
	req := require.New(t)
	stores := newTestStores(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	req.NoError(stores.Windows.Set("bob", domain.RateWindow{Timestamps: []time.Time{now, now.Add(time.Second)}}))
	req.NoError(stores.Suspensions.Set("bob", domain.SuspensionRecord{ParticipantID: "bob", ExpiresAt: now.Add(time.Minute)}))
	req.NoError(stores.Suspensions.Set("carol", domain.SuspensionRecord{ParticipantID: "carol", ExpiresAt: now}))

	windows, err := stores.Windows.Len()
	req.NoError(err)
	req.Equal(1, windows)

	suspended := map[domain.ParticipantID]time.Time{}
	err = stores.Suspensions.Range(func(id domain.ParticipantID, s domain.SuspensionRecord) bool {
		suspended[id] = s.ExpiresAt
		return true
	})
	req.NoError(err)
	req.Equal(map[domain.ParticipantID]time.Time{
		"bob":   now.Add(time.Minute),
		"carol": now,
	}, suspended)

	window, ok, err := stores.Windows.Get("bob")
	req.NoError(err)
	req.True(ok)
	req.Equal(2, window.Len())
	req.True(window.LastWarnedAt.IsZero())
}

func Test_BadgerStore_Range_Allows_Deleting(t *testing.T) {
	req := require.New(t)
	stores := newTestStores(t)
	for _, id := range []domain.ParticipantID{"a", "b", "c"} {
		req.NoError(stores.Suspensions.Set(id, domain.SuspensionRecord{ParticipantID: id}))
	}

	err := stores.Suspensions.Range(func(id domain.ParticipantID, _ domain.SuspensionRecord) bool {
		req.NoError(stores.Suspensions.Delete(id))
		return true
	})
	req.NoError(err)

	count, err := stores.Suspensions.Len()
	req.NoError(err)
	req.Zero(count)
}

func Test_ActivityCodec_Without_Original_Location(t *testing.T) {
	req := require.New(t)
	record := domain.ActivityRecord{ParticipantID: "dave", AwaySince: time.Unix(0, 42).UTC()}

	raw, err := ActivityCodec{}.Marshal(record)
	req.NoError(err)
	decoded, err := ActivityCodec{}.Unmarshal(raw)
	req.NoError(err)

	req.Equal(record, decoded)
	req.Nil(decoded.OriginalLocationID)
}

func Test_Codec_Rejects_Truncated_Data(t *testing.T) {
	req := require.New(t)
	raw, err := SuspensionCodec{}.Marshal(domain.SuspensionRecord{ParticipantID: "erin", ExpiresAt: time.Now()})
	req.NoError(err)

	_, err = SuspensionCodec{}.Unmarshal(raw[:len(raw)-1])
	req.Error(err)
}

func Test_OpenBadger_OnDisk_Starts_Empty(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given records written by a previous run
	db, err := OpenBadger(dir)
	req.NoError(err)
	stores := NewBadgerStores(db, log)
	req.NoError(stores.Activity.Set("alice", domain.ActivityRecord{ParticipantID: "alice", DisplayName: "Alice"}))
	req.NoError(stores.Windows.Set("spammer", domain.RateWindow{Timestamps: []time.Time{time.Now().UTC()}}))
	req.NoError(stores.Suspensions.Set("spammer", domain.SuspensionRecord{ParticipantID: "spammer"}))
	req.NoError(db.Close())

	// When the directory is opened again
	db, err = OpenBadger(dir)
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })
	stores = NewBadgerStores(db, log)

	// Then nothing survived the restart
	for _, length := range []func() (int, error){stores.Activity.Len, stores.Windows.Len, stores.Suspensions.Len} {
		n, err := length()
		req.NoError(err)
		req.Zero(n)
	}
	_, ok, err := stores.Activity.Get("alice")
	req.NoError(err)
	req.False(ok)
}
