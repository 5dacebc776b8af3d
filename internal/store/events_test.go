package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coresick/lifeline/internal/model"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir() + "/test.db")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func storedEvent(id string) model.TimelineEvent {
	ts := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	return model.TimelineEvent{
		ID:           id,
		OwnerID:      "alice",
		ContextID:    "ctx-1",
		Timestamp:    ts,
		EventType:    model.EventTypeCollection,
		Title:        "Picnic",
		Description:  "By the lake",
		Participants: []string{"bob"},
		Location:     &model.Coordinate{Lat: 48.85, Lon: 2.35},
		Privacy:      model.PrivacyShared,
		Tags:         []string{"travel"},
		Assets: []model.MediaAsset{
			{ID: id + "-a1", EventID: id, TakenAt: ts, ExifComplete: true, IsKeyAsset: true,
				Location: &model.Coordinate{Lat: 48.85, Lon: 2.35}},
			{ID: id + "-a2", EventID: id, TakenAt: ts.Add(time.Minute)},
		},
	}
}

func TestStore_PutAndGetEventRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	ev := storedEvent("ev-1")

	require.NoError(t, s.PutEvent(ctx, ev))

	got, err := s.GetEvent(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, ev, got)
}

func TestStore_GetEventNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetEvent(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_PutEventIsUpsert(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	ev := storedEvent("ev-1")
	require.NoError(t, s.PutEvent(ctx, ev))

	ev.Title = "Renamed"
	ev.Assets = ev.Assets[:1]
	require.NoError(t, s.PutEvent(ctx, ev))

	got, err := s.GetEvent(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Len(t, got.Assets, 1, "stale assets removed on upsert")
}

func TestStore_ListEventsOrderedByTime(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	late := storedEvent("ev-late")
	late.Timestamp = late.Timestamp.Add(48 * time.Hour)
	early := storedEvent("ev-early")
	require.NoError(t, s.PutEvents(ctx, []model.TimelineEvent{late, early}))

	events, err := s.ListEvents(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "ev-early", events[0].ID)
	assert.Equal(t, "ev-late", events[1].ID)
}

func TestStore_ListEventsFiltersByOwner(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	mine := storedEvent("ev-mine")
	theirs := storedEvent("ev-theirs")
	theirs.OwnerID = "bob"
	require.NoError(t, s.PutEvents(ctx, []model.TimelineEvent{mine, theirs}))

	events, err := s.ListEvents(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev-mine", events[0].ID)

	all, err := s.ListEvents(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_DeleteEventCascadesAssets(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutEvent(ctx, storedEvent("ev-1")))

	require.NoError(t, s.DeleteEvent(ctx, "ev-1"))

	_, err := s.GetEvent(ctx, "ev-1")
	assert.ErrorIs(t, err, ErrNotFound)

	var count int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM assets`).Scan(&count))
	assert.Zero(t, count, "assets cascade with their event")
}

func TestStore_DeleteUnknownEvent(t *testing.T) {
	s := setupTestStore(t)

	err := s.DeleteEvent(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ApplyEditSwapsEventsAtomically(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutEvent(ctx, storedEvent("ev-old")))

	replacementA := storedEvent("ev-new-a")
	replacementB := storedEvent("ev-new-b")
	require.NoError(t, s.ApplyEdit(ctx, []string{"ev-old"}, []model.TimelineEvent{replacementA, replacementB}))

	_, err := s.GetEvent(ctx, "ev-old")
	assert.ErrorIs(t, err, ErrNotFound)

	events, err := s.ListEvents(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestStore_OpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir + "/test.db")
	require.NoError(t, err)
	require.NoError(t, s1.PutEvent(context.Background(), storedEvent("ev-1")))
	require.NoError(t, s1.Close())

	s2, err := Open(dir + "/test.db")
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetEvent(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "Picnic", got.Title)
}
