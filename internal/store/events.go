package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coresick/lifeline/internal/model"
)

// PutEvent upserts an event together with its assets, atomically.
// Any assets previously stored for the event but absent from it now are
// removed, so the stored asset partition always mirrors the entity.
func (s *Store) PutEvent(ctx context.Context, ev model.TimelineEvent) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return putEventTx(tx, ev)
	})
}

// PutEvents upserts a batch of events in one transaction.
func (s *Store) PutEvents(ctx context.Context, events []model.TimelineEvent) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, ev := range events {
			if err := putEventTx(tx, ev); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteEvent removes an event and, via cascade, its assets.
// Deleting an unknown id returns ErrNotFound.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("delete event %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// ApplyEdit persists an editing result atomically: the removed events
// disappear and the added ones are written, or nothing changes at all.
func (s *Store) ApplyEdit(ctx context.Context, removedIDs []string, added []model.TimelineEvent) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, id := range removedIDs {
			if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
				return fmt.Errorf("apply edit: delete %s: %w", id, err)
			}
		}
		for _, ev := range added {
			if err := putEventTx(tx, ev); err != nil {
				return fmt.Errorf("apply edit: %w", err)
			}
		}
		return nil
	})
}

// GetEvent loads one event with its assets in capture order.
func (s *Store) GetEvent(ctx context.Context, id string) (model.TimelineEvent, error) {
	rows, err := s.db.QueryContext(ctx, eventSelect+` WHERE id = ?`, id)
	if err != nil {
		return model.TimelineEvent{}, fmt.Errorf("get event: %w", err)
	}
	events, err := scanEvents(rows)
	if err != nil {
		return model.TimelineEvent{}, fmt.Errorf("get event: %w", err)
	}
	if len(events) == 0 {
		return model.TimelineEvent{}, fmt.Errorf("get event %s: %w", id, ErrNotFound)
	}
	if err := s.loadAssets(ctx, events); err != nil {
		return model.TimelineEvent{}, err
	}
	return events[0], nil
}

// ListEvents loads all events for an owner ordered by timestamp, assets
// included. An empty owner lists everything.
func (s *Store) ListEvents(ctx context.Context, ownerID string) ([]model.TimelineEvent, error) {
	query := eventSelect + ` ORDER BY timestamp, id`
	args := []any{}
	if ownerID != "" {
		query = eventSelect + ` WHERE owner_id = ? ORDER BY timestamp, id`
		args = append(args, ownerID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events, err := scanEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if err := s.loadAssets(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

const eventSelect = `SELECT id, owner_id, context_id, timestamp, event_type, title, description, participants, lat, lon, privacy, tags FROM events`

func putEventTx(tx *sql.Tx, ev model.TimelineEvent) error {
	participants, err := json.Marshal(stringsOrEmpty(ev.Participants))
	if err != nil {
		return fmt.Errorf("put event: marshal participants: %w", err)
	}
	tags, err := json.Marshal(stringsOrEmpty(ev.Tags))
	if err != nil {
		return fmt.Errorf("put event: marshal tags: %w", err)
	}

	lat, lon := coordColumns(ev.Location)
	_, err = tx.Exec(`
		INSERT INTO events
		(id, owner_id, context_id, timestamp, event_type, title, description, participants, lat, lon, privacy, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			context_id = excluded.context_id,
			timestamp = excluded.timestamp,
			event_type = excluded.event_type,
			title = excluded.title,
			description = excluded.description,
			participants = excluded.participants,
			lat = excluded.lat,
			lon = excluded.lon,
			privacy = excluded.privacy,
			tags = excluded.tags
	`,
		ev.ID,
		ev.OwnerID,
		ev.ContextID,
		ev.Timestamp.UTC().Format(time.RFC3339Nano),
		ev.EventType,
		ev.Title,
		ev.Description,
		string(participants),
		lat,
		lon,
		int(ev.Privacy),
		string(tags),
	)
	if err != nil {
		return fmt.Errorf("put event: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM assets WHERE event_id = ?`, ev.ID); err != nil {
		return fmt.Errorf("put event: clear assets: %w", err)
	}
	for _, a := range ev.Assets {
		alat, alon := coordColumns(a.Location)
		_, err := tx.Exec(`
			INSERT INTO assets (id, event_id, taken_at, lat, lon, exif_complete, is_key)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			a.ID,
			ev.ID,
			a.TakenAt.UTC().Format(time.RFC3339Nano),
			alat,
			alon,
			a.ExifComplete,
			a.IsKeyAsset,
		)
		if err != nil {
			return fmt.Errorf("put event: asset %s: %w", a.ID, err)
		}
	}
	return nil
}

func scanEvents(rows *sql.Rows) ([]model.TimelineEvent, error) {
	defer rows.Close()

	var events []model.TimelineEvent
	for rows.Next() {
		var (
			ev                 model.TimelineEvent
			ts                 string
			participants, tags string
			lat, lon           sql.NullFloat64
			privacy            int
		)
		if err := rows.Scan(&ev.ID, &ev.OwnerID, &ev.ContextID, &ts, &ev.EventType,
			&ev.Title, &ev.Description, &participants, &lat, &lon, &privacy, &tags); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("scan event %s: bad timestamp: %w", ev.ID, err)
		}
		ev.Timestamp = parsed

		if err := json.Unmarshal([]byte(participants), &ev.Participants); err != nil {
			return nil, fmt.Errorf("scan event %s: bad participants: %w", ev.ID, err)
		}
		if err := json.Unmarshal([]byte(tags), &ev.Tags); err != nil {
			return nil, fmt.Errorf("scan event %s: bad tags: %w", ev.ID, err)
		}
		if len(ev.Participants) == 0 {
			ev.Participants = nil
		}
		if len(ev.Tags) == 0 {
			ev.Tags = nil
		}

		ev.Location = coordFromColumns(lat, lon)
		ev.Privacy = model.PrivacyLevel(privacy)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// loadAssets fills the Assets of each event, ordered by capture time.
func (s *Store) loadAssets(ctx context.Context, events []model.TimelineEvent) error {
	for i := range events {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, event_id, taken_at, lat, lon, exif_complete, is_key
			FROM assets WHERE event_id = ? ORDER BY taken_at, id
		`, events[i].ID)
		if err != nil {
			return fmt.Errorf("load assets: %w", err)
		}
		assets, err := scanAssets(rows)
		if err != nil {
			return fmt.Errorf("load assets for %s: %w", events[i].ID, err)
		}
		events[i].Assets = assets
	}
	return nil
}

func scanAssets(rows *sql.Rows) ([]model.MediaAsset, error) {
	defer rows.Close()

	var assets []model.MediaAsset
	for rows.Next() {
		var (
			a        model.MediaAsset
			taken    string
			lat, lon sql.NullFloat64
		)
		if err := rows.Scan(&a.ID, &a.EventID, &taken, &lat, &lon, &a.ExifComplete, &a.IsKeyAsset); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, taken)
		if err != nil {
			return nil, fmt.Errorf("scan asset %s: bad taken_at: %w", a.ID, err)
		}
		a.TakenAt = parsed
		a.Location = coordFromColumns(lat, lon)
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func coordColumns(c *model.Coordinate) (any, any) {
	if c == nil {
		return nil, nil
	}
	return c.Lat, c.Lon
}

func coordFromColumns(lat, lon sql.NullFloat64) *model.Coordinate {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	return &model.Coordinate{Lat: lat.Float64, Lon: lon.Float64}
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
