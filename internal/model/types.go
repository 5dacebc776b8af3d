package model

import "time"

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// MediaAsset is a single imported media item (photo, video frame, scan).
// An asset is owned by exactly one TimelineEvent at a time.
type MediaAsset struct {
	ID       string      `json:"id"`
	EventID  string      `json:"event_id"`
	TakenAt  time.Time   `json:"taken_at"`
	Location *Coordinate `json:"location,omitempty"`
	// ExifComplete marks assets whose capture metadata was fully parsed
	// upstream. Key-asset selection prefers these.
	ExifComplete bool `json:"exif_complete"`
	IsKeyAsset   bool `json:"is_key_asset"`
}

// HasLocation reports whether the asset carries a geocoordinate.
func (a MediaAsset) HasLocation() bool {
	return a.Location != nil
}

// Event type tags assigned by the clustering engine. User-created events may
// carry arbitrary tags; these three are the synthesized ones.
const (
	EventTypeBurst      = "burst"
	EventTypeCollection = "collection"
	EventTypePhoto      = "photo"
)

// PrivacyLevel controls upstream visibility filtering. The engine never
// interprets it; it is carried through for the host.
type PrivacyLevel int

const (
	PrivacyPrivate PrivacyLevel = iota
	PrivacyShared
	PrivacyPublic
)

// TimelineEvent is the authoritative durable entity of the timeline.
//
// Created by the clustering engine (import) or directly by a user action,
// mutated only by the editor operations or direct edits, deleted explicitly.
type TimelineEvent struct {
	ID           string       `json:"id"`
	OwnerID      string       `json:"owner_id"`
	ContextID    string       `json:"context_id,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
	EventType    string       `json:"event_type"`
	Title        string       `json:"title,omitempty"`
	Description  string       `json:"description,omitempty"`
	Assets       []MediaAsset `json:"assets,omitempty"`
	Participants []string     `json:"participants,omitempty"`
	Location     *Coordinate  `json:"location,omitempty"`
	Privacy      PrivacyLevel `json:"privacy"`
	Tags         []string     `json:"tags,omitempty"`
}

// HasParticipant reports whether id is the owner or an explicit participant.
func (e TimelineEvent) HasParticipant(id string) bool {
	if e.OwnerID == id {
		return true
	}
	for _, p := range e.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// KeyAsset returns the event's key asset, or nil if none is flagged.
func (e TimelineEvent) KeyAsset() *MediaAsset {
	for i := range e.Assets {
		if e.Assets[i].IsKeyAsset {
			return &e.Assets[i]
		}
	}
	return nil
}

// MediaCluster is a transient grouping of assets produced by the clustering
// engine before conversion into a TimelineEvent.
type MediaCluster struct {
	Assets []MediaAsset
	Start  time.Time
	End    time.Time
	// Center is the centroid of the geotagged assets; nil when none carry GPS.
	Center *Coordinate
	// KeyAssetID identifies the representative asset. Always set for a
	// non-empty cluster, chosen deterministically.
	KeyAssetID string
	IsBurst    bool
}

// Duration is the elapsed time between the first and last asset.
func (c MediaCluster) Duration() time.Duration {
	return c.End.Sub(c.Start)
}
