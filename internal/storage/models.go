package storage

import "time"

// Kind groups catalog items; each kind has its own bucket.
type Kind string

const (
	KindApplication Kind = "application"
	KindPlace       Kind = "place"
	KindDocument    Kind = "document"
)

// Kinds lists every kind in display order.
var Kinds = []Kind{KindApplication, KindPlace, KindDocument}

// Item is one launchable entry shown in a content tab or a search result.
type Item struct {
	ID          string    `json:"id" toml:"id"`
	Kind        Kind      `json:"kind" toml:"kind"`
	Name        string    `json:"name" toml:"name"`
	Description string    `json:"description" toml:"description"`
	// Target is a command line for applications and a path or URL for
	// places and documents.
	Target   string    `json:"target" toml:"target"`
	Keywords []string  `json:"keywords" toml:"keywords"`
	Content  string    `json:"content" toml:"content"`
	AddedAt  time.Time `json:"added_at" toml:"-"`
}
