package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewRequestID generates a unique request id suitable for Beeminder's
// datapoint deduplication.
func NewRequestID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// User is the Beeminder user resource. Timestamps are epoch seconds, as on
// the wire.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Timezone    string   `json:"timezone"`
	Goals       []string `json:"goals"`
	CreatedAt   int64    `json:"created_at"`
	UpdatedAt   int64    `json:"updated_at"`
	UrgencyLoad int64    `json:"urgency_load"`
}

// Goal is a tracked commitment on Beeminder, identified by its slug. The
// client never mutates goals; this struct only decodes responses.
type Goal struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	GoalType  string `json:"goal_type"`
	Yaxis     string `json:"yaxis"`
	Goaldate  int64  `json:"goaldate"`
	Losedate  int64  `json:"losedate"`
	UpdatedAt int64  `json:"updated_at"`
	Safesum   string `json:"safesum"`
}

// Datapoint is a single timestamped measurement against a goal. Daystamp is
// the YYYYMMDD day bucket, distinct from the precise timestamp.
type Datapoint struct {
	ID        string  `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Daystamp  string  `json:"daystamp"`
	Value     float64 `json:"value"`
	Comment   string  `json:"comment,omitempty"`
	UpdatedAt int64   `json:"updated_at"`
	Requestid string  `json:"requestid,omitempty"`
}
