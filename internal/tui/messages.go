package tui

import (
	"time"

	"github.com/dm/t8-go/internal/engine"
)

// SnapshotMsg delivers successful poll results to the dashboard.
type SnapshotMsg struct {
	Snapshot *engine.DeviceSnapshot
}

// FetchErrorMsg signals a poll failure.
type FetchErrorMsg struct{ Err error }

// TickMsg triggers the next scheduled poll.
type TickMsg time.Time
