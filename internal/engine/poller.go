// Package engine aggregates the status endpoints for the watch dashboard.
package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dm/t8-go/internal/client"
)

// DeviceSnapshot is one poll result: the device status plus system
// information, fetched together.
type DeviceSnapshot struct {
	Status    *client.Status
	Info      *client.SystemInfo
	FetchedAt time.Time
}

// FetchAll calls info/status and info/system concurrently. Both endpoints
// are required; the first error aborts the whole snapshot.
func FetchAll(ctx context.Context, c client.T8Client) (*DeviceSnapshot, error) {
	var (
		status *client.Status
		info   *client.SystemInfo
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		status, err = c.GetStatus(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		info, err = c.GetSystemInfo(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DeviceSnapshot{
		Status:    status,
		Info:      info,
		FetchedAt: time.Now(),
	}, nil
}
