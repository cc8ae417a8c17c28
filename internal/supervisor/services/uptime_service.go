// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package services

import (
	"context"
	"time"

	"github.com/tabletop-labs/playnext/internal/metrics"
)

// UptimeService periodically publishes the process uptime gauge.
type UptimeService struct {
	interval time.Duration
	started  time.Time
}

// NewUptimeService creates the uptime publisher. interval <= 0 defaults
// to 15 seconds.
func NewUptimeService(interval time.Duration) *UptimeService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &UptimeService{
		interval: interval,
		started:  time.Now(),
	}
}

// Serve implements suture.Service.
func (u *UptimeService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			metrics.AppUptime.Set(time.Since(u.started).Seconds())
		}
	}
}

// String implements fmt.Stringer.
func (u *UptimeService) String() string {
	return "uptime-publisher"
}
