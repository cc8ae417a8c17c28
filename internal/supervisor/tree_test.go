// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package supervisor

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

// tickService counts Serve invocations and blocks until canceled.
type tickService struct {
	serves atomic.Int32
}

func (s *tickService) Serve(ctx context.Context) error {
	s.serves.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

func (s *tickService) String() string { return "tick" }

func TestDefaultTreeConfig(t *testing.T) {
	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %f, want 5.0", cfg.FailureThreshold)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %s, want 10s", cfg.ShutdownTimeout)
	}
}

func TestNewTreeAppliesDefaults(t *testing.T) {
	tree, err := NewTree(slog.Default(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	if tree.config.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %f, want default 5.0", tree.config.FailureThreshold)
	}
	if tree.config.FailureBackoff != 15*time.Second {
		t.Errorf("FailureBackoff = %s, want default 15s", tree.config.FailureBackoff)
	}
}

func TestTreeRunsServices(t *testing.T) {
	tree, err := NewTree(slog.Default(), DefaultTreeConfig())
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}

	apiSvc := &tickService{}
	jobSvc := &tickService{}
	tree.AddAPIService(apiSvc)
	tree.AddJobService(jobSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(2 * time.Second)
	for apiSvc.serves.Load() == 0 || jobSvc.serves.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("services did not start")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop after cancellation")
	}
}
