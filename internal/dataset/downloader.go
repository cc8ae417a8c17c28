// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

// Package dataset fetches catalog artifacts from upstream over HTTP.
//
// Downloads run behind a circuit breaker so a flapping upstream does
// not get hammered with retries, and an optional rate limiter bounds
// bandwidth on constrained hosts.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tabletop-labs/playnext/internal/logging"
	"github.com/tabletop-labs/playnext/internal/metrics"
)

// progressLogInterval spaces out download progress log lines.
const progressLogInterval = 5 * time.Second

// copyChunkSize is the unit of rate-limited copying.
const copyChunkSize = 64 * 1024

// Config controls the downloader.
type Config struct {
	// Dir receives completed artifacts.
	Dir string

	// Timeout bounds one whole download attempt.
	Timeout time.Duration

	// RatePerSec throttles the download to this many bytes per second.
	// Zero disables throttling.
	RatePerSec float64
}

// Downloader fetches artifacts with circuit breaking and throttling.
type Downloader struct {
	config  Config
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[int64]
	limiter *rate.Limiter
}

// NewDownloader creates a Downloader.
//
// The breaker opens after 60% of at least 5 requests fail inside a one
// minute window, and probes again after two minutes.
func NewDownloader(config Config) *Downloader {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Minute
	}

	cbName := "dataset-download"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	breaker := gobreaker.NewCircuitBreaker[int64](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("download circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	var limiter *rate.Limiter
	if config.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RatePerSec), copyChunkSize)
	}

	return &Downloader{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		breaker: breaker,
		limiter: limiter,
	}
}

// Download fetches url into the configured directory and returns the
// final file path. The artifact lands under a temporary name and is
// renamed only after the full body arrives, so a partial download never
// shadows a previous good copy.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	dest := filepath.Join(d.config.Dir, filepath.Base(url))

	written, err := d.breaker.Execute(func() (int64, error) {
		return d.fetch(ctx, url, dest)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordDownload("rejected", 0)
			return "", fmt.Errorf("download rejected, upstream circuit open: %w", err)
		}
		metrics.RecordDownload("failure", 0)
		return "", err
	}

	metrics.RecordDownload("success", written)
	logging.Info().Str("url", url).Str("path", dest).Int64("bytes", written).Msg("dataset artifact downloaded")
	return dest, nil
}

func (d *Downloader) fetch(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(d.config.Dir, filepath.Base(dest)+".part-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := d.copyWithProgress(ctx, tmp, resp.Body, resp.ContentLength)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("writing %s: %w", dest, err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, fmt.Errorf("finalizing %s: %w", dest, err)
	}
	return written, nil
}

// copyWithProgress streams body to w in rate-limited chunks, logging
// progress periodically.
func (d *Downloader) copyWithProgress(ctx context.Context, w io.Writer, body io.Reader, total int64) (int64, error) {
	var written int64
	lastLog := time.Now()
	buf := make([]byte, copyChunkSize)

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if d.limiter != nil {
				if err := d.limiter.WaitN(ctx, n); err != nil {
					return written, err
				}
			}
			if _, err := w.Write(buf[:n]); err != nil {
				return written, err
			}
			written += int64(n)

			if time.Since(lastLog) >= progressLogInterval {
				evt := logging.Debug().Int64("bytes", written)
				if total > 0 {
					evt = evt.Float64("percent", float64(written)/float64(total)*100)
				}
				evt.Msg("download progress")
				lastLog = time.Now()
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
