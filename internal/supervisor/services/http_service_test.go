// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockHTTPServer is a test double for HTTPServer.
type mockHTTPServer struct {
	listenAndServeErr   error
	listenAndServeBlock bool
	shutdownErr         error
	shutdownCount       atomic.Int32
	started             chan struct{}
	stopCh              chan struct{}
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		started: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	select {
	case m.started <- struct{}{}:
	default:
	}

	if m.listenAndServeErr != nil {
		return m.listenAndServeErr
	}
	if m.listenAndServeBlock {
		<-m.stopCh
		return http.ErrServerClosed
	}
	return nil
}

func (m *mockHTTPServer) Shutdown(_ context.Context) error {
	m.shutdownCount.Add(1)
	close(m.stopCh)
	return m.shutdownErr
}

func TestHTTPServerServiceInterface(t *testing.T) {
	var _ suture.Service = (*HTTPServerService)(nil)

	svc := NewHTTPServerService(newMockHTTPServer(), time.Second)
	if got := svc.String(); got != "http-server" {
		t.Errorf("String() = %q, want %q", got, "http-server")
	}
}

func TestHTTPServerServiceStartupError(t *testing.T) {
	mock := newMockHTTPServer()
	mock.listenAndServeErr = errors.New("address already in use")

	svc := NewHTTPServerService(mock, time.Second)
	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatal("expected error when server fails to start")
	}
	if !errors.Is(err, mock.listenAndServeErr) {
		t.Errorf("error should wrap the listen error, got: %v", err)
	}
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	mock := newMockHTTPServer()
	mock.listenAndServeBlock = true

	svc := NewHTTPServerService(mock, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	select {
	case <-mock.started:
	case <-time.After(2 * time.Second):
		t.Fatal("server was not started")
	}

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	if mock.shutdownCount.Load() != 1 {
		t.Errorf("Shutdown called %d times, want 1", mock.shutdownCount.Load())
	}
}

func TestHTTPServerServiceShutdownError(t *testing.T) {
	mock := newMockHTTPServer()
	mock.listenAndServeBlock = true
	mock.shutdownErr = errors.New("connections still draining")

	svc := NewHTTPServerService(mock, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	select {
	case <-mock.started:
	case <-time.After(2 * time.Second):
		t.Fatal("server was not started")
	}

	cancel()

	select {
	case err := <-done:
		if err == nil || errors.Is(err, context.Canceled) {
			t.Errorf("expected shutdown failure error, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestHTTPServerServiceDefaultTimeout(t *testing.T) {
	svc := NewHTTPServerService(newMockHTTPServer(), 0)
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v, want 10s default", svc.shutdownTimeout)
	}
}
