// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetJSONDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("X-Api-Key"); got != "secret" {
			t.Errorf("expected X-Api-Key header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Inception","year":2010}`))
	}))
	defer srv.Close()

	c := New(Options{Name: "test", Timeout: 5 * time.Second})

	var out struct {
		Name string `json:"name"`
		Year int    `json:"year"`
	}
	err := c.GetJSON(context.Background(), srv.URL, map[string]string{"X-Api-Key": "secret"}, &out)
	if err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if out.Name != "Inception" || out.Year != 2010 {
		t.Errorf("unexpected decoded value: %+v", out)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"quota exceeded"}`))
	}))
	defer srv.Close()

	c := New(Options{Name: "test", Timeout: 5 * time.Second})

	err := c.GetJSON(context.Background(), srv.URL, nil, nil)
	if err == nil {
		t.Fatal("expected error for 429 response")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if se.Status != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", se.Status)
	}
	if se.Body == "" {
		t.Error("expected error body to be retained")
	}
}

func TestPostJSONSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected JSON content type, got %q", got)
		}
		buf := make([]byte, 256)
		n, _ := r.Body.Read(buf)
		if string(buf[:n]) != `{"prompt":"cozy mysteries"}` {
			t.Errorf("unexpected body: %s", buf[:n])
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(Options{Name: "test", Timeout: 5 * time.Second})

	body := map[string]string{"prompt": "cozy mysteries"}
	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.PostJSON(context.Background(), srv.URL, nil, body, &out); err != nil {
		t.Fatalf("PostJSON failed: %v", err)
	}
	if !out.OK {
		t.Error("expected decoded ok=true")
	}
}

func TestGetJSONContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := New(Options{Name: "test", Timeout: 5 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.GetJSON(ctx, srv.URL, nil, nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
