package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dshills/multipick/internal/option"
)

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"}]`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, WithHTTPClient(srv.Client()))
	opts, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(opts) != 1 || opts[0].Label != "bitcoin" || opts[0].Value != "btc" {
		t.Errorf("opts = %v", opts)
	}
	if f.Endpoint() != srv.URL {
		t.Errorf("Endpoint = %q", f.Endpoint())
	}
}

func TestHTTPFetcherErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		maxBody int64
		want    error
	}{
		{"server error", http.StatusInternalServerError, "oops", 0, ErrStatus},
		{"rate limited", http.StatusTooManyRequests, "", 0, ErrStatus},
		{"bad payload", http.StatusOK, `{"error":"x"}`, 0, option.ErrNotArray},
		{"too large", http.StatusOK, `[` + strings.Repeat(" ", 64) + `]`, 16, ErrBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			opts := []HTTPOption{WithHTTPClient(srv.Client())}
			if tt.maxBody > 0 {
				opts = append(opts, WithMaxBody(tt.maxBody))
			}
			_, err := NewHTTPFetcher(srv.URL, opts...).Fetch(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHTTPFetcherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(srv.URL).Fetch(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusBadGateway {
		t.Errorf("Code = %d", se.Code)
	}
}

func TestHTTPFetcherTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPFetcher(srv.URL, WithTimeout(20*time.Millisecond)).Fetch(context.Background())
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestWithTimeoutKeepsClientSettings(t *testing.T) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	redirects := 0
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			redirects++
			return http.ErrUseLastResponse
		},
		Timeout: time.Minute,
	}

	f := NewHTTPFetcher("http://example.invalid", WithHTTPClient(client), WithTimeout(5*time.Second))

	if f.client.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", f.client.Timeout)
	}
	if f.client.Jar != jar {
		t.Error("cookie jar dropped")
	}
	if f.client.CheckRedirect == nil {
		t.Fatal("redirect policy dropped")
	}
	_ = f.client.CheckRedirect(nil, nil)
	if redirects != 1 {
		t.Errorf("redirect policy calls = %d, want 1", redirects)
	}
	if client.Timeout != time.Minute {
		t.Errorf("caller's client timeout changed to %v", client.Timeout)
	}
}
