package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRouterHealthz(t *testing.T) {
	srv := httptest.NewServer(Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRouterExposesCollectors(t *testing.T) {
	ObserveUpdate("callback")
	ObserveHandler("callback.nav", "ok", 12*time.Millisecond)
	ObserveSendFailure("timeout")
	ObserveRateLimited()

	srv := httptest.NewServer(Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	text := string(body)
	for _, want := range []string{
		`bot_updates_total{kind="callback"}`,
		`bot_handler_duration_seconds_count{handler="callback.nav",outcome="ok"}`,
		`bot_send_failures_total{kind="timeout"}`,
		`bot_rate_limited_total`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("metrics output missing %s", want)
		}
	}
}

func TestServeDisabledWithoutAddr(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := Serve(ctx, "  "); err != nil {
		t.Fatalf("serve: %v", err)
	}
}
