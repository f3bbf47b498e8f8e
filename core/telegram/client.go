package telegram

import (
	"net"
	"net/http"
	"time"

	"github.com/m3rciful/specialtybot/core/telegram/sender"
)

const (
	transportAttempts = 3
	transportBackoff  = 500 * time.Millisecond
)

// newHTTPClient returns the Bot API client. Its timeout leaves room for a
// long poll of pollTimeout to return.
func newHTTPClient(pollTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
	return &http.Client{
		Timeout: pollTimeout + 20*time.Second,
		Transport: &retryTransport{
			next: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         dialer.DialContext,
				ForceAttemptHTTP2:   true,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
			attempts: transportAttempts,
			backoff:  transportBackoff,
		},
	}
}

// retryTransport repeats a request whose round trip failed with a network
// error. Requests whose body cannot be replayed are tried once.
type retryTransport struct {
	next     http.RoundTripper
	attempts int
	backoff  time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for attempt := 1; ; attempt++ {
		try := req
		if attempt > 1 {
			try = req.Clone(req.Context())
			if req.Body != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, err
				}
				try.Body = body
			}
		}

		resp, err := t.next.RoundTrip(try)
		if err == nil {
			return resp, nil
		}
		replayable := req.Body == nil || req.GetBody != nil
		if attempt >= t.attempts || !replayable || sender.Classify(err) != sender.KindNetwork {
			return nil, err
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(t.backoff * time.Duration(attempt)):
		}
	}
}
