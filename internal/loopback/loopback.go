// ABOUTME: Loopback HTTP listener that receives the identity provider redirect
// ABOUTME: Captures the first /callback request URL and hands it to the caller

package loopback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
)

const donePage = `<!doctype html>
<html><head><title>Resume Builder</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 4em">
<h2>Authenticating...</h2>
<p>You can close this window and return to the terminal.</p>
</body></html>`

// Listener serves exactly one callback
type Listener struct {
	server   *http.Server
	listener net.Listener
	result   chan *url.URL
	once     sync.Once
}

// Listen binds addr (use port 0 for an ephemeral port) and starts serving
func Listen(addr string) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	l := &Listener{
		listener: ln,
		result:   make(chan *url.URL, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /callback", l.handleCallback)
	l.server = &http.Server{Handler: mux}

	go func() {
		if err := l.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Warn("Callback listener stopped", "error", err)
		}
	}()

	return l, nil
}

// URL is the redirect target to register with the backend
func (l *Listener) URL() string {
	return "http://" + l.listener.Addr().String() + "/callback"
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	l.once.Do(func() {
		u := *r.URL
		l.result <- &u
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, donePage)
}

// Wait blocks until the callback arrives or ctx ends
func (l *Listener) Wait(ctx context.Context) (*url.URL, error) {
	select {
	case u := <-l.result:
		return u, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the listener
func (l *Listener) Close() error {
	return l.server.Close()
}
