// Package realtime consumes the backend's dashboard websocket.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/noelruault/lazyops/internal/logger"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
	maxMessage   = 1 << 20
)

// Marker is one point plotted on the dashboard map.
type Marker struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Severity string  `json:"severity,omitempty"`
}

// Snapshot is one dashboard update.
type Snapshot struct {
	Stats    map[string]any `json:"stats"`
	Markers  []Marker       `json:"markers"`
	Received time.Time      `json:"-"`
}

// Decode parses a message. It returns false for anything that is not a JSON
// object carrying stats or markers.
func Decode(data []byte) (Snapshot, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Snapshot{}, false
	}
	_, hasStats := probe["stats"]
	_, hasMarkers := probe["markers"]
	if !hasStats && !hasMarkers {
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false
	}
	return snap, true
}

// DashboardURL derives the websocket URL from the API base URL.
func DashboardURL(baseURL, token string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	case "http", "ws":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported base url scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws/dashboard"
	u.RawQuery = url.Values{"token": {token}}.Encode()
	u.Fragment = ""
	return u.String(), nil
}

// Client streams dashboard snapshots.
type Client struct {
	URL    string
	Dialer *websocket.Dialer
	Header http.Header

	log *logger.Logger
}

// NewClient creates a client for the dashboard URL.
func NewClient(wsURL string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		URL:    wsURL,
		Dialer: websocket.DefaultDialer,
		log:    log,
	}
}

// Run connects and calls handle for every valid snapshot until ctx is done
// or the connection fails. Malformed messages are skipped. Cancelling ctx
// returns nil.
func (c *Client) Run(ctx context.Context, handle func(Snapshot)) error {
	conn, resp, err := c.Dialer.DialContext(ctx, c.URL, c.Header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dashboard dial failed: %s: %w", resp.Status, err)
		}
		return fmt.Errorf("dashboard dial failed: %w", err)
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		<-gctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		return conn.Close()
	})

	g.Go(func() error {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return fmt.Errorf("dashboard ping: %w", err)
				}
			}
		}
	})

	g.Go(func() error {
		defer stop()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return nil
				}
				return fmt.Errorf("dashboard read: %w", err)
			}
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			snap, ok := Decode(data)
			if !ok {
				c.log.Debug("dashboard message ignored", "bytes", len(data))
				continue
			}
			snap.Received = time.Now()
			handle(snap)
		}
	})

	return g.Wait()
}
