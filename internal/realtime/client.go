// Package realtime maintains the push channel to the backend: a websocket
// connection with bounded reconnection that dispatches named events into
// the dashboard state.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/sirupsen/logrus"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// Socket event names.
const (
	EventNewCampaign       = "new-campaign"
	EventCampaignUpdate    = "campaign-update"
	EventCampaignCompleted = "campaign-completed"
	EventLiveAlertsUpdate  = "live-alerts-update"
	EventDashboardUpdate   = "dashboard-update"
)

const (
	maxReconnectAttempts = 5
	reconnectBackoff     = 2 * time.Second
)

// TokenSource supplies the bearer token for the socket handshake.
type TokenSource interface {
	Token() string
}

// CompletionEvent is the campaign-completed payload.
type CompletionEvent struct {
	CampaignID  string    `json:"campaignId"`
	CompletedAt time.Time `json:"completedAt"`
	Reason      string    `json:"reason"`
	TotalPosts  int       `json:"totalTweets"`
}

// Handlers receives dispatched events. Nil handlers are skipped.
type Handlers struct {
	NewCampaign       func(models.Campaign)
	CampaignUpdate    func(models.Campaign)
	CampaignCompleted func(CompletionEvent)
	LiveAlerts        func([]models.Alert)
	DashboardUpdate   func(models.Overview)
}

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is the reconnecting websocket consumer.
type Client struct {
	socketURL string
	tokens    TokenSource
	handlers  Handlers
	dialer    *websocket.Dialer
}

// NewClient creates a client for the given ws:// or wss:// endpoint.
func NewClient(socketURL string, tokens TokenSource, handlers Handlers) *Client {
	return &Client{
		socketURL: socketURL,
		tokens:    tokens,
		handlers:  handlers,
		dialer:    websocket.DefaultDialer,
	}
}

// Run connects and consumes events until the context is cancelled or the
// reconnect budget is exhausted. Each successful connection resets the
// budget; consumers tolerate the gaps in between.
func (c *Client) Run(ctx context.Context) error {
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, err := c.dial(ctx)
		if err != nil {
			attempts++
			logrus.Warnf("Socket connection failed (attempt %d/%d): %v", attempts, maxReconnectAttempts, err)
			if attempts >= maxReconnectAttempts {
				return fmt.Errorf("realtime connection abandoned after %d attempts: %w", attempts, err)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempts) * reconnectBackoff):
			}
			continue
		}

		logrus.Info("Realtime socket connected")
		attempts = 0

		c.subscribe(conn)
		c.readLoop(ctx, conn)
		conn.Close()

		if err := ctx.Err(); err != nil {
			return err
		}
		logrus.Warn("Realtime socket dropped, reconnecting")
		attempts++
	}
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(c.socketURL)
	if err != nil {
		return nil, fmt.Errorf("invalid socket URL: %w", err)
	}

	if token := c.tokens.Token(); token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}

	conn, _, err := c.dialer.DialContext(ctx, u.String(), nil)
	return conn, err
}

// subscribe announces interest in dashboard push updates.
func (c *Client) subscribe(conn *websocket.Conn) {
	msg := map[string]interface{}{
		"event": "subscribe-dashboard",
		"data": map[string]interface{}{
			"preferences": map[string]bool{
				"alerts":    true,
				"campaigns": true,
				"system":    true,
			},
		},
	}
	if err := conn.WriteJSON(msg); err != nil {
		logrus.Warnf("Failed to send dashboard subscription: %v", err)
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			logrus.Warnf("Discarding malformed socket frame: %v", err)
			continue
		}
		c.dispatch(env)
	}
}

func (c *Client) dispatch(env envelope) {
	switch env.Event {
	case EventNewCampaign:
		if c.handlers.NewCampaign == nil {
			return
		}
		var campaign models.Campaign
		if err := json.Unmarshal(env.Data, &campaign); err != nil {
			logrus.Warnf("Bad %s payload: %v", env.Event, err)
			return
		}
		c.handlers.NewCampaign(campaign)

	case EventCampaignUpdate:
		if c.handlers.CampaignUpdate == nil {
			return
		}
		var campaign models.Campaign
		if err := json.Unmarshal(env.Data, &campaign); err != nil {
			logrus.Warnf("Bad %s payload: %v", env.Event, err)
			return
		}
		c.handlers.CampaignUpdate(campaign)

	case EventCampaignCompleted:
		if c.handlers.CampaignCompleted == nil {
			return
		}
		var completion CompletionEvent
		if err := json.Unmarshal(env.Data, &completion); err != nil {
			logrus.Warnf("Bad %s payload: %v", env.Event, err)
			return
		}
		c.handlers.CampaignCompleted(completion)

	case EventLiveAlertsUpdate:
		if c.handlers.LiveAlerts == nil {
			return
		}
		var payload struct {
			Alerts []models.Alert `json:"alerts"`
		}
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			logrus.Warnf("Bad %s payload: %v", env.Event, err)
			return
		}
		c.handlers.LiveAlerts(payload.Alerts)

	case EventDashboardUpdate:
		if c.handlers.DashboardUpdate == nil {
			return
		}
		var payload struct {
			Data models.Overview `json:"data"`
		}
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			logrus.Warnf("Bad %s payload: %v", env.Event, err)
			return
		}
		c.handlers.DashboardUpdate(payload.Data)

	default:
		logrus.Debugf("Ignoring unknown socket event %q", env.Event)
	}
}
