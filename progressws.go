package quill

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/eringen/quill/analytics"
)

const (
	progressReadTimeout  = 2 * time.Minute
	progressWriteTimeout = 5 * time.Second
	progressMaxMessage   = 512
)

// Default origin check rejects cross-site upgrades.
var progressUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type progressMessage struct {
	Progress float64 `json:"progress"`
}

// handleProgressSocket streams reading progress for one post. The page sends
// ScrollMetrics samples and receives {"progress": p} for each. When the socket
// closes, the deepest progress reached is recorded as a read.
func (a *App) handleProgressSocket(c echo.Context) error {
	id := c.Param("id")
	if _, err := a.Cache.GetPost(id); err != nil {
		return err
	}

	conn, err := progressUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the error response.
		c.Logger().Debugf("progress upgrade: %v", err)
		return nil
	}
	defer conn.Close()
	conn.SetReadLimit(progressMaxMessage)

	tracker := NewProgressTracker()
	unsubscribe := tracker.Subscribe(func(p float64) {
		conn.SetWriteDeadline(time.Now().Add(progressWriteTimeout))
		if err := conn.WriteJSON(progressMessage{Progress: p}); err != nil {
			c.Logger().Debugf("progress write: %v", err)
		}
	})
	defer unsubscribe()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	events := make(chan ScrollMetrics)
	go readScrollMetrics(ctx, conn, events)

	if err := tracker.Run(ctx, events); err != nil {
		c.Logger().Debugf("progress run: %v", err)
	}
	a.recordRead(c, id, tracker.Max())
	return nil
}

// readScrollMetrics decodes samples from conn until it fails, then closes events.
func readScrollMetrics(ctx context.Context, conn *websocket.Conn, events chan<- ScrollMetrics) {
	defer close(events)
	for {
		conn.SetReadDeadline(time.Now().Add(progressReadTimeout))
		var m ScrollMetrics
		if err := conn.ReadJSON(&m); err != nil {
			return
		}
		select {
		case events <- m:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) recordRead(c echo.Context, postID string, depth float64) {
	if a.analyticsStore == nil {
		return
	}
	ua := c.Request().UserAgent()
	if analytics.IsBot(ua) {
		return
	}
	read := &analytics.Read{
		PostID:    postID,
		VisitorID: analytics.GenerateVisitorID(c.RealIP(), ua),
		Depth:     depth,
	}
	if err := a.analyticsStore.SaveRead(read); err != nil {
		c.Logger().Warnf("record read for %s: %v", postID, err)
	}
}
