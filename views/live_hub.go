package views

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"speedsense/models"
	"speedsense/utils"
)

const (
	clientSendBuffer = 16
	writeWait        = 5 * time.Second
)

// LiveFrame is one live-window update pushed to websocket clients.
type LiveFrame struct {
	SensorType string                `json:"sensor_type"`
	Points     []models.DisplayPoint `json:"points"`
}

type liveClient struct {
	conn *websocket.Conn
	send chan []byte
}

// LiveHub is the display surface for the live windows. Refresh is called on
// the main queue and never blocks: a client whose buffer is full misses the
// frame.
type LiveHub struct {
	upgrader websocket.Upgrader
	log      *utils.Logger

	mu      sync.RWMutex
	clients map[*liveClient]struct{}
	latest  map[models.SensorKind][]models.DisplayPoint

	dropped uint64
}

func NewLiveHub() *LiveHub {
	return &LiveHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     utils.L().Named("live"),
		clients: make(map[*liveClient]struct{}),
		latest:  make(map[models.SensorKind][]models.DisplayPoint),
	}
}

// Handler serves /ws and /api/live.
func (h *LiveHub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/api/live", h.serveLive)
	return mux
}

// Run serves the hub on addr until ctx is done.
func (h *LiveHub) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	srv := &http.Server{Addr: addr, Handler: h.Handler()}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	h.log.Info("listening on %s", addr)

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		h.closeAll()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}

// Refresh records the window for kind and fans it out to every client.
func (h *LiveHub) Refresh(kind models.SensorKind, window []models.DisplayPoint) {
	frame, err := json.Marshal(LiveFrame{SensorType: kind.String(), Points: window})
	if err != nil {
		h.log.Warn("%s frame: %v", kind, err)
		return
	}

	h.mu.Lock()
	h.latest[kind] = window
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			atomic.AddUint64(&h.dropped, 1)
		}
	}
	h.mu.Unlock()
}

// Window returns the last window published for kind.
func (h *LiveHub) Window(kind models.SensorKind) []models.DisplayPoint {
	h.mu.RLock()
	defer h.mu.RUnlock()
	w := h.latest[kind]
	out := make([]models.DisplayPoint, len(w))
	copy(out, w)
	return out
}

func (h *LiveHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns how many frames were skipped for slow clients.
func (h *LiveHub) Dropped() uint64 {
	return atomic.LoadUint64(&h.dropped)
}

func (h *LiveHub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade: %v", err)
		return
	}

	c := &liveClient{conn: conn, send: make(chan []byte, clientSendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.log.Debug("client connected  (%s)", r.RemoteAddr)

	go h.writePump(c)

	// Clients never send anything meaningful; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read: %v", err)
			}
			break
		}
	}
	h.remove(c)
	h.log.Debug("client disconnected  (%s)", r.RemoteAddr)
}

func (h *LiveHub) writePump(c *liveClient) {
	defer c.conn.Close()
	for frame := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (h *LiveHub) remove(c *liveClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *LiveHub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *LiveHub) serveLive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	kind, err := models.ParseSensorKind(r.URL.Query().Get("sensor_type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payload, err := json.Marshal(LiveFrame{SensorType: kind.String(), Points: h.Window(kind)})
	if err != nil {
		http.Error(w, "Internal Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}
