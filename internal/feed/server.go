package feed

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dimaskresna/lelang-bot/internal/model"
)

const (
	maxMessageSize = 64 << 10
	readTimeout    = 90 * time.Second
	pingInterval   = 30 * time.Second
	writeTimeout   = 10 * time.Second
)

// pushMessage is the wire format the browser extension sends. Field names
// follow what the page scraper produces.
type pushMessage struct {
	ChatID       int64  `json:"chatId"`
	AuctionID    string `json:"auctionId"`
	Countdown    string `json:"countdown"`
	CurrentPrice *int64 `json:"currentPrice"`
	IsYourBid    bool   `json:"isYourBid"`
	IsLoggedIn   bool   `json:"isLoggedIn"`
	LotCode      string `json:"lotCode"`
	Status       string `json:"status"`
}

// Server accepts extension WebSocket connections and feeds pushed snapshots
// into the cache.
type Server struct {
	cache    *Cache
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a Server writing into cache.
func NewServer(cache *Cache, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cache:  cache,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The extension connects from the auction page's origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and consumes pushed snapshots until the
// extension disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	s.logger.Info("feed connected", "remote", r.RemoteAddr)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go s.pingLoop(conn, done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("feed read error", "remote", r.RemoteAddr, "err", err)
			} else {
				s.logger.Info("feed disconnected", "remote", r.RemoteAddr)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		var msg pushMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("bad push message", "err", err)
			continue
		}
		if msg.ChatID == 0 {
			s.logger.Warn("push message without chatId, dropped")
			continue
		}

		s.cache.Put(msg.ChatID, msg.snapshot())
	}
}

func (s *Server) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(writeTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func (m pushMessage) snapshot() model.Snapshot {
	return model.Snapshot{
		AuctionID:    m.AuctionID,
		CurrentPrice: m.CurrentPrice,
		IsOwnBid:     m.IsYourBid,
		Countdown:    m.Countdown,
		IsLoggedIn:   m.IsLoggedIn,
		LotCode:      m.LotCode,
		Status:       m.Status,
		CapturedAt:   time.Now(),
	}
}
