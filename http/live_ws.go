package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	liveWriteWait = 10 * time.Second
	liveReadLimit = 1 << 10
)

// liveRequest is one incoming frame on the live endpoint.
type liveRequest struct {
	Name string `json:"name"`
}

// handleLivePredict upgrades the connection and answers every submitted name
// with its ranked distributions, so clients can stream predictions as the
// user types. The connection closes on the first read or write error.
func (s *Server) handleLivePredict(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(liveReadLimit)
	for {
		var req liveRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		if req.Name == "" {
			continue
		}

		prediction, err := s.predictor.Predict(req.Name)
		if err != nil {
			s.logger.Error("live prediction failed", zap.String("name", req.Name), zap.Error(err))
			return
		}

		conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		if err := conn.WriteJSON(prediction); err != nil {
			return
		}
	}
}
