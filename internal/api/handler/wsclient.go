package handler

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"randomconnect/backend/internal/chathub"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// wsSession is one authenticated WebSocket connection. Each inbound frame is
// routed through the hub and the reply is written back on the same
// connection, so the request/response contract matches the HTTP endpoint.
type wsSession struct {
	hub    *chathub.Hub
	anonID string
	conn   *websocket.Conn
	send   chan string
}

type wsInbound struct {
	Text     string `json:"text"`
	Nickname string `json:"nickname"`
}

type wsOutbound struct {
	Reply string `json:"reply"`
}

func (s *wsSession) run() {
	go s.writePump()
	go s.readPump()
}

func (s *wsSession) readPump() {
	defer func() {
		close(s.send)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WARN: ws read error: %v", err)
			}
			return
		}

		var in wsInbound
		if err := json.Unmarshal(data, &in); err != nil {
			log.Printf("WARN: ws bad frame from %s: %v", shortAnonID(s.anonID), err)
			continue
		}
		if in.Text == "" {
			continue
		}

		reply := s.hub.Process(s.anonID, in.Text, in.Nickname)
		s.send <- reply
	}
}

func (s *wsSession) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case reply, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			data, err := json.Marshal(wsOutbound{Reply: reply})
			if err != nil {
				log.Printf("ERROR: ws encode for %s: %v", shortAnonID(s.anonID), err)
				continue
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func shortAnonID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
