package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Be careful with this in production
	},
}

// Message is the frame exchanged with chat clients over the websocket.
type Message struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// handleWebSocket serves an interactive chat session: each incoming frame
// is a question, each answer is streamed back word by word followed by its
// source. Questions on one connection are handled sequentially.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("Error reading message: %v", err)
			break
		}

		s.answerOverSocket(r, conn, msg.Content)
	}
}

func (s *Server) answerOverSocket(r *http.Request, conn *websocket.Conn, query string) {
	answer, err := s.pipeline.Answer(r.Context(), query)
	if err != nil {
		s.sendMessage(conn, "error", err.Error())
		return
	}

	for _, word := range strings.Fields(answer.Answer) {
		s.sendMessage(conn, "stream", word+" ")
	}

	if answer.Sources != "" {
		s.sendMessage(conn, "sources", answer.Sources)
	}
	s.sendMessage(conn, "done", "")
}

func (s *Server) sendMessage(conn *websocket.Conn, msgType string, content string) {
	msg := Message{
		Type:    msgType,
		Content: content,
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
