package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/tc2000/fantasy/stream"
)

// StreamController serves the live feed over SSE and websocket
type StreamController struct {
	bus      *stream.Bus
	upgrader websocket.Upgrader
}

// NewStreamController creates a new stream controller
func NewStreamController(bus *stream.Bus) *StreamController {
	return &StreamController{
		bus: bus,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// SSE handles GET /sse. The connection stays open until the client
// disconnects; it drains the shared pull queue, so messages consumed here are
// gone for every other pull connection.
func (c *StreamController) SSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	if err := writeSSE(w, stream.Connected()); err != nil {
		return
	}
	flusher.Flush()

	for {
		msg, err := c.bus.Consume(r.Context())
		if err != nil {
			return
		}
		if err := writeSSE(w, msg); err != nil {
			return
		}
		flusher.Flush()
	}
}

func writeSSE(w http.ResponseWriter, msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}

// WS handles GET /ws. Every websocket client gets its own broadcast channel,
// so all of them see every message regardless of the pull queue.
func (c *StreamController) WS(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(stream.Connected()); err != nil {
		return
	}

	id, ch := c.bus.Subscribe()
	defer c.bus.Unsubscribe(id)

	// Detect client disconnect; inbound frames are otherwise ignored.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
