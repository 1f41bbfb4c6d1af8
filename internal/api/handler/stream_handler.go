package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"turnout/backend/internal/service"
	"turnout/backend/pkg/response"
)

// StreamHandler serves the live attendance stream over SSE.
type StreamHandler struct {
	streamSvc service.StreamService
}

// NewStreamHandler creates a StreamHandler.
func NewStreamHandler(streamSvc service.StreamService) *StreamHandler {
	return &StreamHandler{streamSvc: streamSvc}
}

// Stream subscribes the client to live board updates for a callout.
// Named events: connected, update, submitted, reconnect; heartbeats go
// out as SSE comments. The channel ends on submit (terminal, no
// reconnect), on the server's lifetime cap (client reopens after
// backoff), or on client disconnect.
// GET /api/v1/callouts/:id/stream
func (h *StreamHandler) Stream(c *gin.Context) {
	brigadeID, ok := MustGetBrigadeID(c)
	if !ok {
		return
	}

	events, err := h.streamSvc.Subscribe(c.Request.Context(), brigadeID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCalloutNotFound) {
			response.NotFound(c, 12001, "callout not found")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	flusher, canFlush := c.Writer.(http.Flusher)

	for ev := range events {
		if ev.Name == service.EventHeartbeat {
			fmt.Fprint(c.Writer, ": hb\n\n")
		} else if err := writeEvent(c.Writer, ev); err != nil {
			return
		}
		if canFlush {
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, ev service.Event) error {
	data := []byte("{}")
	if ev.Data != nil {
		encoded, err := json.Marshal(ev.Data)
		if err != nil {
			return err
		}
		data = encoded
	}
	_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data)
	return err
}
