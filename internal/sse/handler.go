package sse

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Handler streams progression events to a dashboard over SSE. Clients
// scope the feed with query parameters: athlete limits it to one
// athlete's events, types to a comma-separated list of event types.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		rc := http.NewResponseController(w)

		// Flushing the headers up front doubles as a capability probe:
		// a writer that cannot stream fails here, before any body bytes
		w.WriteHeader(http.StatusOK)
		if err := rc.Flush(); err != nil {
			slog.Error(LogMsgFlushError, "error", err)
			return
		}

		filter := Filter{AthleteID: r.URL.Query().Get("athlete")}
		if raw := r.URL.Query().Get("types"); raw != "" {
			filter.Types = strings.Split(raw, ",")
		}

		client := hub.Register(filter)
		slog.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"athlete_id", filter.AthleteID,
			"types", filter.Types,
			"total_clients", hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected,
				"client_id", client.ID,
				"total_clients", hub.ClientCount())
		}()

		// Reconnect hint, then a greeting echoing the connection details
		greeting, err := FormatMessage(Event{
			ID:        client.ID,
			Type:      "connected",
			Timestamp: time.Now().Unix(),
			Payload: map[string]interface{}{
				"client_id":  client.ID,
				"athlete_id": filter.AthleteID,
				"types":      filter.Types,
			},
		})
		if err != nil {
			slog.Error(LogMsgWriteError, "error", err)
			return
		}
		hint := fmt.Sprintf("retry: %d\n\n", ReconnectDelay.Milliseconds())
		if err := writeFrame(w, rc, append([]byte(hint), greeting...)); err != nil {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return

			case evt, ok := <-client.EventChannel:
				if !ok {
					// Hub stopped
					return
				}
				frame, err := FormatMessage(evt)
				if err != nil {
					slog.Error(LogMsgWriteError, "error", err, "event_type", evt.Type)
					continue
				}
				if err := writeFrame(w, rc, frame); err != nil {
					slog.Warn(LogMsgWriteError, "error", err, "client_id", client.ID)
					return
				}

			case <-ticker.C:
				// Comment frames hold idle connections open; EventSource
				// ignores them
				if err := writeFrame(w, rc, []byte(": keepalive\n\n")); err != nil {
					return
				}
			}
		}
	}
}

// writeFrame sends one frame under a write deadline so a wedged
// connection cannot park the handler goroutine forever.
func writeFrame(w http.ResponseWriter, rc *http.ResponseController, frame []byte) error {
	err := rc.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return err
	}
	return rc.Flush()
}
