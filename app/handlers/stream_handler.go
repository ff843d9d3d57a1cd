package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/paoluke/tienda/app/models"
)

const streamKeepAlive = 25 * time.Second

// ConfigStream pushes the store configuration to the browser as server-sent
// events: the current row first, then every replacement until the client
// goes away.
func (h *StoreHandler) ConfigStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming no soportado", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	updates := h.config.Watch(ctx)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if cfg, err := h.config.Current(ctx); err == nil {
		if err := writeConfigEvent(w, cfg); err != nil {
			return
		}
	}
	flusher.Flush()

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case cfg, open := <-updates:
			if !open {
				return
			}
			if err := writeConfigEvent(w, cfg); err != nil {
				log.Printf("ConfigStream: client write failed: %v", err)
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeConfigEvent(w http.ResponseWriter, cfg models.StoreConfig) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config event: %w", err)
	}
	_, err = fmt.Fprintf(w, "event: config\ndata: %s\n\n", payload)
	return err
}

func (h *StoreHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
