package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-drift/bind/pkg/bind"
)

// debugServer serves health, listener state and metrics for a session.
type debugServer struct {
	server   *http.Server
	listener net.Listener
	session  *session
	logger   *slog.Logger
}

// listenerSnapshot is the /listeners response body.
type listenerSnapshot struct {
	Progress  int                 `json:"progress"`
	Active    int                 `json:"active"`
	Listeners []bind.ListenerInfo `json:"listeners"`
}

// startDebugServer listens on addr and serves in the background. The
// listener is bound before returning so port conflicts fail fast.
func startDebugServer(addr string, s *session, logger *slog.Logger) (*debugServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("debug server listen: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	if err := bind.RegisterMetrics(reg); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	d := &debugServer{listener: listener, session: s, logger: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", d.handleHealth)
	mux.HandleFunc("/listeners", d.handleListeners)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	d.server = &http.Server{Handler: mux}

	go func() {
		if err := d.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("debug server stopped", slog.Any("err", err))
		}
	}()
	logger.Info("debug server listening", slog.String("addr", listener.Addr().String()))
	return d, nil
}

// Addr returns the address the server is bound to.
func (d *debugServer) Addr() net.Addr {
	return d.listener.Addr()
}

// stop gracefully shuts down the server.
func (d *debugServer) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	d.server.Shutdown(ctx)
}

func (d *debugServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleListeners reads listener state on the session's UI thread.
func (d *debugServer) handleListeners(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var snap listenerSnapshot
	ok := d.session.looper.Sync(func() {
		snap.Progress = d.session.view.Progress()
		snap.Listeners = bind.Listeners()
		for _, l := range snap.Listeners {
			snap.Active += l.Subscribers
		}
	})
	if !ok {
		http.Error(w, "session closed", http.StatusServiceUnavailable)
		return
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
