package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sentinelbot/groupguard/pkg/logger"
	"github.com/sentinelbot/groupguard/pkg/metrics"
)

// Server hosts the webhook endpoint plus liveness and metrics routes.
type Server struct {
	srv *http.Server
}

func NewServer(port int, handler *Handler) *Server {
	mux := http.NewServeMux()
	mux.Handle("POST /webhook", handler)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Telegram moderation bot is alive!"))
	})

	return &Server{
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
			// Webhook bodies are small; slow readers are not welcome.
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// ListenAndServe blocks until the server stops. Returns nil on graceful
// shutdown.
func (s *Server) ListenAndServe() error {
	logger.InfoCF("server", "Listening", map[string]interface{}{"addr": s.srv.Addr})
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
