package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func echoCmd() *cobra.Command {
	var (
		addr string
		path string
	)

	cmd := &cobra.Command{
		Use:   "echo",
		Short: "Run a loopback echo server",
		Long: `Run a WebSocket server that echoes every text and binary message back
to its sender. Useful as the peer for "pollws connect" and for client tests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEcho(addr, path)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&path, "path", "/", "WebSocket endpoint path")

	return cmd
}

func runEcho(addr, path string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		ws, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			logger.Error("upgrade failed", "remote", req.RemoteAddr, "error", err)
			return
		}
		defer ws.Close()

		logger.Info("client connected", "remote", ws.RemoteAddr())
		for {
			mt, data, err := ws.ReadMessage()
			if err != nil {
				logger.Info("client disconnected", "remote", ws.RemoteAddr(), "error", err)
				return
			}
			if err := ws.WriteMessage(mt, data); err != nil {
				logger.Error("echo write failed", "remote", ws.RemoteAddr(), "error", err)
				return
			}
		}
	})

	srv := &http.Server{Addr: addr, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("echo server listening", "addr", addr, "path", path)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sig:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
