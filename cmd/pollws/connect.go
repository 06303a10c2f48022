package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pollws/pollws"
)

func connectCmd() *cobra.Command {
	var (
		interval time.Duration
		binary   bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "connect <url>",
		Short: "Dial a WebSocket server and bridge stdin/stdout",
		Long: `Dial the given ws:// or wss:// URL. Received messages are printed to
stdout; each line read from stdin is sent as a message. The connection is
polled on a fixed interval, the way a game loop would.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnect(args[0], interval, binary, verbose)
		},
	}

	cmd.Flags().DurationVar(&interval, "poll-interval", 50*time.Millisecond, "How often to poll for events")
	cmd.Flags().BoolVar(&binary, "binary", false, "Send stdin lines as binary messages")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log connection internals to stderr")

	return cmd
}

func runConnect(url string, interval time.Duration, binary, verbose bool) error {
	var opts []pollws.Option
	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, pollws.WithLogger(logger))
	}

	conn, err := pollws.Dial(url, opts...)
	if err != nil {
		return err
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			fmt.Fprintln(os.Stderr, "closing...")
			conn.Close()

		case line, ok := <-lines:
			if !ok {
				// stdin finished; close and keep polling for the terminal event
				conn.Close()
				lines = nil
				continue
			}
			msg := pollws.Text(line)
			if binary {
				msg = pollws.Binary([]byte(line))
			}
			if err := conn.Send(msg); err != nil {
				fmt.Fprintf(os.Stderr, "send: %v\n", err)
			}

		case <-ticker.C:
			for _, ev := range conn.Poll() {
				switch ev.Type {
				case pollws.EventConnected:
					fmt.Fprintf(os.Stderr, "connected to %s\n", url)

				case pollws.EventReceived:
					fmt.Println(ev.Message.String())

				case pollws.EventClosed:
					if ev.Clean {
						fmt.Fprintf(os.Stderr, "closed (%d %s)\n", ev.Code, ev.Reason)
						return nil
					}
					return fmt.Errorf("connection dropped (code %d)", ev.Code)

				case pollws.EventFailed:
					return fmt.Errorf("connection failed: %w", ev.Err)
				}
			}
		}
	}
}
