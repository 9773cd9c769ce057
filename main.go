package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peer-bidding/internal/config"
	"peer-bidding/internal/eventbus"
	"peer-bidding/internal/overlay"
	"peer-bidding/internal/server"
	"peer-bidding/internal/session"
	"peer-bidding/utils"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a TOML config file")
	autoCreate := pflag.Bool("create-room", false, "join the default room on startup")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	utils.SetLevel(cfg.LogLevel)

	identity := cfg.Identity
	if identity == "" {
		identity = utils.GeneratePeerID()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, identity, *autoCreate); err != nil {
		utils.Error("peer stopped with error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, identity string, autoCreate bool) error {
	swarm := overlay.NewSwarm(overlay.SwarmConfig{
		LocalID:          identity,
		Bootstrap:        cfg.Peers,
		HandshakeTimeout: cfg.HandshakeTimeout,
	})

	bus := eventbus.New()
	history := eventbus.NewHistory(bus, cfg.HistorySize)
	sess := session.New(swarm, bus, cfg.RoomSeed)

	router := server.SetupRouter(sess, history, bus, swarm)
	srv := &http.Server{
		Addr:              getPort(cfg.Listen),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	// open event streams end with the peer
	srv.BaseContext = func(net.Listener) context.Context { return gctx }

	g.Go(func() error {
		return sess.Run(gctx)
	})

	g.Go(func() error {
		utils.Info("starting peer", map[string]any{"identity": identity, "listen": srv.Addr, "bootstrap": cfg.Peers})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if autoCreate {
		g.Go(func() error {
			room, err := sess.CreateRoom(gctx)
			if err != nil {
				// the peer keeps serving; a room can still be joined over HTTP
				utils.Warn("could not join default room", map[string]any{"error": err.Error()})
				return nil
			}
			utils.Info("joined default room", map[string]any{"topic": room.Topic, "role": room.Role})
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			utils.Warn("http shutdown failed", map[string]any{"error": err.Error()})
		}
		if err := sess.Close(); err != nil {
			utils.Warn("overlay close failed", map[string]any{"error": err.Error()})
		}
		return nil
	})

	return g.Wait()
}

// getPort returns the listen address, with PORT from env taking precedence
func getPort(listen string) string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	if listen == "" {
		return ":8080"
	}
	return listen
}
