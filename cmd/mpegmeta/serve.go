package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/simonhull/mpegmeta/internal/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the probe API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   ":8080",
				Usage:   "listen address",
				Sources: cli.EnvVars("MPEGMETA_ADDR"),
			},
			&cli.StringSliceFlag{
				Name:  "allow-origin",
				Usage: "CORS origin allowed to call the API (repeatable, default any)",
			},
			&cli.Int64Flag{
				Name:  "max-body",
				Value: 1 << 30,
				Usage: "maximum request body size in bytes",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	log := newLogger(cmd)
	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr: cmd.String("addr"),
		Handler: server.New(server.Config{
			AllowOrigins: cmd.StringSlice("allow-origin"),
			MaxBodyBytes: cmd.Int64("max-body"),
			Logger:       log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", srv.Addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
