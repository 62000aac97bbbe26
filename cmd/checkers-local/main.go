package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"checkers/internal/config"
	"checkers/internal/logging"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("load .env")
	}

	app := &cli.App{
		Name:  "checkers-local",
		Usage: "play checkers in the browser or the terminal",
		Flags: config.Flags(),
		Before: func(c *cli.Context) error {
			return logging.Configure(c.String("log-level"), c.Bool("log-pretty"))
		},
		Commands: []*cli.Command{
			serveCommand(),
			playCommand(),
		},
		Action: runServe,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("checkers-local")
	}
}
