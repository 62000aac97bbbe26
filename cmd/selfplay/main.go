package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"checkers/internal/config"
	"checkers/internal/engine"
	"checkers/internal/logging"
	"checkers/internal/mcts"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("load .env")
	}

	app := &cli.App{
		Name:  "selfplay",
		Usage: "play the engine against itself at two search depths",
		Flags: append(config.Flags(),
			&cli.IntFlag{Name: "games", Value: 10, Usage: "number of games to play"},
			&cli.IntFlag{Name: "depth-a", Value: 2, Usage: "search depth of player A"},
			&cli.IntFlag{Name: "depth-b", Value: 4, Usage: "search depth of player B"},
			&cli.BoolFlag{Name: "mcts-b", Usage: "player B uses MCTS instead of alpha-beta"},
			&cli.IntFlag{Name: "mcts-sims", Value: 4000, Usage: "MCTS simulations per move"},
			&cli.IntFlag{Name: "max-plies", Value: 200, Usage: "plies before a game is called a draw"},
		),
		Before: func(c *cli.Context) error {
			return logging.Configure(c.String("log-level"), c.Bool("log-pretty"))
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("selfplay")
	}
}

func run(c *cli.Context) error {
	cfg, err := config.FromCLI(c)
	if err != nil {
		return err
	}

	e := engine.NewEngine()
	a := alphaBetaPlayer(
		fmt.Sprintf("A (depth %d)", c.Int("depth-a")), e,
		engine.SearchConfig{MaxDepth: c.Int("depth-a"), TimeLimit: cfg.SearchTimeout},
	)
	b := alphaBetaPlayer(
		fmt.Sprintf("B (depth %d)", c.Int("depth-b")), e,
		engine.SearchConfig{MaxDepth: c.Int("depth-b"), TimeLimit: cfg.SearchTimeout},
	)
	if c.Bool("mcts-b") {
		params := mcts.DefaultParams()
		params.Simulations = c.Int("mcts-sims")
		params.MaxTime = cfg.SearchTimeout
		b = mctsPlayer(fmt.Sprintf("B (mcts %d)", params.Simulations), params)
	}

	var tally matchTally
	for i := 0; i < c.Int("games"); i++ {
		light, dark := a, b
		if i%2 == 1 {
			light, dark = b, a
		}
		res, err := playGame(c.Context, cfg.Rules(), light, dark, c.Int("max-plies"))
		if err != nil {
			return err
		}
		tally.add(res, light, dark)
		log.Info().
			Int("game", i+1).
			Str("light", light.name).
			Str("dark", dark.name).
			Stringer("outcome", res.outcome).
			Int("plies", res.plies).
			Msg("game finished")
		if c.Context.Err() != nil {
			break
		}
	}

	fmt.Printf("%s: %d\n%s: %d\nDraws: %d\n", a.name, tally.wins[a.name], b.name, tally.wins[b.name], tally.draws)
	return nil
}
