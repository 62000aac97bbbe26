package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"checkers/internal/checkers"
	"checkers/internal/config"
	"checkers/internal/engine"
)

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "play in the terminal; enter \"row col\" to click a square, q to quit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "ai",
				Usage: "side played by the engine: light, dark or none",
				Value: "dark",
			},
			&cli.StringFlag{
				Name:  "position",
				Usage: "start from an encoded position instead of the initial one",
			},
		},
		Action: runPlay,
	}
}

func runPlay(c *cli.Context) error {
	cfg, err := config.FromCLI(c)
	if err != nil {
		return err
	}
	ai := checkers.NoSide
	if s := c.String("ai"); s != "none" && s != "" {
		if ai, err = config.ParseSide(s); err != nil {
			return err
		}
	}

	var g *checkers.Game
	if enc := c.String("position"); enc != "" {
		pos, err := checkers.DecodePosition(enc, cfg.Rules())
		if err != nil {
			return err
		}
		g = checkers.NewGameFromPosition(pos)
	} else if g, err = checkers.NewGame(cfg.Rules()); err != nil {
		return err
	}

	p := &terminal{
		game:   g,
		ai:     ai,
		engine: engine.NewEngine(),
		search: engine.SearchConfig{MaxDepth: cfg.SearchDepth, TimeLimit: cfg.SearchTimeout},
		out:    os.Stdout,
	}
	return p.run(c.Context, os.Stdin)
}

type terminal struct {
	game   *checkers.Game
	ai     checkers.Side
	engine *engine.Engine
	search engine.SearchConfig
	out    io.Writer
}

func (t *terminal) run(ctx context.Context, in io.Reader) error {
	g := t.game
	scanner := bufio.NewScanner(in)
	t.printBoard()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if o := g.Winner(); o != checkers.Ongoing {
			fmt.Fprintf(t.out, "game over: %s (light %d, dark %d)\n", o, g.Score(checkers.Light), g.Score(checkers.Dark))
			return nil
		}
		if !g.Position().HasMoves() {
			fmt.Fprintf(t.out, "%s cannot move, %s wins\n", g.Turn(), g.Turn().Opponent())
			return nil
		}

		if g.Turn() == t.ai {
			if err := t.engineMove(ctx); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintf(t.out, "%s> ", g.Turn())
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "q" || line == "quit" {
			return nil
		}
		var row, col int
		if _, err := fmt.Sscan(line, &row, &col); err != nil {
			fmt.Fprintln(t.out, "enter a square as: row col")
			continue
		}

		before := len(g.History())
		if !g.SelectOrMove(row, col) {
			fmt.Fprintln(t.out, "invalid")
			continue
		}
		if len(g.History()) > before {
			t.printBoard()
			continue
		}
		dests := make([]string, 0, len(g.LegalDestinations()))
		for _, sq := range g.LegalDestinations() {
			dests = append(dests, sq.String())
		}
		fmt.Fprintf(t.out, "selected (%d,%d), destinations: %s\n", row, col, strings.Join(dests, " "))
	}
}

func (t *terminal) engineMove(ctx context.Context) error {
	res := t.engine.Search(ctx, t.game.Position(), t.search)
	if !res.HasMove {
		return fmt.Errorf("engine found no move for %s", t.game.Turn())
	}
	if !t.game.Play(res.BestMove) {
		return fmt.Errorf("engine move %v-%v rejected", res.BestMove.From, res.BestMove.To)
	}
	log.Debug().
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Int("score", res.Score).
		Dur("took", res.TimeUsed).
		Msg("engine move")
	fmt.Fprintf(t.out, "engine: %v -> %v", res.BestMove.From, res.BestMove.To)
	if n := len(res.BestMove.Captured); n > 0 {
		fmt.Fprintf(t.out, " (captures %d)", n)
	}
	fmt.Fprintln(t.out)
	t.printBoard()
	return nil
}

func (t *terminal) printBoard() {
	fmt.Fprintln(t.out, t.game.Board().String())
}
