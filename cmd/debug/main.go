package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"checkers/internal/checkers"
)

func main() {
	app := &cli.App{
		Name:  "debug",
		Usage: "print a position, its board and every piece's move map",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "position", Usage: "encoded position (default: initial position)"},
		},
		Action: dump,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dump(c *cli.Context) error {
	var (
		pos *checkers.Position
		err error
	)
	if enc := c.String("position"); enc != "" {
		pos, err = checkers.DecodePosition(enc, checkers.DefaultConfig())
	} else {
		pos, err = checkers.NewInitialPosition(checkers.DefaultConfig())
	}
	if err != nil {
		return err
	}

	fmt.Println("Position:", pos.Encode())
	fmt.Print(pos.Board.String())
	fmt.Println("Outcome:", pos.Outcome())

	cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
	for _, side := range []checkers.Side{checkers.Light, checkers.Dark} {
		for _, p := range pos.Board.Pieces(side) {
			moves := pos.Board.ValidMoves(p.ID)
			if len(moves) == 0 {
				continue
			}
			fmt.Printf("%s piece %d at %v:\n", side, p.ID, p.Square())
			cfg.Dump(moves)
		}
	}
	fmt.Println("Moves for side to move:", len(pos.GenerateMoves()))
	return nil
}
