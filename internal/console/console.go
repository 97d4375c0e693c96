// Package console plays a single game in the terminal, reading one command per line.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/pebbles-backend/internal/entity"
	"github.com/rocketscienceinc/pebbles-backend/internal/pebbles"
	"github.com/rocketscienceinc/pebbles-backend/internal/random"
)

const (
	commandGiveUp  = "giveup"
	commandRestart = "restart"
	commandState   = "state"
	commandQuit    = "quit"
	commandHelp    = "help"
)

type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
	styles  *Styles
	src     random.Source

	game *entity.Game
}

func New(in io.Reader, out io.Writer, src random.Source) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
		styles:  NewStyles(out),
		src:     src,
	}
}

// Run - starts a game with config and plays it until quit, end of input or ctx is done.
func Run(ctx context.Context, in io.Reader, out io.Writer, config entity.GameConfig, src random.Source) error {
	return New(in, out, src).Play(ctx, config)
}

func (that *Console) Play(ctx context.Context, config entity.GameConfig) error {
	game, events, err := pebbles.Initialize(config, that.src)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.game = game

	that.printf("%s\n", that.styles.Header.Render("Pebbles"))
	that.printHelp()
	that.printFirstTurn()
	that.printEvents(events)
	that.printState()

	for {
		if err = ctx.Err(); err != nil {
			return nil
		}

		that.printf("%s ", that.styles.Hint.Render(">"))

		if !that.scanner.Scan() {
			if err = that.scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			return nil
		}

		if quit := that.handleLine(strings.TrimSpace(that.scanner.Text())); quit {
			return nil
		}
	}
}

// handleLine - executes one command; reports whether the session should end.
func (that *Console) handleLine(line string) bool {
	var action entity.Action

	switch strings.ToLower(line) {
	case "":
		return false
	case commandQuit, "q", "exit":
		that.printf("Bye!\n")
		return true
	case commandHelp, "?":
		that.printHelp()
		return false
	case commandState:
		that.printState()
		return false
	case commandGiveUp:
		action = entity.GiveUpAction()
	case commandRestart:
		action = entity.RestartAction(nil)
	default:
		amount, err := strconv.Atoi(line)
		if err != nil {
			that.printError(fmt.Errorf("unknown command %q", line))
			return false
		}

		action = entity.TurnAction(amount)
	}

	game, events, err := pebbles.ApplyAction(that.game, action, that.src)
	if err != nil {
		that.printError(err)
		return false
	}

	that.game = game

	if action.Kind == entity.ActionRestart {
		that.printf("%s\n", that.styles.Header.Render("New game"))
		that.printFirstTurn()
	}

	that.printEvents(events)
	that.printState()

	return false
}

func (that *Console) printFirstTurn() {
	if that.game.FirstTurn == entity.PlayerUser {
		that.printf("You move first.\n")
		return
	}

	that.printf("Opponent moves first.\n")
}

func (that *Console) printEvents(events []entity.Event) {
	for _, event := range events {
		switch event.Kind {
		case entity.EventCounterTurn:
			that.printf("%s\n", that.styles.Opponent.Render(
				fmt.Sprintf("Opponent takes %d %s.", event.Pebbles, pluralize(event.Pebbles))))
		case entity.EventWon:
			if event.Player == entity.PlayerUser {
				that.printf("%s\n", that.styles.Winner.Render("You won!"))
			} else {
				that.printf("%s\n", that.styles.Winner.Render("Opponent won."))
			}
		}
	}
}

func (that *Console) printState() {
	view, err := pebbles.Query(that.game)
	if err != nil {
		that.printError(err)
		return
	}

	if view.Winner != entity.PlayerNone {
		that.printf("%s\n", that.styles.Hint.Render("Game over. Type restart or quit."))
		return
	}

	that.printf("%s %s\n",
		that.styles.Pile.Render(fmt.Sprintf("%d %s left", view.PebblesRemaining, pluralize(view.PebblesRemaining))),
		that.styles.Hint.Render(fmt.Sprintf("(%s, take 1-%d)", view.Difficulty, that.game.Config.MaxPerTurn)))
}

func (that *Console) printHelp() {
	that.printf("%s\n", that.styles.Hint.Render(
		"Enter a number to take pebbles, or: giveup, restart, state, quit. Whoever takes the last pebble wins."))
}

func (that *Console) printError(err error) {
	that.printf("%s\n", that.styles.Error.Render("error: "+err.Error()))
}

func (that *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}

func pluralize(n int) string {
	if n == 1 {
		return "pebble"
	}

	return "pebbles"
}
