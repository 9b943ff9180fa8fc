package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/rocketscienceinc/tictactoe-p2p/internal/entity"
)

var ErrInputClosed = errors.New("input closed")

// Console is the terminal collaborator: it prompts on out and reads lines from in.
type Console struct {
	in  *bufio.Scanner
	out io.Writer

	first  *color.Color
	second *color.Color
	alert  *color.Color
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:     bufio.NewScanner(in),
		out:    out,
		first:  color.New(color.FgCyan, color.Bold),
		second: color.New(color.FgMagenta, color.Bold),
		alert:  color.New(color.FgRed),
	}
}

func (that *Console) readLine() (string, error) {
	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrInputClosed, err)
		}

		return "", ErrInputClosed
	}

	return strings.TrimSpace(that.in.Text()), nil
}

// RequestLocalMove - rereads until the line is an integer in [1,9].
func (that *Console) RequestLocalMove(role entity.Role) (int, error) {
	fmt.Fprintf(that.out, "%s's move: ", role.Label())

	for {
		line, err := that.readLine()
		if err != nil {
			return 0, err
		}

		move, err := strconv.Atoi(line)
		if err == nil && move >= entity.MinMove && move <= entity.MaxMove {
			return move, nil
		}

		fmt.Fprint(that.out, "Invalid move. Try again: ")
	}
}

func (that *Console) RequestRematchDecision() (bool, error) {
	fmt.Fprint(that.out, "Do you want to play again? (y/n): ")

	for {
		line, err := that.readLine()
		if err != nil {
			return false, err
		}

		switch line {
		case "y", "Y":
			return true, nil
		case "n", "N":
			return false, nil
		}

		fmt.Fprint(that.out, "Invalid input. Input 'y' or 'n': ")
	}
}

func (that *Console) Instructions(role entity.Role) {
	fmt.Fprintln(that.out, "Let's play Tic-Tac-Toe!")
	fmt.Fprintf(that.out, "Input a number between 1 and 9 to place %s on the board.\n", that.paint(role.Mark()))
	fmt.Fprintln(that.out, "The numbers on the following board show the position associated with them.")
	fmt.Fprintln(that.out, "\t[1,2,3]")
	fmt.Fprintln(that.out, "\t[4,5,6]")
	fmt.Fprintln(that.out, "\t[7,8,9]")
	fmt.Fprintln(that.out)
}

func (that *Console) RenderBoard(board *entity.Board) {
	for _, row := range board.Rows() {
		cells := make([]string, 0, len(row))
		for _, mark := range row {
			cells = append(cells, that.paint(mark))
		}

		fmt.Fprintf(that.out, "\t[%s]\n", strings.Join(cells, ","))
	}

	fmt.Fprintln(that.out)
}

func (that *Console) AnnounceMove(role entity.Role, move int) {
	fmt.Fprintf(that.out, "%s's move: %d\n", role.Label(), move)
}

func (that *Console) RejectMove(_ int, _ error) {
	fmt.Fprintln(that.out, that.alert.Sprint("Invalid move. Try again."))
}

func (that *Console) AnnounceOutcome(outcome entity.Outcome) {
	if outcome.IsTie() {
		fmt.Fprintln(that.out, "game tied!")
		return
	}

	fmt.Fprintf(that.out, "%s won!\n", outcome.Winner.Label())
}

func (that *Console) RenderStats(stats entity.Stats) {
	fmt.Fprintln(that.out)
	fmt.Fprintf(that.out, "Player's user name: %s\n", stats.OwnName)
	fmt.Fprintf(that.out, "Previous player: %s\n", stats.LastMover.Label())
	fmt.Fprintf(that.out, "Number of games: %d\n", stats.Games)
	fmt.Fprintf(that.out, "Number of wins: %d\n", stats.Wins)
	fmt.Fprintf(that.out, "Number of ties: %d\n", stats.Ties)
	fmt.Fprintf(that.out, "Number of losses: %d\n", stats.Losses)
}

func (that *Console) ReportError(err error) {
	fmt.Fprintln(that.out, that.alert.Sprintf("session ended: %v", err))
}

func (that *Console) paint(mark entity.Mark) string {
	switch mark {
	case entity.MarkFirst:
		return that.first.Sprint(mark.String())
	case entity.MarkSecond:
		return that.second.Sprint(mark.String())
	default:
		return mark.String()
	}
}
