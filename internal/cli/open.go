package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kabachok/dropclient/internal/opening"
)

// revealWindow is how many sequence slots are visible around the marker while
// the strip scrolls.
const revealWindow = 5

var openCmd = &cobra.Command{
	Use:   "open <case-id>",
	Short: "Open a case",
	Long:  `Buy and open a case. The reward is decided by the server; the reveal is just the fun part.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		caseID, err := strconv.Atoi(args[0])
		if err != nil {
			fail(fmt.Errorf("invalid case id %q", args[0]), 1)
		}

		app, err := newApp()
		if err != nil {
			fail(err, 1)
		}
		if exitCode := runOpen(ctx, app, caseID, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}

// runOpen drives one open: a spinner while the orchestrator runs its spin
// phase, then the reveal strip and the result panel.
func runOpen(ctx context.Context, app *app, caseID int, w io.Writer) int {
	type openReply struct {
		outcome *opening.Outcome
		err     error
	}
	replies := make(chan openReply, 1)
	go func() {
		outcome, err := app.opening.OpenCase(ctx, caseID)
		replies <- openReply{outcome, err}
	}()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	var reply openReply
	frames := []string{"|", "/", "-", "\\"}
	frame := 0
spin:
	for {
		select {
		case reply = <-replies:
			break spin
		case <-ticker.C:
			if !IsJSONOutput() {
				fmt.Fprintf(w, "\r%s opening...", frames[frame%len(frames)])
				frame++
			}
		}
	}
	if !IsJSONOutput() && frame > 0 {
		fmt.Fprint(w, "\r            \r")
	}

	if reply.err != nil {
		fmt.Fprintf(w, "Error: %v\n", reply.err)
		return 2
	}
	outcome := reply.outcome

	if !outcome.Result.Success {
		fmt.Fprintf(w, "Open refused: %s\n", outcome.Result.Message)
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(outcome.Result, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, renderRevealStrip(outcome))
	fmt.Fprintln(w, renderResultPanel(*outcome.Result.Reward, outcome.Result.NewBalance))

	// The panel stays up until it times out or the user dismisses it.
	fmt.Fprintln(w, mutedStyle.Render("(enter to dismiss)"))
	dismiss := make(chan struct{})
	go func() {
		var buf [1]byte
		_, _ = os.Stdin.Read(buf[:])
		close(dismiss)
	}()
	app.opening.AwaitDismiss(ctx, dismiss)
	return 0
}

// renderRevealStrip shows the slice of the sequence around the winning slot
// with a marker under the reward.
func renderRevealStrip(outcome *opening.Outcome) string {
	lo := outcome.RevealIndex - revealWindow
	if lo < 0 {
		lo = 0
	}
	hi := outcome.RevealIndex + revealWindow + 1
	if hi > len(outcome.Sequence) {
		hi = len(outcome.Sequence)
	}

	var b strings.Builder
	for i := lo; i < hi; i++ {
		item := outcome.Sequence[i]
		name := rarityStyle(item.Rarity).Render(item.Name)
		if i == outcome.RevealIndex {
			b.WriteString("▶ " + name + " ◀")
		} else {
			b.WriteString(mutedStyle.Render(item.Name))
		}
		if i < hi-1 {
			b.WriteString("  ")
		}
	}
	return b.String()
}
