package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kabachok/dropclient/internal/domain"
)

var depositCmd = &cobra.Command{
	Use:   "deposit <amount>",
	Short: "Add coins to your balance",
	Long:  fmt.Sprintf("Add coins to your balance. Amounts must be between %d and %d.", domain.DepositMin, domain.DepositMax),
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		amount, err := strconv.Atoi(args[0])
		if err != nil {
			fail(fmt.Errorf("invalid amount %q", args[0]), 1)
		}

		app, err := newApp()
		if err != nil {
			fail(err, 1)
		}
		if exitCode := runDeposit(ctx, app, amount, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(depositCmd)
}

// runDeposit credits coins and prints the confirmed balance.
func runDeposit(ctx context.Context, app *app, amount int, w io.Writer) int {
	update, err := app.profile.Deposit(ctx, amount)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(update, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Deposited %d coins. New balance: %d coins.\n", amount, update.NewBalance)
	return 0
}
