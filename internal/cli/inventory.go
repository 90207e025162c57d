package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "List your won items",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		app, err := newApp()
		if err != nil {
			fail(err, 1)
		}
		if exitCode := runInventory(ctx, app, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var sellCmd = &cobra.Command{
	Use:   "sell <entry-id>",
	Short: "Sell one unit of an inventory entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		entryID, err := strconv.Atoi(args[0])
		if err != nil {
			fail(fmt.Errorf("invalid entry id %q", args[0]), 1)
		}

		app, err := newApp()
		if err != nil {
			fail(err, 1)
		}
		if exitCode := runSell(ctx, app, entryID, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(sellCmd)
}

// runInventory prints the inventory listing.
func runInventory(ctx context.Context, app *app, w io.Writer) int {
	entries, err := app.inventory.List(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "Inventory is empty. Open a case!")
		return 0
	}

	fmt.Fprintln(w, titleStyle.Render("Inventory"))
	for _, e := range entries {
		fmt.Fprintf(w, "  #%d %s x%d %s\n",
			e.ID, renderItem(e.Item), e.Quantity,
			mutedStyle.Render(fmt.Sprintf("(sells for %d)", e.Item.Price)))
	}
	return 0
}

// runSell sells one unit and prints the confirmed balance.
func runSell(ctx context.Context, app *app, entryID int, w io.Writer) int {
	update, err := app.inventory.Sell(ctx, entryID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(update, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s New balance: %d coins.\n", update.Message, update.NewBalance)
	return 0
}
