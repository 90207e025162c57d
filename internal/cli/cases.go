package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kabachok/dropclient/internal/domain"
)

var casesCmd = &cobra.Command{
	Use:   "cases [case-id]",
	Short: "Browse the case catalog",
	Long:  `List all active cases, or show one case with its full reward pool.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		app, err := newApp()
		if err != nil {
			fail(err, 1)
		}

		var exitCode int
		if len(args) == 1 {
			caseID, convErr := strconv.Atoi(args[0])
			if convErr != nil {
				fail(fmt.Errorf("invalid case id %q", args[0]), 1)
			}
			exitCode = runCaseDetail(ctx, app, caseID, os.Stdout)
		} else {
			exitCode = runCaseList(ctx, app, os.Stdout)
		}
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(casesCmd)
}

// runCaseList prints the active catalog.
func runCaseList(ctx context.Context, app *app, w io.Writer) int {
	cases, err := app.catalog.Cases(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(cases, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, titleStyle.Render("Cases"))
	for _, cs := range cases {
		fmt.Fprintf(w, "  #%d %s — %d coins (%d rewards)\n", cs.ID, cs.Name, cs.Price, len(cs.Vegetables))
	}
	return 0
}

// runCaseDetail prints one case with its reward pool.
func runCaseDetail(ctx context.Context, app *app, caseID int, w io.Writer) int {
	cs, err := app.catalog.Case(ctx, caseID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(cs, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("#%d %s — %d coins", cs.ID, cs.Name, cs.Price)))
	if cs.Description != "" {
		fmt.Fprintln(w, mutedStyle.Render(cs.Description))
	}
	fmt.Fprintln(w)
	for _, item := range sortByRarity(cs.Vegetables) {
		fmt.Fprintf(w, "  %s\n", renderItem(item))
	}
	return 0
}

// rarityOrder ranks tiers for display, rarest first.
var rarityOrder = map[domain.Rarity]int{
	domain.RarityLegendary: 0,
	domain.RarityEpic:      1,
	domain.RarityRare:      2,
	domain.RarityUncommon:  3,
	domain.RarityCommon:    4,
}

// sortByRarity returns the pool ordered rarest first, stable within a tier.
func sortByRarity(pool []domain.RewardItem) []domain.RewardItem {
	sorted := make([]domain.RewardItem, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rarityOrder[sorted[i].Rarity] < rarityOrder[sorted[j].Rarity]
	})
	return sorted
}
