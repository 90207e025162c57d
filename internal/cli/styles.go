package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/kabachok/dropclient/internal/domain"
)

var (
	// Rarity palette, common through legendary.
	colorCommon    = lipgloss.Color("#9CA3AF") // Gray
	colorUncommon  = lipgloss.Color("#10B981") // Green
	colorRare      = lipgloss.Color("#3B82F6") // Blue
	colorEpic      = lipgloss.Color("#8B5CF6") // Purple
	colorLegendary = lipgloss.Color("#F59E0B") // Gold

	colorMuted = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)

	rarityStyles = map[domain.Rarity]lipgloss.Style{
		domain.RarityCommon:    lipgloss.NewStyle().Foreground(colorCommon),
		domain.RarityUncommon:  lipgloss.NewStyle().Foreground(colorUncommon),
		domain.RarityRare:      lipgloss.NewStyle().Foreground(colorRare),
		domain.RarityEpic:      lipgloss.NewStyle().Foreground(colorEpic).Bold(true),
		domain.RarityLegendary: lipgloss.NewStyle().Foreground(colorLegendary).Bold(true),
	}
)

// rarityStyle returns the style for a rarity tier, falling back to common.
func rarityStyle(r domain.Rarity) lipgloss.Style {
	if s, ok := rarityStyles[r]; ok {
		return s
	}
	return rarityStyles[domain.RarityCommon]
}

// renderItem renders one reward item as a single styled line.
func renderItem(item domain.RewardItem) string {
	return fmt.Sprintf("%s %s %s",
		item.Emoji,
		rarityStyle(item.Rarity).Render(item.Name),
		mutedStyle.Render("["+item.DisplayRarity()+"]"))
}

// renderResultPanel renders the reward panel shown after a reveal.
func renderResultPanel(reward domain.RewardItem, newBalance *int) string {
	body := titleStyle.Render("You won!") + "\n\n" + renderItem(reward)
	if reward.Price > 0 {
		body += "\n" + mutedStyle.Render(fmt.Sprintf("Sell value: %d coins", reward.Price))
	}
	if newBalance != nil {
		body += "\n" + mutedStyle.Render(fmt.Sprintf("Balance: %d coins", *newBalance))
	}
	return panelStyle.BorderForeground(rarityStyle(reward.Rarity).GetForeground()).Render(body)
}
