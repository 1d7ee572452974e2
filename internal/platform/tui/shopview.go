package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-zigzag/internal/shop"
)

// shopView lists the trail styles with the cursor on one of them.
type shopView struct {
	items  []shop.Item
	coins  int
	cursor int
}

func (v *shopView) refresh(s *shop.Shop) error {
	items, err := s.Items()
	if err != nil {
		return err
	}
	coins, err := s.Coins()
	if err != nil {
		return err
	}
	v.items = items
	v.coins = coins
	if v.cursor >= len(v.items) {
		v.cursor = max(0, len(v.items)-1)
	}
	return nil
}

func (v *shopView) move(delta int) {
	if len(v.items) == 0 {
		return
	}
	v.cursor = (v.cursor + delta + len(v.items)) % len(v.items)
}

func (v shopView) selected() (shop.Item, bool) {
	if v.cursor < 0 || v.cursor >= len(v.items) {
		return shop.Item{}, false
	}
	return v.items[v.cursor], true
}

// View renders the shop into a width x height block.
func (v shopView) View(width, height int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	coinStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(string(colorCoin)))

	var b strings.Builder
	b.WriteString(titleStyle.Render("TRAIL SHOP"))
	b.WriteString("   ")
	b.WriteString(coinStyle.Render(fmt.Sprintf("$%d", v.coins)))
	b.WriteString("\n\n")

	for i, it := range v.items {
		cursor := "  "
		nameStyle := lipgloss.NewStyle()
		if i == v.cursor {
			cursor = "> "
			nameStyle = nameStyle.Bold(true).Foreground(lipgloss.Color("229"))
		}

		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Style.Colors.Glow)).Render("●••")

		var status string
		switch {
		case it.Selected:
			status = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("equipped")
		case it.Unlocked:
			status = dim.Render("owned")
		default:
			status = coinStyle.Render(fmt.Sprintf("$%d", it.Style.Cost))
		}

		fmt.Fprintf(&b, "%s%s %s  %s\n", cursor, swatch, nameStyle.Render(fmt.Sprintf("%-12s", it.Style.Name)), status)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Render(strings.TrimRight(b.String(), "\n"))

	return lipgloss.Place(width, max(1, height), lipgloss.Center, lipgloss.Center, box)
}
