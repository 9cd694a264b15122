package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Meter shows the share of the module that passes the search.
type Meter struct {
	bar   progress.Model
	total int
}

// NewMeter creates a meter for the given total.
func NewMeter(total int, width int) Meter {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = width
	return Meter{bar: bar, total: total}
}

// View renders the bar for the provided match count.
func (m Meter) View(shown int) string {
	ratio := 0.0
	if m.total > 0 {
		ratio = math.Min(1.0, float64(shown)/float64(m.total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d", shown, m.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", m.bar.ViewAs(ratio))
}
