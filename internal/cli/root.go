package cli

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/amorozov/habitlife/internal/game"
	"github.com/amorozov/habitlife/internal/storage"
	"github.com/amorozov/habitlife/internal/utils"
)

// Context carries the wired dependencies into kong command Run methods.
type Context struct {
	Store  storage.Provider
	Engine *game.Engine
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

// signedStyle renders an XP delta green for gains, red for losses.
func signedStyle(n int) lipgloss.Style {
	if n < 0 {
		return negativeStyle
	}
	return positiveStyle
}

// parseDateFlag parses an optional YYYY-MM-DD flag, defaulting to today.
func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return utils.StartOfDay(time.Now()), nil
	}
	return utils.ParseDate(s)
}
