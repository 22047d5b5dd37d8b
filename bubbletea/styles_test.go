package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ragview"
	bt "github.com/fwojciec/ragview/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(ragview.DefaultTheme())

	assert.Equal(t, lipgloss.Color("5"), styles.Title.GetForeground())
	assert.True(t, styles.Title.GetBold())

	assert.Equal(t, lipgloss.Color("4"), styles.Spinner.GetForeground())
	assert.Equal(t, lipgloss.Color("1"), styles.Error.GetForeground())
	assert.Equal(t, lipgloss.Color("2"), styles.Success.GetForeground())

	assert.Equal(t, lipgloss.Color("8"), styles.Muted.GetForeground())
	assert.True(t, styles.Muted.GetFaint())
}

func TestNewStylesNegativeIndexYieldsNoColor(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(ragview.Theme{Error: -1})

	assert.Equal(t, lipgloss.NoColor{}, styles.Error.GetForeground())
}
