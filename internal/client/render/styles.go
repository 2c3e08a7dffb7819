package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/walletdash/walletdash/internal/client/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)

	depositStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	transferStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	unknownStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // grey
)

func typeBadge(t models.TxType) string {
	label := TypeLabel(t)
	switch t {
	case models.TxTypeDeposit:
		return depositStyle.Render(label)
	case models.TxTypeTransfer:
		return transferStyle.Render(label)
	default:
		return unknownStyle.Render(label)
	}
}
