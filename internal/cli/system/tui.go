package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/codelit/internal/cli"
	"github.com/julianstephens/codelit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Backup on startup, after a successful load
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.App, ctx.Controller), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
