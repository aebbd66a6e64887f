package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"quotepanel/internal/app/di"
	"quotepanel/internal/feature/quotes/transport/tui"
)

// tuiCmd runs the panel in the terminal
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show the quote panel in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, closeLog, err := logWriter()
		if err != nil {
			return err
		}
		defer closeLog()
		setupLogging(w)

		app, err := di.NewApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		m := tui.New(app.Panel, app.Input)
		app.Panel.Start()

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		_, err = p.Run()
		return err
	},
}
