package cmd

import (
	"log"
	"os"

	"gioui.org/app"
	"github.com/spf13/cobra"

	appui "github.com/OpenTraceLab/OpenClockView/internal/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive GUI",
	Long: `Open the clock window. Drag a hand by its tip to set it; the hands follow
wall time until the first drag.

Shortcuts:
  Ctrl+O  - Open face file
  Ctrl+S  - Save snapshot
  Ctrl+N  - Set hands to now`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}

		go func() {
			w := new(app.Window)
			a, err := appui.New(w, cfg, verbose)
			if err != nil {
				log.Fatal(err)
			}
			if err := a.Run(); err != nil {
				log.Fatal(err)
			}
			os.Exit(0)
		}()
		app.Main()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
