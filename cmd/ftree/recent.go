package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwnbm/familytree/internal/config"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened tree files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		settings, err := config.Load(path)
		if err != nil {
			return err
		}
		if len(settings.RecentFiles) == 0 {
			fmt.Println("No recent files.")
			return nil
		}
		for _, f := range settings.RecentFiles {
			fmt.Println(f)
		}
		return nil
	},
}

// rememberRecent records a successfully opened file in the settings. Best
// effort: a failure only logs, it never fails the command.
func rememberRecent(file string) {
	path, err := config.Path()
	if err != nil {
		logger.Warn("settings path unavailable", "err", err)
		return
	}
	settings, err := config.Load(path)
	if err != nil {
		logger.Warn("settings unreadable", "path", path, "err", err)
		return
	}
	settings.AddRecentFile(file)
	if err := config.Save(path, settings); err != nil {
		logger.Warn("settings not saved", "path", path, "err", err)
	}
}

func init() {
	rootCmd.AddCommand(recentCmd)
}
