// Command ftree exposes the family tree core for scripting and debugging:
// converting between the JSON and SQLite formats, inspecting a tree,
// validating a file, and following external modifications.
package main

import (
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jwnbm/familytree/internal/app"
	"github.com/jwnbm/familytree/internal/logging"
)

var (
	logFilePath string

	logger    *charmlog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "ftree",
	Short: "Family tree file tool",
	Long: `ftree works with family tree files in both supported formats.

Paths ending in .db or .sqlite use the relational SQLite format;
everything else uses the JSON document format.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logFilePath != "" {
			logger, logCloser = logging.NewFileLogger(logFilePath)
		} else {
			logger = logging.NewWriterLogger(os.Stderr, charmlog.WarnLevel)
		}
	},
}

// service builds the file service over the dispatching repository.
func service() *app.FileService {
	return app.NewFileService(app.DefaultRepository(), logger)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFilePath, "log-file", "",
		"append logs to this file instead of stderr")
}

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
