package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwnbm/familytree/internal/app"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Follow external modifications of a tree file",
	Long: `Watch prints a line whenever the file is modified or removed by
another process. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := app.NewWatcher(args[0])
		if err != nil {
			return err
		}
		defer w.Close()
		if err := w.Start(); err != nil {
			return err
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		fmt.Printf("Watching %s\n", args[0])
		for {
			select {
			case c, ok := <-w.Changes():
				if !ok {
					return nil
				}
				fmt.Printf("%s %s %s\n",
					time.Now().Format("15:04:05"), c.Op, c.Path)
			case err, ok := <-w.Errors():
				if ok && err != nil {
					logger.Error("watch error", "err", err)
				}
			case <-stop:
				fmt.Println("stopped")
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
