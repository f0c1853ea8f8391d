package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veyralabs/veyra/internal/maintenance"
	"github.com/veyralabs/veyra/pkg/storage"
)

// veyra sweep — remove orphaned upload files once, outside the scheduler.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete upload files no catalog row references",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		storage.Connect()

		n, err := maintenance.NewSweeper().Sweep()
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d orphaned file(s).\n", n)
		return nil
	},
}
