package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unitrack/unitrack/storage/database/blobdb"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Overwrite the store with the demo dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.db.Reseed(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Store seeded. Demo accounts accept password %q.\n", blobdb.DemoPassword)
		return nil
	},
}
