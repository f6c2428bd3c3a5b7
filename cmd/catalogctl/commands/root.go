package commands

import (
	"github.com/spf13/cobra"

	"github.com/trashquiz/trashquiz/internal/catalog"
)

var (
	catalogPath string
	cat         *catalog.Catalog
)

func Execute() error {
	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Inspect and dry-run waste catalog files",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(catalogPath)
			if err != nil {
				return err
			}
			cat = c
			return nil
		},
	}

	root.PersistentFlags().StringVar(&catalogPath, "catalog", "./data/item_dataset.json", "catalog file (json or yaml)")

	root.AddCommand(lintCmd(), classifyCmd(), sampleCmd())
	return root.Execute()
}
