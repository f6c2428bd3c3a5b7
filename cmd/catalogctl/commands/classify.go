package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trashquiz/trashquiz/internal/sorting"
)

func classifyCmd() *cobra.Command {
	var cleanliness, shape string
	cmd := &cobra.Command{
		Use:   "classify <item name>",
		Short: "Dry-run classification of one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, ok := cat.ItemByName(args[0])
			if !ok {
				results := cat.Search(args[0], 3)
				if len(results) == 0 {
					return fmt.Errorf("item %q not found", args[0])
				}
				fmt.Println("not found; did you mean:")
				for _, r := range results {
					fmt.Printf("  %s\n", r.Item.Name)
				}
				return fmt.Errorf("item %q not found", args[0])
			}
			bin := sorting.Classify(item, cleanliness, shape)
			fmt.Printf("%s -> %s\n", item.Name, bin)
			fmt.Println(sorting.Explain(item, bin, cleanliness, shape))
			return nil
		},
	}
	cmd.Flags().StringVar(&cleanliness, "cleanliness", "", "cleanliness condition value")
	cmd.Flags().StringVar(&shape, "shape", "", "shape condition value")
	return cmd
}
