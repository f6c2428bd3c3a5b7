package commands

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/trashquiz/trashquiz/internal/sorting"
)

func sampleCmd() *cobra.Command {
	var n int
	var seed int64
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw randomized quiz questions from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cat.Empty() {
				return fmt.Errorf("no items available")
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			sampler := sorting.NewSampler(rand.NewSource(seed))
			for i := 0; i < n; i++ {
				item, _ := sampler.PickItem(cat.Items())
				cleanliness, shape := sampler.Sample(item)
				bin := sorting.Classify(item, cleanliness, shape)
				fmt.Printf("%-30s cleanliness=%-15q shape=%-15q -> %s\n", item.Name, cleanliness, shape, bin)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 10, "number of questions to draw")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	return cmd
}
