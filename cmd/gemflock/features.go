package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemflock/internal/registry"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List registered features",
	Long:  `Display the features that can trigger after a spin, with their configured chance.`,
	Run:   runFeatures,
}

func runFeatures(_ *cobra.Command, _ []string) {
	_, opts := loadEngine()

	configured := make(map[string]float64, len(opts.Triggers))
	for _, t := range opts.Triggers {
		configured[t.ID] = t.Probability
	}

	features := registry.List()
	if len(features) == 0 {
		fmt.Println("No features registered.")
		return
	}

	fmt.Println("Features:")
	fmt.Println()

	maxIDLen := 0
	for _, f := range features {
		if len(f.ID) > maxIDLen {
			maxIDLen = len(f.ID)
		}
	}

	for _, f := range features {
		chance := "disabled"
		if p, ok := configured[f.ID]; ok {
			chance = fmt.Sprintf("%.2f%% per spin", p*100)
		}
		fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, f.ID, f.Title, chance)
	}

	fmt.Println()
	fmt.Println("Trigger one manually in 'gemflock play' with B.")
}
