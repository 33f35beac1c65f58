package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type tier struct {
	MinAmount    float64 `json:"minAmount"`
	GrantedLimit int     `json:"grantedLimit"`
}

type catalog struct {
	Tiers []tier `json:"tiers"`
}

// Writes a sample plan catalog to data/plans.json. Point PLAN_FILE_PATH at
// it (or upload it to the plan S3 bucket) to override the built-in tiers.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	sample := catalog{
		Tiers: []tier{
			{MinAmount: 50, GrantedLimit: 1500},
			{MinAmount: 20, GrantedLimit: 450},
			{MinAmount: 10, GrantedLimit: 200},
		},
	}

	filePath := filepath.Join(dataDir, "plans.json")

	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal catalog: %v", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d tiers\n", filePath, len(sample.Tiers))
	fmt.Println("\nTiers:")
	for _, t := range sample.Tiers {
		fmt.Printf("  - pay >= %.2f grants %d product slots\n", t.MinAmount, t.GrantedLimit)
	}
}
