package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		members     = flag.Int("members", cfg.NumMembers, "number of members to generate")
		taps        = flag.Int("taps", cfg.NumTaps, "number of taps to generate")
		clusters    = flag.Int("clusters", cfg.NumClusters, "number of social clusters")
		crossChance = flag.Float64("cross-chance", cfg.CrossClusterChance, "probability a tap crosses cluster boundaries")
		geoChance   = flag.Float64("geo-chance", cfg.GeoChance, "probability a tap carries coordinates")
		days        = flag.Int("days", cfg.DaysOfHistory, "days of history to spread taps over")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir   = flag.String("output-dir", "data", "directory to write export.json")
		writeStdout = flag.Bool("stdout", false, "write the export to stdout instead of a file")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumMembers:         *members,
		NumTaps:            *taps,
		NumClusters:        *clusters,
		CrossClusterChance: clampProbability(*crossChance),
		GeoChance:          clampProbability(*geoChance),
		DaysOfHistory:      *days,
		Seed:               *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	doc, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := generator.Encode(os.Stdout, doc); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write export to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDocument(doc, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write export: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d members and %d taps into %s\n", len(doc.Users), len(doc.Taps), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
