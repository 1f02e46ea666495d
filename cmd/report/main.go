package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/engine"
	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/export"
	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/service"
)

func main() {
	var (
		exportPath = flag.String("export", "data/export.json", "path to an export snapshot")
		view       = flag.String("view", "weekly", "view to compute: weekly|radar|network|quests|health")
		userID     = flag.String("user", "", "focal member ID")
		window     = flag.String("window", "", "time window for the weekly view (e.g. 7d, 1month)")
		hours      = flag.Int("hours", 0, "lookback hours for radar/network views")
		mode       = flag.String("mode", "taps", "network mode: taps|connections")
		debug      = flag.Bool("debug", false, "include debug meta")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	source := export.NewFileSource(*exportPath)
	assembler := engine.NewAssembler("file")
	svc := service.NewCommunityService(source, assembler, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var payload any
	var err error
	switch *view {
	case "weekly":
		payload, err = svc.Weekly(ctx, engine.WeeklyParams{UserID: *userID, TimeWindow: *window, Debug: *debug})
	case "radar":
		payload, err = svc.Radar(ctx, engine.RadarParams{UserID: *userID, Hours: *hours, Debug: *debug})
	case "network":
		payload, err = svc.Network(ctx, engine.NetworkParams{UserID: *userID, Hours: *hours, Mode: engine.BucketMode(*mode), Debug: *debug})
	case "quests":
		payload, err = svc.Quests(ctx, engine.QuestsParams{UserID: *userID, Debug: *debug})
	case "health":
		payload, err = svc.Health(ctx, engine.HealthParams{UserID: *userID, Debug: *debug})
	default:
		fmt.Fprintf(os.Stderr, "unknown view %q\n", *view)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "compute %s view: %v\n", *view, err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		fmt.Fprintf(os.Stderr, "encode payload: %v\n", err)
		os.Exit(1)
	}
}
