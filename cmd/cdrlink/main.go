package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/telintel/cdrlink/pkg/graph"
	"github.com/telintel/cdrlink/pkg/ingest"
	"github.com/telintel/cdrlink/pkg/layout"
	"github.com/telintel/cdrlink/pkg/logging"
	"github.com/telintel/cdrlink/pkg/metrics"
)

func main() {
	var (
		out             = flag.String("out", "network.json", "output path for the positioned graph")
		width           = flag.Float64("width", 1200, "layout viewport width")
		height          = flag.Float64("height", 800, "layout viewport height")
		minScore        = flag.Int("min-score", 0, "minimum link strength score (0-100)")
		hideWeak        = flag.Bool("hide-weak", false, "drop weak links from the output")
		kind            = flag.String("type", "all", "interaction type filter: all, calls or sms")
		minInteractions = flag.Int("min-interactions", 0, "minimum interactions per individual")
		layoutConfig    = flag.String("layouts", "", "optional layout registry YAML (defaults to the embedded one)")
		logLevel        = flag.String("log-level", "info", "log level: debug, info, warn or error")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: cdrlink [flags] <file.xlsx|file.zip> [more files...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(*logLevel))
	reg := metrics.NewRegistry()

	opts := []ingest.Option{
		ingest.WithLogger(logger),
		ingest.WithMetrics(reg),
	}
	if *layoutConfig != "" {
		cfg, err := ingest.LoadConfig(*layoutConfig)
		if err != nil {
			log.Fatalf("Failed to load layout config: %v", err)
		}
		registry, err := ingest.NewRegistryWithConfig(cfg)
		if err != nil {
			log.Fatalf("Invalid layout config: %v", err)
		}
		opts = append(opts, ingest.WithRegistry(registry))
	}

	processor := ingest.NewProcessor(opts...)
	result := processor.ProcessFiles(flag.Args())

	fmt.Println("Sources:")
	for _, s := range result.Statuses {
		mark := "✓"
		if s.Status == ingest.StatusFailure {
			mark = "✗"
		}
		fmt.Printf("  %s %-40s %s", mark, s.SourceName, s.LayoutName)
		if len(s.SheetsMissing) > 0 {
			fmt.Printf("  missing: %v", s.SheetsMissing)
		}
		if s.Err != "" {
			fmt.Printf("  (%s)", s.Err)
		}
		fmt.Println()
	}

	set, err := processor.Extract(result)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
	if set.MalformedRows > 0 {
		fmt.Printf("Skipped %d malformed rows\n", set.MalformedRows)
	}

	start := time.Now()
	g := graph.Build(set.Records)
	thresholds := graph.DefaultThresholds()
	graph.Classify(g, thresholds)
	reg.RecordBuild(len(g.Nodes), len(g.Edges), time.Since(start))

	filters := graph.DefaultFilters()
	filters.InteractionType = graph.InteractionType(*kind)
	filters.MinStrengthScore = *minScore
	filters.MinInteractions = *minInteractions
	filters.ShowWeakLinks = !*hideWeak
	if err := filters.Validate(); err != nil {
		log.Fatalf("Invalid filters: %v", err)
	}

	visible := graph.Apply(g, filters, thresholds)
	reg.RecordFilter(len(visible.Nodes), len(visible.Edges))

	stats := graph.Summarize(visible)
	fmt.Printf("\nNetwork: %d individuals, %d links (%d primary, %d secondary, %d weak, avg strength %.1f)\n",
		len(visible.Nodes), stats.TotalLinks,
		stats.PrimaryLinks, stats.SecondaryLinks, stats.WeakLinks,
		stats.AverageStrength)

	sim := layout.NewSimulation(layout.DefaultConfig(*width, *height))
	sim.Start(visible, *width, *height)
	sim.Run()
	fmt.Printf("Layout settled after %d steps\n", sim.Steps())

	pg := &layout.PositionedGraph{Graph: visible, Positions: sim.Positions()}
	data, err := pg.ExportJSON()
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	fmt.Printf("Wrote %s\n", *out)
}
