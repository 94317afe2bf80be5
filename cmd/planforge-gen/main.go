package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/events"
	"github.com/claude/planforge/internal/history"
	"github.com/claude/planforge/internal/planner"
	"github.com/claude/planforge/internal/profile"
)

func main() {
	profilePath := flag.String("profile", "", "path to a YAML or JSON user profile (required)")
	outPath := flag.String("out", "", "write the plan JSON to this file instead of stdout")
	historyDir := flag.String("history", "", "directory for the local generation history (disabled when empty)")
	recent := flag.Int("recent", 0, "list the N most recent history entries and exit")
	verbose := flag.Bool("verbose", false, "log generation events")
	flag.Parse()

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	var hist *history.DB
	var err error
	if *historyDir != "" {
		hist, err = history.Open(*historyDir)
		if err != nil {
			log.Error("failed to open history", "error", err)
			os.Exit(1)
		}
		defer hist.Close()
	}

	if *recent > 0 {
		if hist == nil {
			fmt.Fprintln(os.Stderr, "-recent requires -history")
			os.Exit(2)
		}
		listRecent(log, hist, *recent)
		return
	}

	if *profilePath == "" {
		fmt.Fprintln(os.Stderr, "usage: planforge-gen -profile profile.yaml [-out plan.json] [-history dir]")
		os.Exit(2)
	}

	up, err := loadProfile(*profilePath)
	if err != nil {
		log.Error("failed to load profile", "error", err)
		os.Exit(1)
	}

	// Generation is deterministic, so a remembered plan for the same
	// profile is the plan we would generate again.
	var hash string
	if hist != nil {
		hash, err = history.HashProfile(up)
		if err != nil {
			log.Error("failed to hash profile", "error", err)
			os.Exit(1)
		}
		entry, err := hist.Lookup(hash)
		if err != nil {
			log.Warn("history lookup failed", "error", err)
		} else if entry != nil {
			log.Info("reusing remembered plan", "generatedAt", entry.GeneratedAt)
			writePlan(log, *outPath, entry.Plan)
			return
		}
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Error("failed to load exercise catalog", "error", err)
		os.Exit(1)
	}

	pl := planner.New(cat, log, events.SlogObserver{Log: log})
	result := pl.Generate(up)

	if !result.Accepted() {
		fmt.Fprintf(os.Stderr, "plan rejected (%s): %s\n", result.Rejection.Reason, result.Rejection.Detail)
		os.Exit(1)
	}

	for _, finding := range result.Diagnostics {
		log.Warn("contract diagnostic", "finding", finding)
	}
	if n := len(result.Penalties); n > 0 {
		log.Info("plan generated with quality penalties", "penalties", n)
	}

	if hist != nil {
		err := hist.Record(history.Entry{
			ProfileHash: hash,
			Profile:     up,
			Plan:        result.Plan,
			Split:       string(result.Constraints.Split),
			Level:       string(result.Constraints.Level),
		})
		if err != nil {
			log.Warn("failed to record history", "error", err)
		}
	}

	writePlan(log, *outPath, result.Plan)
}

// listRecent prints the latest history entries, newest first.
func listRecent(log *slog.Logger, hist *history.DB, limit int) {
	entries, err := hist.Recent(limit)
	if err != nil {
		log.Error("failed to read history", "error", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("no remembered plans")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  %-12s %-22s %d dias  %s\n",
			e.GeneratedAt.Format("2006-01-02 15:04"),
			e.Split, e.Level, len(e.Plan.WeeklySchedule), e.ProfileHash[:12])
	}
}

// loadProfile reads a profile from YAML or JSON. YAML is a superset of
// JSON, so a single decoder covers both.
func loadProfile(path string) (profile.UserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return profile.UserProfile{}, fmt.Errorf("reading profile: %w", err)
	}
	var up profile.UserProfile
	if err := yaml.Unmarshal(data, &up); err != nil {
		return profile.UserProfile{}, fmt.Errorf("parsing profile: %w", err)
	}
	return up, nil
}

func writePlan(log *slog.Logger, outPath string, p any) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		log.Error("failed to encode plan", "error", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if outPath == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Error("failed to write plan", "path", outPath, "error", err)
		os.Exit(1)
	}
	log.Info("plan written", "path", outPath)
}
