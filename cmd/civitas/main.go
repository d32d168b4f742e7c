// Command civitas runs the institutional participation simulation: it
// builds a population from a config or preset, advances it a number of
// ticks, and reports participation dynamics per practice.
package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/talgya/civitas/internal/config"
	"github.com/talgya/civitas/internal/engine"
	"github.com/talgya/civitas/internal/entropy"
	"github.com/talgya/civitas/internal/model"
	"github.com/talgya/civitas/internal/persistence"
)

var (
	configFile string
	preset     string
	ticks      int
	seed       int64
	dbPath     string
	csvPath    string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "civitas",
		Short: "institutional participation diffusion simulator",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "tick count (overrides config)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (overrides config)")
	runCmd.Flags().StringVar(&dbPath, "db", "", "save run to sqlite database")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "export history to csv")
	runCmd.Flags().BoolVar(&verbose, "verbose", false, "debug logging")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, presetsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if ticks > 0 {
		cfg.Ticks = ticks
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	slog.Info("starting run",
		"agents", humanize.Comma(int64(cfg.Agents)),
		"institutions", len(cfg.Institutions),
		"ticks", cfg.Ticks,
		"seed", cfg.Seed,
	)

	start := time.Now()
	sim, err := engine.New(cfg, entropy.NewSource(cfg.Seed))
	if err != nil {
		return fmt.Errorf("build simulation: %w", err)
	}

	reportEvery := cfg.Ticks / 10
	if reportEvery < 1 {
		reportEvery = 1
	}
	for i := 0; i < cfg.Ticks; i++ {
		sim.Step()
		if sim.CurrentTick()%reportEvery == 0 {
			logProgress(sim)
		}
	}

	slog.Info("run complete",
		"ticks", sim.CurrentTick(),
		"elapsed", time.Since(start).Round(time.Millisecond),
		"graph_edges", humanize.Comma(int64(sim.Graph.EdgeCount())),
	)

	printParticipation(sim)

	if csvPath != "" {
		if err := exportCSV(sim, csvPath); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		slog.Info("history exported", "path", csvPath)
	}

	if dbPath != "" {
		db, err := persistence.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		runID := uuid.New()
		if err := db.SaveRun(runID, cfg, sim); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		slog.Info("run saved", "db", dbPath, "run_id", runID)
	}

	return nil
}

func loadConfig() (*config.Config, error) {
	if configFile != "" && preset != "" {
		return nil, fmt.Errorf("--config and --preset are mutually exclusive")
	}
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (see: civitas presets)", preset)
		}
		return cfg, nil
	}
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.DefaultConfig(), nil
}

func logProgress(sim *engine.Simulation) {
	stats := sim.Aggregate()
	attrs := []any{"tick", sim.CurrentTick()}
	for p := 0; p < model.NumPractices; p++ {
		if stats[p].Participation > 0 {
			name := model.PracticeName(model.PracticeType(p))
			attrs = append(attrs, name, fmt.Sprintf("%.2f", stats[p].Participation))
		}
	}
	slog.Info("participation", attrs...)
}

// printParticipation plots each active practice's participation series.
func printParticipation(sim *engine.Simulation) {
	h := sim.History
	for p := 0; p < model.NumPractices; p++ {
		series := h.Participation[p]
		active := false
		for _, v := range series {
			if v > 0 {
				active = true
				break
			}
		}
		if !active {
			continue
		}
		graph := asciigraph.Plot(series,
			asciigraph.Height(8),
			asciigraph.Width(72),
			asciigraph.Caption(model.PracticeName(model.PracticeType(p))+" participation rate"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func exportCSV(sim *engine.Simulation, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"tick"}
	for p := 0; p < model.NumPractices; p++ {
		name := model.PracticeName(model.PracticeType(p))
		header = append(header, name+"_avg_hours", name+"_participation_rate")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	h := sim.History
	for i, tick := range h.Ticks {
		row := []string{strconv.Itoa(tick)}
		for p := 0; p < model.NumPractices; p++ {
			row = append(row,
				strconv.FormatFloat(h.AvgHours[p][i], 'f', 4, 64),
				strconv.FormatFloat(h.Participation[p][i], 'f', 4, 64),
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
