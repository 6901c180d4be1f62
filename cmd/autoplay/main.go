package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/freeeve/zeitgeist/internal/autoplay"
	"github.com/freeeve/zeitgeist/internal/logger"
	"github.com/freeeve/zeitgeist/internal/model"
	"github.com/freeeve/zeitgeist/internal/repository/sqlite"
	"github.com/freeeve/zeitgeist/pkg/culture"
)

var rootCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Play seeded games headlessly and record the outcomes",
	Long: `Runs a batch of games with an automated player, rotating through
movements and start regions, and stores the results in a local SQLite
file for comparing tuning values.`,
	SilenceUsage: true,
	RunE:         runBatch,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print per-movement statistics from a results database",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := sqlite.Open(viper.GetString("db"))
		if err != nil {
			return err
		}
		defer store.Close()
		return printSummary(cmd.Context(), store)
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("db", "autoplay.db", "SQLite results file")
	f.String("log-level", "warn", "Log level")

	f = rootCmd.Flags()
	f.IntP("games", "n", 100, "Number of games to run")
	f.Int("workers", 4, "Games played in parallel")
	f.Int64("seed", 1, "Seed of the first game; game i uses seed+i")
	f.StringSlice("movements", nil, "Movements to rotate through (default all)")
	f.StringSlice("regions", []string{"germany", "brazil", "usa_west"}, "Start regions to rotate through")
	f.Int("max-turns", 200, "Turn cap before a game counts as undecided")
	f.String("strategy", "autopilot", "Player strategy: autopilot, hoarder or idle")
	f.Int("collect", autoplay.DefaultCollect, "Influence collected per turn")
	f.String("tuning", "", "Tuning YAML file (default built-in values)")
	f.String("scenario", "", "Scenario YAML file (default built-in scenario)")
	f.Bool("dry-run", false, "Print results as JSON instead of storing them")

	rootCmd.AddCommand(summaryCmd)

	viper.SetEnvPrefix("ZEITGEIST")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	cobra.OnInitialize(func() {
		logger.Setup(logger.Options{Level: viper.GetString("log-level"), Out: os.Stderr})
	})
	_ = viper.BindPFlags(rootCmd.PersistentFlags())
	_ = viper.BindPFlags(rootCmd.Flags())
}

func loadInputs() (*culture.Scenario, culture.Tuning, error) {
	sc := culture.DefaultScenario()
	if path := viper.GetString("scenario"); path != "" {
		loaded, err := culture.LoadScenario(path)
		if err != nil {
			return nil, culture.Tuning{}, err
		}
		sc = loaded
	}
	tun := culture.DefaultTuning()
	if path := viper.GetString("tuning"); path != "" {
		loaded, err := culture.LoadTuning(path)
		if err != nil {
			return nil, culture.Tuning{}, err
		}
		tun = loaded
	}
	return sc, tun, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, tun, err := loadInputs()
	if err != nil {
		return err
	}

	cfg := autoplay.BatchConfig{
		Games:     viper.GetInt("games"),
		Workers:   viper.GetInt("workers"),
		BaseSeed:  viper.GetInt64("seed"),
		Movements: viper.GetStringSlice("movements"),
		Regions:   viper.GetStringSlice("regions"),
		MaxTurns:  viper.GetInt("max-turns"),
		Strategy:  autoplay.StrategyForName(viper.GetString("strategy"), viper.GetInt("collect")),
	}
	dryRun := viper.GetBool("dry-run")

	bar := progressbar.NewOptions(cfg.Games,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Playing"),
		progressbar.OptionShowCount(),
	)
	results, failed, runErr := autoplay.RunBatch(cmd.Context(), sc, tun, cfg, func() { bar.Add(1) })
	bar.Finish()

	finished := make([]*model.GameResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			finished = append(finished, r)
		}
	}
	log.Info().Int("finished", len(finished)).Int("failed", failed).Str("strategy", cfg.Strategy.Name()).Msg("Batch complete")

	if dryRun {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Total   int                 `json:"total"`
			Errors  int                 `json:"errors"`
			Results []*model.GameResult `json:"results"`
		}{cfg.Games, failed, finished}); err != nil {
			return err
		}
		return runErr
	}

	store, err := sqlite.Open(viper.GetString("db"))
	if err != nil {
		return err
	}
	defer store.Close()

	// Save whatever finished even when the batch was interrupted.
	ctx := context.WithoutCancel(cmd.Context())
	if err := store.SaveResults(ctx, finished); err != nil {
		return err
	}
	if err := printSummary(ctx, store); err != nil {
		return err
	}
	return runErr
}

func printSummary(ctx context.Context, store *sqlite.Store) error {
	rows, err := store.Summarize(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\n%-18s %6s %6s %9s %9s %9s\n", "movement", "games", "wins", "avgTurns", "avgAdopt", "peak")
	for _, r := range rows {
		fmt.Printf("%-18s %6d %6d %9.1f %8.1f%% %8.1f%%\n",
			r.MovementID, r.Games, r.Wins, r.AvgTurns, r.AvgAdoption*100, r.PeakAdoption*100)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
