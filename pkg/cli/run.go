package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gleaner/pkg/cli/config"
	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
	"github.com/m-mizutani/gleaner/pkg/domain/model"
	"github.com/m-mizutani/gleaner/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdRun() *cli.Command {
	var (
		catalogCfg   config.Catalog
		harvestCfg   config.Harvest
		storageCfg   config.Storage
		firestoreCfg config.Firestore
		slackCfg     config.Slack
		testMode     bool
	)

	flags := append(catalogCfg.Flags(), harvestCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, firestoreCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "test-mode",
		Usage:       "Harvest only a small sample of the catalog",
		Destination: &testMode,
		Sources:     cli.EnvVars("GLEANER_TEST_MODE"),
	})

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Run one harvest and publish the CSV",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting harvest run",
				slog.String("catalog_url", catalogCfg.BaseURL),
				slog.Bool("test_mode", testMode),
			)

			harvestUC, err := buildHarvestUseCase(ctx, &catalogCfg, &harvestCfg, &storageCfg, &firestoreCfg, &slackCfg)
			if err != nil {
				return err
			}

			run, err := harvestUC.Execute(ctx, &model.HarvestRequest{TestMode: testMode})
			printSummary(run)
			return err
		},
	}
}

// buildHarvestUseCase wires the harvest use case from configuration, shared
// by the run and serve commands
func buildHarvestUseCase(
	ctx context.Context,
	catalogCfg *config.Catalog,
	harvestCfg *config.Harvest,
	storageCfg *config.Storage,
	firestoreCfg *config.Firestore,
	slackCfg *config.Slack,
) (interfaces.HarvestUseCase, error) {
	if harvestCfg.Concurrency < 1 {
		return nil, goerr.New("concurrency must be at least 1", goerr.V("concurrency", harvestCfg.Concurrency))
	}

	publisher, err := storageCfg.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure storage")
	}

	repo, err := firestoreCfg.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure run repository")
	}

	options := append(harvestCfg.Options(), usecase.WithRepository(repo))
	if notifier := slackCfg.Configure(); notifier != nil {
		options = append(options, usecase.WithNotifier(notifier))
	}

	return usecase.NewHarvest(catalogCfg.Configure(), publisher, options...), nil
}

// printSummary prints a human readable report of the run to stdout,
// separate from the structured logs
func printSummary(run *model.HarvestRun) {
	if run == nil {
		return
	}

	title := color.New(color.FgGreen, color.Bold)
	if run.Status != model.RunStatusSucceeded {
		title = color.New(color.FgRed, color.Bold)
	}

	title.Printf("Harvest %s\n", run.Status)
	fmt.Printf("  Run ID:    %s\n", run.ID)
	fmt.Printf("  Attempted: %d\n", run.Attempted)
	fmt.Printf("  Succeeded: %d\n", run.Succeeded)
	fmt.Printf("  Failed:    %d\n", run.Failed)
	fmt.Printf("  Stale:     %d\n", run.Stale)
	fmt.Printf("  Duration:  %s\n", run.Duration().Round(time.Millisecond))
	if run.Destination != "" {
		fmt.Printf("  Published: %s\n", run.Destination)
	}
	if run.Error != "" {
		fmt.Printf("  Error:     %s\n", run.Error)
	}
}
