package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/opbench/opbench/pkg/bench"
	"github.com/opbench/opbench/pkg/config"
	"github.com/opbench/opbench/pkg/input"
	"github.com/opbench/opbench/pkg/operation"
	"github.com/opbench/opbench/pkg/oplog"
	"github.com/opbench/opbench/pkg/stores"
	"github.com/opbench/opbench/pkg/telemetry"
)

func newRunCommand() *cobra.Command {
	var (
		suitePath      string
		simulate       string
		artifactDir    string
		lenientConfirm bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a benchmark session",
		Long: `Execute a benchmark session for a suite file.

The session is a chain of operations: pick a tool, measure it, and
optionally write a markdown report. Prompts read from stdin unless
--simulate supplies a script of pre-declared answers.`,
		Example: `  # Interactive session
  opbench run --suite suite.yaml

  # Deterministic replay: pick tool 1, skip warmup, write report.md
  opbench run --suite suite.yaml \
    --simulate 'select:1,toggle:no,confirm:yes,input:report.md'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, err := config.Load(suitePath)
			if err != nil {
				return err
			}
			if artifactDir != "" {
				suite.ArtifactDir = artifactDir
			}

			var resolver input.Resolver
			if simulate != "" {
				queue, err := input.ParseScript(simulate, input.Options{LenientConfirm: lenientConfirm})
				if err != nil {
					return fmt.Errorf("invalid --simulate script: %w", err)
				}
				resolver = input.NewScriptResolver(queue, nil)
			}

			return runSession(cmd.Context(), suite, resolver)
		},
	}

	cmd.Flags().StringVarP(&suitePath, "suite", "s", "", "suite file path (required)")
	cmd.Flags().StringVar(&simulate, "simulate", "", "scripted input (kind:value,kind:value,...)")
	cmd.Flags().StringVar(&artifactDir, "artifacts", "", "override the suite's artifact directory")
	cmd.Flags().BoolVar(&lenientConfirm, "lenient-confirm", false, "coerce unknown scripted confirmation values to no")
	_ = cmd.MarkFlagRequired("suite")

	return cmd
}

// runSession executes the chain for a suite and records it in run history.
func runSession(ctx context.Context, suite *config.Suite, resolver input.Resolver) error {
	logCfg := telemetry.DefaultLoggingConfig()
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := telemetry.NewLogger(logCfg)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}

	registry := oplog.NewRegistry(suite.ArtifactDir,
		oplog.WithMirror(logger.NewComponentLogger("oplog").Zerolog()),
		oplog.WithExtension(suite.LogExt),
	)

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	run := &stores.Run{
		ID:          uuid.New().String(),
		Suite:       suite.Name,
		RootOp:      "benchmark wizard",
		Status:      stores.RunStatusRunning,
		StartedAt:   time.Now(),
		ArtifactDir: suite.ArtifactDir,
	}
	if err := store.SaveRun(ctx, run); err != nil {
		return err
	}

	rc := operation.NewRunContext(ctx, registry, resolver)

	// A signal mid-chain marks the run interrupted before the logs are
	// flushed. The run context may already be cancelled by then, so the
	// history write uses its own context.
	stopFlush := registry.InstallEmergencyFlush(func() {
		msg := "interrupted by signal"
		steps := int(rc.Stack().TotalInvoked())
		if err := store.FinishRun(context.Background(), run.ID, stores.RunStatusInterrupted, steps, &msg); err != nil {
			logger.WithError(err).Error("recording run interruption failed")
		}
	})
	defer stopFlush()

	out, chainErr := operation.RunChain(rc, bench.NewWizard(suite))

	// Normal completion finalizes loggers on the way out; this catches any
	// logger left open by a halted chain.
	if err := registry.FinalizeAll(); err != nil {
		logger.WithError(err).Warn("flushing remaining operation logs failed")
	}

	steps := int(rc.Stack().TotalInvoked())
	switch {
	case chainErr != nil:
		msg := chainErr.Error()
		_ = store.FinishRun(ctx, run.ID, stores.RunStatusFailed, steps, &msg)
		return chainErr
	case !out.OK():
		msg := out.ErrorMessage()
		_ = store.FinishRun(ctx, run.ID, stores.RunStatusFailed, steps, &msg)
		if details := out.Details(); details != nil {
			return fmt.Errorf("%s: %w", out.ErrorMessage(), details)
		}
		return fmt.Errorf("%s", out.ErrorMessage())
	default:
		if err := store.FinishRun(ctx, run.ID, stores.RunStatusCompleted, steps, nil); err != nil {
			logger.WithRunID(run.ID).WithError(err).Warn("recording run completion failed")
		}
		logger.WithFields(map[string]interface{}{
			"run_id": run.ID,
			"suite":  suite.Name,
			"steps":  steps,
		}).Info("session completed")
		if path, ok := out.Value().(string); ok && path != "" {
			fmt.Println(path)
		}
		return nil
	}
}

// openStore opens and migrates the run-history database.
func openStore(ctx context.Context) (*stores.SQLiteStore, error) {
	store, err := stores.NewSQLiteStore(stores.Config{Path: dbPath})
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
