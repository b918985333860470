package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/linqfix/linqfix/convert"
	"github.com/linqfix/linqfix/internal/fixer"
	tt "github.com/linqfix/linqfix/internal/types"
)

var dryRun bool

var applyCmd = &cobra.Command{
	Use:   "apply [paths...]",
	Short: "Apply the conversions to the source files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := convert.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize conversion engine", zap.Error(err))
		}

		runApply(ctx, logger, engine, args, dryRun)
	},
}

func init() {
	applyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show conversions without applying them")
}

func runApply(ctx context.Context, logger *zap.Logger, engine convert.Engine, paths []string, dryRun bool) {
	fix := fixer.New(dryRun)

	for _, path := range paths {
		candidates, err := convert.ProcessPath(ctx, logger, engine, path, convert.ProcessFile)
		if err != nil {
			logger.Error("error processing path", zap.String("path", path), zap.Error(err))
			continue
		}

		for filename, cands := range groupByFile(candidates) {
			if err := fix.Fix(filename, cands); err != nil {
				logger.Error("error applying conversions", zap.String("file", filename), zap.Error(err))
			}
		}
	}
}

func groupByFile(candidates []tt.Candidate) map[string][]tt.Candidate {
	grouped := make(map[string][]tt.Candidate)
	for _, cand := range candidates {
		grouped[cand.Filename] = append(grouped[cand.Filename], cand)
	}
	return grouped
}
