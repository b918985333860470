package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/linqfix/linqfix/convert"
	"github.com/linqfix/linqfix/formatter"
	"github.com/linqfix/linqfix/internal"
	tt "github.com/linqfix/linqfix/internal/types"
)

var (
	ignoreStrategies string
	ignorePaths      string
	jsonOutput       bool
	outPath          string
)

var previewCmd = &cobra.Command{
	Use:   "preview [paths...]",
	Short: "Show the conversions that would be applied",
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

		if ignoreStrategies != "" {
			for _, s := range strings.Split(ignoreStrategies, ",") {
				engine.DisableStrategy(strings.TrimSpace(s))
			}
		}
		if ignorePaths != "" {
			for _, p := range strings.Split(ignorePaths, ",") {
				engine.IgnorePath(strings.TrimSpace(p))
			}
		}

		runPreview(ctx, logger, engine, args, jsonOutput, outPath)
	},
}

func init() {
	previewCmd.Flags().StringVar(&ignoreStrategies, "ignore-strategies", "", "Comma-separated list of strategies to skip")
	previewCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to skip")
	previewCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	previewCmd.Flags().StringVarP(&outPath, "output", "o", "", "Write output to a file instead of stdout")
}

func runPreview(ctx context.Context, logger *zap.Logger, engine convert.Engine, paths []string, jsonOutput bool, outPath string) {
	candidates, err := convert.ProcessFiles(ctx, logger, engine, paths, convert.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	output, err := renderCandidates(candidates, jsonOutput)
	if err != nil {
		logger.Error("Error formatting output", zap.Error(err))
		os.Exit(1)
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
			logger.Error("Error writing output file", zap.String("path", outPath), zap.Error(err))
			os.Exit(1)
		}
		return
	}
	fmt.Print(output)
}

func renderCandidates(candidates []tt.Candidate, jsonOutput bool) (string, error) {
	if jsonOutput {
		data, err := json.MarshalIndent(candidates, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}

	byFile := make(map[string][]tt.Candidate)
	for _, cand := range candidates {
		byFile[cand.Filename] = append(byFile[cand.Filename], cand)
	}

	var files []string
	for filename := range byFile {
		files = append(files, filename)
	}
	sort.Strings(files)

	var sb strings.Builder
	for _, filename := range files {
		sourceCode, err := internal.ReadSourceCode(filename)
		if err != nil {
			return "", fmt.Errorf("error reading source file %s: %w", filename, err)
		}
		sb.WriteString(formatter.GenerateFormattedCandidates(byFile[filename], sourceCode))
	}
	if len(candidates) == 0 {
		sb.WriteString("No convertible loops found.\n")
	}
	return sb.String(), nil
}
