// Package convert is the public entry point of the analysis: it builds the
// engine from a configuration file and processes files and directories.
package convert

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/linqfix/linqfix/internal"
	tt "github.com/linqfix/linqfix/internal/types"
	"github.com/linqfix/linqfix/scanner"
)

// Engine is the analysis surface the commands work against.
type Engine interface {
	Run(ctx context.Context, filePath string) ([]tt.Candidate, error)
	RunSource(ctx context.Context, filename string, source []byte) ([]tt.Candidate, error)
	DisableStrategy(name string)
	IgnorePath(path string)
}

// Processor analyzes a single file through the engine.
type Processor func(ctx context.Context, engine Engine, filePath string) ([]tt.Candidate, error)

// New builds an engine from the configuration file. An empty path or a
// missing file yields the default configuration.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}

	engine, err := internal.NewEngine(config.Strategies)
	if err != nil {
		return nil, err
	}
	for _, path := range config.IgnorePaths {
		engine.IgnorePath(path)
	}
	return engine, nil
}

// DefaultConfig returns the configuration scaffolded by `linqfix init`.
func DefaultConfig() tt.Config {
	return tt.Config{
		Name:       "linqfix",
		Strategies: map[string]tt.ConfigStrategy{},
	}
}

func parseConfigurationFile(path string) (tt.Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return tt.Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var config tt.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return tt.Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// ProcessFiles analyzes each path, directory or file, and collects every
// candidate found.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	processor Processor,
) ([]tt.Candidate, error) {
	var allCandidates []tt.Candidate
	for _, path := range paths {
		candidates, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allCandidates = append(allCandidates, candidates...)
	}
	return allCandidates, nil
}

// ProcessPath analyzes one path. Directories are scanned for source files
// and processed by a bounded worker pool with a progress bar.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
	processor Processor,
) ([]tt.Candidate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		return processor(ctx, engine, path)
	}

	files, err := scanner.New(path).Scan()
	if err != nil {
		return nil, fmt.Errorf("error scanning directory %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	type fileResult struct {
		candidates []tt.Candidate
		err        error
	}
	resultChan := make(chan fileResult, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				fileCandidates, err := processor(ctx, engine, fp)
				if err != nil && logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				resultChan <- fileResult{candidates: fileCandidates, err: err}
				_ = bar.Add(1)
			}(file.Path)
		}
	}

	var candidates []tt.Candidate
	for range files {
		result := <-resultChan
		if result.err != nil {
			continue
		}
		candidates = append(candidates, result.candidates...)
	}

	fmt.Println()
	return candidates, nil
}

// ProcessFile runs the engine on a single file.
func ProcessFile(ctx context.Context, engine Engine, filePath string) ([]tt.Candidate, error) {
	return engine.Run(ctx, filePath)
}
