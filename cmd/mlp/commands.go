package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/born-ml/mlp/internal/config"
	"github.com/born-ml/mlp/internal/dataset"
	"github.com/born-ml/mlp/internal/mlp"
	"github.com/born-ml/mlp/internal/report"
	"github.com/born-ml/mlp/internal/serialization"
)

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML run description (required)")
	logEvery := fs.Int("log-every", 1000, "Log the average error every N epochs (0 = never)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return fmt.Errorf("train: -config is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	cases, err := dataset.Load(cfg.Resolve(cfg.Data.Cases), cfg.Topology)
	if err != nil {
		return err
	}
	if err := dataset.CheckCount(cases, cfg.Training.NumCases); err != nil {
		return err
	}

	hp := cfg.Hyperparameters()
	var w *mlp.Weights
	if cfg.Data.WeightsIn != "" {
		w, err = readWeights(cfg.Resolve(cfg.Data.WeightsIn), cfg.Topology)
	} else {
		w, err = mlp.NewRandomWeights(cfg.Topology, rand.New(rand.NewSource(hp.Seed)), hp.MinRand, hp.MaxRand)
	}
	if err != nil {
		return err
	}
	if cfg.Data.WeightsIn != "" {
		log.Printf("starting from %s", cfg.Data.WeightsIn)
	}

	trainer, err := mlp.NewTrainer(w, hp, cases)
	if err != nil {
		return err
	}
	if *logEvery > 0 {
		trainer.SetObserver(epochLogger(*logEvery))
	}

	log.Printf("training %s on %d cases (lr=%g, threshold=%g, max iterations=%d)",
		cfg.Topology, len(cases), hp.LearningRate, hp.ErrorThreshold, hp.MaxIterations)
	result, err := trainer.Run()
	if err != nil {
		return err
	}
	log.Printf("%s after %d epochs, average error %.6g", result.Reason, result.Iterations, result.AverageError)

	if cfg.Data.WeightsOut != "" {
		cp := &mlp.Checkpoint{
			Weights:         w,
			Hyperparameters: hp,
			Result:          result,
			Metadata:        map[string]string{"config": filepath.Base(*configPath)},
		}
		if err := cp.Save(cfg.Resolve(cfg.Data.WeightsOut)); err != nil {
			return err
		}
		log.Printf("weights saved to %s", cfg.Data.WeightsOut)
	}

	return writeReport(cfg.Resolve(cfg.Data.Report), cfg.Topology, result)
}

func runPredict(args []string) error {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML run description (required)")
	weightsPath := fs.String("weights", "", "Weight file, .mlpw or flat text (required)")
	casesPath := fs.String("cases", "", "Case file (default: data.cases from the config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" || *weightsPath == "" {
		return fmt.Errorf("predict: -config and -weights are required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	w, err := readWeights(*weightsPath, cfg.Topology)
	if err != nil {
		return err
	}

	path := *casesPath
	if path == "" {
		path = cfg.Resolve(cfg.Data.Cases)
	}
	cases, err := dataset.Load(path, cfg.Topology)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return fmt.Errorf("%s: %w", path, mlp.ErrNoCases)
	}

	results := mlp.Evaluate(w, cases)
	total := 0.0
	for _, r := range results {
		total += r.Error
	}
	return report.Write(os.Stdout, cfg.Topology, &mlp.Result{
		Cases:        results,
		AverageError: total / float64(cfg.Topology.Output*len(results)),
	})
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML run description (required)")
	weightsPath := fs.String("weights", "", "Weight file in .mlpw format (required)")
	outPath := fs.String("o", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" || *weightsPath == "" {
		return fmt.Errorf("export: -config and -weights are required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	w, err := mlp.LoadWeights(*weightsPath, cfg.Topology)
	if err != nil {
		return err
	}
	return withOutput(*outPath, func(out io.Writer) error {
		return serialization.WriteFlat(out, w.Flatten())
	})
}

// readWeights loads .mlpw files, or flat text for .txt paths.
func readWeights(path string, topo mlp.Topology) (*mlp.Weights, error) {
	if !strings.EqualFold(filepath.Ext(path), ".txt") {
		return mlp.LoadWeights(path, topo)
	}

	//nolint:gosec // G304: path comes from the command line or config
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open weights: %w", err)
	}
	defer f.Close()

	flat, err := serialization.ReadFlat(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mlp.NewWeightsFromFlat(topo, flat)
}

func writeReport(path string, topo mlp.Topology, result *mlp.Result) error {
	return withOutput(path, func(out io.Writer) error {
		return report.Write(out, topo, result)
	})
}

// withOutput runs fn against the file at path, or stdout when path is empty.
func withOutput(path string, fn func(io.Writer) error) (err error) {
	if path == "" {
		return fn(os.Stdout)
	}

	//nolint:gosec // G304: path comes from the command line or config
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(f)
}

// epochLogger logs progress every n epochs.
func epochLogger(n int) mlp.Observer {
	return mlp.ObserverFunc(func(s mlp.EpochStats) {
		if s.Iteration%n == 0 {
			log.Printf("epoch %d: average error %.6g", s.Iteration, s.AverageError)
		}
	})
}
