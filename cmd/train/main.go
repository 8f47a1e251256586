// Command train fits the mileage/price model to a training sample file and
// writes the coefficients to the model file.
//
// Usage:
//
//	train [flags] <training_data_file> [<model_file>]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/YuminosukeSato/linreg/app"
	"github.com/YuminosukeSato/linreg/config"
	"github.com/YuminosukeSato/linreg/history"
	"github.com/YuminosukeSato/linreg/pkg/log"
	"github.com/YuminosukeSato/linreg/visualize"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: train [flags] <training_data_file> [<model_file>]")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "YAML configuration file")
	learningRate := fs.Float64("learning-rate", 0, "gradient descent step size (default 0.1)")
	tolerance := fs.Float64("tolerance", 0, "gradient tolerance for convergence (default 1e-4)")
	maxIter := fs.Int("max-iterations", 0, "iteration cap, 0 for none (default 1000000)")
	warmStart := fs.String("warm-start", "", "initial coefficients: none, convert or legacy (default none)")
	plotPath := fs.String("plot", "", "write a PNG of the fit to this path")
	historyPath := fs.String("history", "", "record the run in this SQLite database")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (default info)")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "learning-rate":
			cfg.Training.LearningRate = *learningRate
		case "tolerance":
			cfg.Training.Tolerance = *tolerance
		case "max-iterations":
			cfg.Training.MaxIterations = *maxIter
		case "warm-start":
			cfg.Training.WarmStart = *warmStart
		case "plot":
			cfg.Output.Plot = *plotPath
		case "history":
			cfg.Output.History = *historyPath
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	if fs.NArg() == 2 {
		cfg.Model.Path = fs.Arg(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger, closer, err := log.SetupLogger(cfg.LogOptions(stderr))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer closer.Close()

	trainerOpts, err := cfg.TrainerOptions()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	var observers []app.Observer
	if cfg.Output.Plot != "" {
		observers = append(observers, visualize.NewPlotObserver(cfg.Output.Plot))
	}
	if cfg.Output.History != "" {
		store, err := history.Open(cfg.Output.History)
		if err != nil {
			logger.Warn("History disabled", err, log.PathKey, cfg.Output.History)
		} else {
			defer store.Close()
			observers = append(observers, store)
		}
	}

	res, err := app.Train(ctx, app.TrainOptions{
		DataPath:  fs.Arg(0),
		ModelPath: cfg.Model.Path,
		Trainer:   trainerOpts,
		Observers: observers,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("Training failed", err)
		fmt.Fprintln(stdout, app.Describe(err))
		return exitFailure
	}

	fmt.Fprintf(stdout, "precision: %v%%\n", res.Precision*100)
	return exitOK
}
