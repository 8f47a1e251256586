// Command predict estimates the price of a car from its mileage using the
// model written by train.
//
// Usage:
//
//	predict [flags] [<model_file>]
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/linreg/app"
	"github.com/YuminosukeSato/linreg/config"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: predict [flags] [<model_file>]")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "YAML configuration file")
	mileageFlag := fs.String("mileage", "", "mileage to price; prompts on stdin when omitted")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (default info)")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if fs.NArg() == 1 {
		cfg.Model.Path = fs.Arg(0)
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

	input := *mileageFlag
	mileageSet := false
	fs.Visit(func(f *flag.Flag) { mileageSet = mileageSet || f.Name == "mileage" })
	if !mileageSet {
		fmt.Fprint(stdout, "mileage: ")
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			logger.Error("Reading mileage failed", err)
			fmt.Fprintln(stdout, app.Describe(err))
			return exitFailure
		}
		input = line
	}

	mileage, err := app.ParseMileage(input)
	if err != nil {
		fmt.Fprintln(stdout, app.Describe(err))
		return exitFailure
	}

	price, err := app.Predict(ctx, cfg.Model.Path, mileage, logger)
	if err != nil {
		logger.Error("Prediction failed", err)
		fmt.Fprintln(stdout, app.Describe(err))
		return exitFailure
	}

	fmt.Fprintf(stdout, "price: %v\n", price)
	return exitOK
}
