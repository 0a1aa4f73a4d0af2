package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hengadev/wxf"
	"github.com/hengadev/wxf/internal/converter"
	"github.com/hengadev/wxf/internal/format"
	"github.com/hengadev/wxf/internal/monitoring"
	s3bucket "github.com/hengadev/wxf/providers/s3"
)

func main() {
	// A missing .env file is fine; variables may come from the environment.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	command := os.Args[1]
	switch command {
	case "convert":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = convertCommand(ctx, os.Args[2:], os.Stdout, os.Stderr)
		stop()
	case "init":
		err = initCommand(os.Args[2:], os.Stdout)
	case "validate":
		err = validateCommand(os.Args[2:], os.Stdout)
	case "version":
		versionCommand(os.Stdout)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  convert   Convert JSON, JSON5, YAML, TOML or SQLite documents to WXF\n")
	fmt.Fprintf(os.Stderr, "  init      Initialize configuration file\n")
	fmt.Fprintf(os.Stderr, "  validate  Validate configuration file\n")
	fmt.Fprintf(os.Stderr, "  version   Show version information\n")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for help on a specific command.\n", os.Args[0])
}

func convertCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", defaultConfigPath, "Path to configuration file")
	inputFormat := fs.String("f", "", "Input format (json, json5, yaml, toml, sqlite); detected from the extension when empty")
	text := fs.Bool("t", false, "Write the text form (.m)")
	binary := fs.Bool("b", false, "Write the binary form (.wxf)")
	compressed := fs.Bool("c", false, "Write the compressed binary form (.mx)")
	output := fs.String("o", "", "Output directory or s3://bucket/prefix; defaults to beside each input")
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		fs.Usage()
		return fmt.Errorf("no input files given")
	}

	config, err := loadCommandConfig(fs, *configPath)
	if err != nil {
		return err
	}

	var outputs []string
	if *text {
		outputs = append(outputs, string(format.Text))
	}
	if *binary {
		outputs = append(outputs, string(format.Binary))
	}
	if *compressed {
		outputs = append(outputs, string(format.Compressed))
	}
	if len(outputs) > 0 {
		config.Outputs = outputs
	}
	if *inputFormat != "" {
		config.InputFormat = *inputFormat
	}
	if *output != "" {
		config.Output = *output
	}
	if *verbose {
		config.Log.Level = monitoring.LevelDebug.String()
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("%w: %w", wxf.ErrInvalidConfiguration, err)
	}

	conv, err := newConverter(ctx, config, inputs, stderr)
	if err != nil {
		return err
	}

	results, err := conv.ConvertAll(ctx, inputs)
	for _, result := range results {
		for _, artifact := range result.Artifacts {
			fmt.Fprintf(stdout, "%s -> %s (%d bytes)\n", result.Input, artifact.Location, artifact.Size)
		}
	}
	return err
}

// loadCommandConfig reads the configuration file, tolerating its absence
// unless -config was given, and applies the environment on top.
func loadCommandConfig(fs *flag.FlagSet, path string) (*Config, error) {
	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	config, err := LoadConfigOrDefault(path, explicit)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func newConverter(ctx context.Context, config *Config, inputs []string, logOutput io.Writer) (*converter.Converter, error) {
	level, _ := monitoring.ParseLogLevel(config.Log.Level)
	logFormat, _ := monitoring.ParseLogFormat(config.Log.Format)
	logger := monitoring.NewStructuredLogger(monitoring.LoggerConfig{
		Level:     level,
		Format:    logFormat,
		Output:    logOutput,
		Component: "cli",
	})

	var store *s3bucket.Store
	if config.UsesS3(inputs) {
		var err error
		store, err = s3bucket.New(ctx, s3bucket.Options{
			Region:   config.S3.Region,
			Endpoint: config.S3.Endpoint,
		})
		if err != nil {
			return nil, err
		}
	}

	sink, err := converter.NewSink(config.Output, store)
	if err != nil {
		return nil, err
	}
	outputs, err := config.ParsedOutputs()
	if err != nil {
		return nil, err
	}

	opts := []converter.Option{
		converter.WithOutputs(outputs...),
		converter.WithSource(converter.NewRoutingSource(store)),
		converter.WithSink(sink),
		converter.WithLogger(logger),
		converter.WithMetrics(monitoring.NewInMemoryMetricsCollector()),
		converter.WithHook(monitoring.NewLoggingObservabilityHook(logger)),
		converter.WithDefaultContext(config.DefaultContext),
		converter.WithConcurrency(config.Concurrency),
	}
	if config.InputFormat != "" {
		in, err := format.ParseInput(config.InputFormat)
		if err != nil {
			return nil, err
		}
		opts = append(opts, converter.WithInputFormat(in))
	}
	return converter.New(opts...)
}

func initCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite existing configuration file")
	configPath := fs.String("config", defaultConfigPath, "Path of the configuration file to create")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*force {
		if _, err := os.Stat(*configPath); err == nil {
			return fmt.Errorf("configuration file %s already exists, use -force to overwrite", *configPath)
		}
	}

	fmt.Fprintf(stdout, "Creating configuration file at %s...\n", *configPath)
	if err := SaveConfig(DefaultConfig(), *configPath); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Configuration file created!")
	return nil
}

func validateCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "Path to configuration file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Validating configuration at %s...\n", *configPath)
	config, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	fmt.Fprintln(stdout, "✓ Configuration file is valid")
	return nil
}

func versionCommand(stdout io.Writer) {
	fmt.Fprintln(stdout, wxf.VersionInfo())
	fmt.Fprintln(stdout, "Converts JSON, JSON5, YAML, TOML and SQLite documents to the Wolfram Exchange Format")
	fmt.Fprintln(stdout, "")
	fmt.Fprintf(stdout, "Supported inputs: %v\n", format.AllInputs())
	fmt.Fprintf(stdout, "Supported outputs: %v\n", format.AllOutputs())
}
