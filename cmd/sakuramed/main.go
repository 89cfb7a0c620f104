package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/dicomimport"
	"github.com/mrsinham/sakuramed/internal/intake"
	"github.com/mrsinham/sakuramed/internal/logging"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command and returns the exit code.
func run(args []string) int {
	flags := pflag.NewFlagSet("sakuramed", pflag.ContinueOnError)
	configFile := flags.String("config", "", "Load configuration from YAML file")
	saveConfig := flags.String("save-config", "", "Save the effective configuration to YAML file and exit")
	route := flags.String("route", "", "Start on this route (e.g. /patient-overview)")
	fromDICOM := flags.String("from-dicom", "", "Prefill patient details from a DICOM file")
	logFile := flags.String("log-file", "", "Write logs to this file")
	logLevel := flags.String("log-level", "", "Log level: debug, info, warn, error")
	showVersion := flags.Bool("version", false, "Show version information")
	showHelp := flags.BoolP("help", "h", false, "Show help message")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sakuramed [options]\n\n")
		fmt.Fprintf(os.Stderr, "Colposcopy exam workflow in the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  SAKURAMED_AUTH_DELAY, SAKURAMED_POSITIONING, SAKURAMED_EXAMINER,\n")
		fmt.Fprintf(os.Stderr, "  SAKURAMED_LOG_FILE, SAKURAMED_LOG_LEVEL, SAKURAMED_LOG_FORMAT, SAKURAMED_START_ROUTE\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *showHelp {
		flags.Usage()
		return 0
	}

	if *showVersion {
		fmt.Printf("sakuramed %s\n", version)
		return 0
	}

	cfg := wizard.DefaultConfig()
	if *configFile != "" {
		loaded, err := wizard.LoadFromYAML(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if err := wizard.ApplyEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	if err := checkConfig(cfg, *route); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *route != "" {
		cfg.UI.StartRoute = *route
	}

	if *saveConfig != "" {
		if err := wizard.SaveToYAML(cfg, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Configuration saved to: %s\n", *saveConfig)
		return 0
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File, "sakuramed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	var imported *intake.Patient
	if *fromDICOM != "" {
		d, err := dicomimport.Read(*fromDICOM)
		if err != nil {
			log.Error("import failed", zap.String("file", *fromDICOM), zap.Error(err))
			fmt.Fprintf(os.Stderr, "Error: importing %s: %v\n", *fromDICOM, err)
			return 1
		}
		p := d.Patient()
		imported = &p
		log.Info("patient imported", zap.String("file", *fromDICOM), zap.String("patient_id", d.PatientID))
	}

	if err := wizard.Run(cfg, imported, log); err != nil {
		log.Error("wizard failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// checkConfig validates cfg. A start route given with --route replaces the
// configured one and may be unknown: it opens the not found page.
func checkConfig(cfg types.Config, route string) error {
	if route != "" {
		cfg.UI.StartRoute = ""
	}
	return wizard.Validate(cfg)
}
