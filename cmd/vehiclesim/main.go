package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/groundsim/vehicle/internal/config"
	"github.com/groundsim/vehicle/internal/logging"
)

// Version can be set at build time via ldflags.
var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"

	AppName string = "vehiclesim"
)

var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	SessionStartTime time.Time = time.Now()
)

func usage() {
	fmt.Fprintf(os.Stderr, `%s %s (built %s)

usage:
  %s [flags] demo               run the scripted acceleration demo
  %s [flags] hardpoints         print the suspension design tables
  %s [flags] export <obj> <name>  export a mesh for POV-Ray rendering

flags:
`, AppName, Version, BuildDate, AppName, AppName, AppName)
	flag.PrintDefaults()
}

func main() {
	configDir := flag.String("config", ".", "directory containing the config file")
	logToFile := flag.Bool("logfile", false, "write logs to the configured logs directory instead of stdout")
	flag.Usage = usage
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	SlogManager = logging.NewSlogManager()
	var logFile *os.File
	if *logToFile {
		logsDir := config.GetString("logsDir")
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		path := logging.LogFilePath(logsDir, AppName, SessionStartTime)
		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logFile = f
		defer logFile.Close()
	}
	SlogManager.Setup(logFile, config.GetString("logLevel"), nil)
	Logger = SlogManager.Logger()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch strings.ToLower(args[0]) {
	case "demo":
		err = runDemo()
	case "hardpoints":
		err = printHardpoints()
	case "export":
		if len(args) < 3 {
			usage()
			os.Exit(2)
		}
		err = exportMesh(args[1], args[2])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		Logger.Error("Command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}
