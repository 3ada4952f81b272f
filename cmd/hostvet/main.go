package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ferrost/hostvet"
)

const (
	detectedLine    = "hostvet: detected"
	notDetectedLine = "hostvet: not detected"
)

func main() {
	var detected bool
	root := buildRoot(&detected)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if detected {
		os.Exit(1)
	}
}

// GlobalFlags holds the flags shared by all commands.
type GlobalFlags struct {
	ConfigPath string
	Verbose    bool
	LogFile    string
}

func buildRoot(detected *bool) *cobra.Command {
	flags := &GlobalFlags{}
	root := &cobra.Command{
		Use:   "hostvet",
		Short: "Report whether this host looks like a VM, sandbox or debugged process",
		Long: "hostvet runs a catalog of read-only host probes and prints a single " +
			"verdict. Exit code 1 means an analysis environment was detected.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(flags, detected)
		},
	}
	root.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "TOML config with extra reference data")
	root.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "log each probe result")
	root.PersistentFlags().StringVar(&flags.LogFile, "log-file", "", "write diagnostics to a rotating log file")
	return root
}

func runDetect(flags *GlobalFlags, detected *bool) error {
	logCfg := hostvet.LogConfig{File: flags.LogFile}
	if flags.Verbose {
		logCfg.Level = "debug"
	}

	opts := []hostvet.Option{}
	if flags.ConfigPath != "" {
		fc, err := hostvet.LoadConfig(flags.ConfigPath)
		if err != nil {
			return err
		}
		opts = append(opts, hostvet.WithOverrides(fc.Overrides()))
		if fc.Scan.Workers > 0 {
			opts = append(opts, hostvet.WithScanWorkers(fc.Scan.Workers))
		}
		// flags win over file log settings only when set
		if logCfg.File == "" {
			logCfg = fc.Log
			if flags.Verbose {
				logCfg.Level = "debug"
			}
		}
	}

	log, closer := hostvet.NewLogger(logCfg)
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	opts = append(opts, hostvet.WithLogger(log))

	*detected = hostvet.New(opts...).Detect()
	if *detected {
		fmt.Println(detectedLine)
	} else {
		fmt.Println(notDetectedLine)
	}
	return nil
}
