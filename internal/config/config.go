// Package config loads optional TOML configuration: extra reference data,
// timing/timeout tuning, scanner sizing and log settings. Everything is
// additive; an absent file means built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/ferrost/hostvet/internal/logger"
	"github.com/ferrost/hostvet/internal/refdata"
)

// FileConfig represents the top-level TOML structure:
//
//	[log]
//	level = "debug"
//	file = "/var/log/hostvet.log"
//
//	[reference]
//	extra_processes = ["corpagent"]
//	extra_mac_prefixes = ["AA:BB:CC"]
//	[reference.vm_tool_paths]
//	linux = ["/opt/site-vm-tools"]
//
//	[timing]
//	iterations = 2000000
//	threshold = "750ms"
//
//	[scan]
//	workers = 8
type FileConfig struct {
	Reference RefSection    `mapstructure:"reference"`
	Timing    TimingSection `mapstructure:"timing"`
	Scan      ScanSection   `mapstructure:"scan"`
	Log       logger.Config `mapstructure:"log"`
}

// RefSection adds entries on top of the built-in reference data.
type RefSection struct {
	ExtraVendorStrings []string            `mapstructure:"extra_vendor_strings"`
	ExtraMACPrefixes   []string            `mapstructure:"extra_mac_prefixes"`
	ExtraProcesses     []string            `mapstructure:"extra_processes"`
	ExtraDebuggers     []string            `mapstructure:"extra_debuggers"`
	VMToolPaths        map[string][]string `mapstructure:"vm_tool_paths"`
	SandboxPaths       map[string][]string `mapstructure:"sandbox_paths"`
}

// TimingSection tunes the loop-skew probe and the helper-process bound.
type TimingSection struct {
	Iterations        int           `mapstructure:"iterations"`
	Threshold         time.Duration `mapstructure:"threshold"`
	SubprocessTimeout time.Duration `mapstructure:"subprocess_timeout"`
}

// ScanSection sizes the process-scanner worker pool.
type ScanSection struct {
	Workers int `mapstructure:"workers"`
}

// Load parses a TOML config file.
func Load(path string) (*FileConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc FileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// Overrides converts the file sections into reference-data overrides.
func (fc *FileConfig) Overrides() refdata.Overrides {
	return refdata.Overrides{
		ExtraVendorStrings: fc.Reference.ExtraVendorStrings,
		ExtraMACPrefixes:   fc.Reference.ExtraMACPrefixes,
		ExtraVMToolPaths:   fc.Reference.VMToolPaths,
		ExtraSandboxPaths:  fc.Reference.SandboxPaths,
		ExtraProcesses:     fc.Reference.ExtraProcesses,
		ExtraDebuggers:     fc.Reference.ExtraDebuggers,
		TimingIterations:   fc.Timing.Iterations,
		TimingThreshold:    fc.Timing.Threshold,
		SubprocessTimeout:  fc.Timing.SubprocessTimeout,
	}
}
