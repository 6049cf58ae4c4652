// Package main provides the vibe-gtf command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/vibe-gtf/internal/gtf"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	logger  = zap.NewNop()
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, gtf.ErrEmptyInput) {
			fmt.Fprintf(os.Stderr, "Hint: pass a GTF file or pipe one on stdin\n")
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vibe-gtf",
		Short: "Utilities for GTF gene annotation files",
		Long: `vibe-gtf parses GTF annotation files, rebuilds gene -> transcript -> exon
trees from flat exon lists, and converts strands and sequence names.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			l, err := newLogger(viper.GetString("log.level"))
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.vibe-gtf.yaml)")
	root.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	viper.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newStatsCmd(),
		newFilterCmd(),
		newReconstructCmd(),
		newTreeCmd(),
		newStrandCmd(),
		newSeqnameCmd(),
		newExportCmd(),
		newConfigCmd(),
	)

	return root
}

// initConfig reads ~/.vibe-gtf.yaml (or --config) and VIBE_GTF_* variables.
func initConfig() error {
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("reconstruct.leaf", "exon")
	viper.SetDefault("reconstruct.gene_key", gtf.GeneIDKey)
	viper.SetDefault("reconstruct.transcript_key", gtf.TranscriptIDKey)

	viper.SetEnvPrefix("VIBE_GTF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		viper.SetConfigFile(filepath.Join(home, ".vibe-gtf.yaml"))
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine.
		if cfgFile == "" && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// newLogger builds a console logger on stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}
