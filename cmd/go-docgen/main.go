// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command go-docgen scans a source tree and writes one technical document
// generated by a local Ollama model or Amazon Bedrock.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petar-djukic/go-docgen/internal/llm"
)

const version = "0.1.0"

// logger is replaced in PersistentPreRunE once flags are parsed.
var logger = zap.NewNop()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree and binds its flags to viper.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "go-docgen",
		Short: "Generate project documentation with a language model",
		Long: "go-docgen selects the most relevant source files of a directory, extracts their " +
			"documentation comments, and asks a text-generation service to write one Markdown, " +
			"HTML, or PDF-ready document describing the project.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(viper.GetBool("verbose"))
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l.With(zap.String("run_id", uuid.NewString()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runGenerate,
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.String("directory", ".", "Directory to analyze")
	flags.String("backend", "ollama", "Inference backend: ollama or bedrock")
	flags.String("model", "", "Model to use (default "+llm.DefaultModel+" for ollama)")
	flags.String("endpoint", llm.DefaultEndpoint, "Ollama service root URL")
	flags.String("region", "", "AWS region for Bedrock")
	flags.String("profile", "", "AWS credential profile for Bedrock")
	flags.String("format", "markdown", "Output format: markdown, html, or pdf")
	flags.String("output", "", "Output file name without extension (default documentation_<timestamp>)")
	flags.String("output-dir", ".", "Directory the document is written to")
	flags.Int("max-files", 30, "Maximum number of files to analyze")
	flags.Duration("timeout", llm.DefaultTimeout, "Generation request timeout")
	flags.Float64("temperature", llm.DefaultTemperature, "Sampling temperature (0 uses the default)")
	flags.Float64("top-p", llm.DefaultTopP, "Nucleus sampling threshold (0 uses the default)")
	flags.Int("max-tokens", 4096, "Maximum response tokens (bedrock only)")
	flags.Int("preview-chars", 2000, "Characters of each file included in the prompt")
	flags.Bool("respect-gitignore", false, "Skip files matched by .gitignore")
	flags.Bool("no-git", false, "Do not include repository state in the prompt")
	flags.String("project-name", "", "Project name used in the prompt (default directory name)")
	flags.String("description", "", "Short project overview passed to the model")
	flags.Bool("preview", false, "Render the generated document in the terminal")
	flags.Bool("json", false, "Print the run result as JSON")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	// Bind flags to viper.
	flags.VisitAll(func(f *pflag.Flag) {
		viper.BindPFlag(f.Name, f)
	})

	// Env vars: GO_DOCGEN_MODEL, GO_DOCGEN_MAX_FILES, etc.
	viper.SetEnvPrefix("GO_DOCGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".go-docgen")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newLogger builds a console logger on stderr. Progress is logged at info;
// verbose adds per-file debug entries.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print go-docgen version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "go-docgen %s\n", version)
		},
	}
}
