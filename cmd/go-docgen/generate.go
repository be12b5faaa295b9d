// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-docgen/internal/render"
	"github.com/petar-djukic/go-docgen/pkg/docgen"
)

// configFromViper resolves the generator configuration from flags, env, and
// the config file.
func configFromViper() docgen.Config {
	return docgen.Config{
		Directory:        viper.GetString("directory"),
		Backend:          viper.GetString("backend"),
		Model:            viper.GetString("model"),
		Endpoint:         viper.GetString("endpoint"),
		Region:           viper.GetString("region"),
		Profile:          viper.GetString("profile"),
		Format:           viper.GetString("format"),
		Output:           viper.GetString("output"),
		OutputDir:        viper.GetString("output-dir"),
		MaxFiles:         viper.GetInt("max-files"),
		Timeout:          viper.GetDuration("timeout"),
		Temperature:      viper.GetFloat64("temperature"),
		TopP:             viper.GetFloat64("top-p"),
		MaxTokens:        viper.GetInt("max-tokens"),
		PreviewChars:     viper.GetInt("preview-chars"),
		RespectGitignore: viper.GetBool("respect-gitignore"),
		NoGit:            viper.GetBool("no-git"),
		ProjectName:      viper.GetString("project-name"),
		Description:      viper.GetString("description"),
	}
}

// runGenerate documents the configured directory.
func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := configFromViper()

	g, err := docgen.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	fmt.Fprintln(stdout, "Consolidated Documentation Generator")
	fmt.Fprintln(stdout, "===================================")

	result, err := g.Run(ctx)
	printDiagnostics(stderr, result)
	if viper.GetBool("json") {
		printResult(stdout, result)
	}
	if err != nil {
		return err
	}

	if result.OutputPath != "" {
		fmt.Fprintf(stdout, "\nDocumentation successfully generated and saved to %s\n", result.OutputPath)
		fmt.Fprintf(stdout, "Documentation length: %d characters\n", result.DocumentChars)
	}
	if viper.GetBool("preview") && result.Markdown != "" {
		out, err := render.Terminal(result.Markdown, 0)
		if err != nil {
			return fmt.Errorf("rendering preview: %w", err)
		}
		fmt.Fprint(stdout, out)
	}
	return nil
}

// printDiagnostics writes each user-facing message on its own line.
func printDiagnostics(w io.Writer, result *docgen.Result) {
	if result == nil {
		return
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintln(w, d)
	}
}

// printResult outputs the result as JSON.
func printResult(w io.Writer, result *docgen.Result) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling result: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(out))
}
