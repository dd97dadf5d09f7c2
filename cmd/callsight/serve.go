// Copyright 2026 The Callsight Authors
// SPDX-License-Identifier: MIT

package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Manaskashy/callsight/internal/analyze"
	"github.com/Manaskashy/callsight/internal/calllog"
	"github.com/Manaskashy/callsight/internal/config"
	"github.com/Manaskashy/callsight/internal/llm"
	"github.com/Manaskashy/callsight/internal/web"
)

// Serve-specific flag values.
var serveAddr string

// serveCmd runs the web interface.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the transcript analysis web form",
	Long: `Start the web interface: a form for pasting transcripts, backed by the same
analyzer and CSV log as 'callsight analyze'. Shuts down cleanly on SIGINT or
SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, falling back to :8080)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return exitError(ExitInvalidArgs, "callsight: %v", err)
	}

	addr := cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	opts := []llm.GroqOption{llm.WithModel(cfg.Model)}
	if cfg.APIKey != "" {
		opts = append(opts, llm.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, llm.WithBaseURL(cfg.BaseURL))
	}

	provider, err := llm.NewGroqProvider(opts...)
	if err != nil {
		return exitError(ExitInvalidArgs, "callsight: %v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := web.New(analyze.New(provider), calllog.New(cfg.LogFile), addr)
	if err := server.Run(ctx); err != nil {
		return exitError(ExitAnalysis, "callsight: %v", err)
	}
	return nil
}
