// Copyright 2026 The Callsight Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetAnalyzeFlags restores analyze command flag globals between tests.
func resetAnalyzeFlags() {
	analyzeFile = ""
	analyzeJSON = false
	analyzeModel = ""
	analyzeLogFile = ""
}

// chatCompletionBody builds a chat-completions response whose message content
// is the given analysis JSON.
func chatCompletionBody(t *testing.T, summary, sentiment string) string {
	t.Helper()
	content, err := json.Marshal(map[string]string{"summary": summary, "sentiment": sentiment})
	if err != nil {
		t.Fatal(err)
	}
	body, err := json.Marshal(map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "llama-3.1-8b-instant",
		"choices": []any{map[string]any{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": string(content)},
			"finish_reason": "stop",
		}},
		"usage": map[string]int{"prompt_tokens": 42, "completion_tokens": 17, "total_tokens": 59},
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

// startFakeAPI serves successful analysis responses and counts requests.
func startFakeAPI(t *testing.T, summary, sentiment string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	body := chatCompletionBody(t, summary, sentiment)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestAnalyzeCommand_Success(t *testing.T) {
	resetAnalyzeFlags()
	srv, _ := startFakeAPI(t, "Customer was happy with support.", "Positive")

	logPath := filepath.Join(t.TempDir(), "calls.csv")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("CALLSIGHT_BASE_URL", srv.URL)
	t.Setenv("CALLSIGHT_LOG_FILE", logPath)

	out, err := execute(t, "analyze", "--no-color", "Thanks, that fixed it!")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if !strings.Contains(out, "Customer was happy with support.") {
		t.Errorf("output missing summary, got:\n%s", out)
	}
	if !strings.Contains(out, "Positive") {
		t.Errorf("output missing sentiment, got:\n%s", out)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Errorf("expected header plus one row, got %d lines", len(lines))
	}
}

func TestAnalyzeCommand_JSONOutput(t *testing.T) {
	resetAnalyzeFlags()
	srv, _ := startFakeAPI(t, "Short summary.", "Neutral")

	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("CALLSIGHT_BASE_URL", srv.URL)
	t.Setenv("CALLSIGHT_LOG_FILE", filepath.Join(t.TempDir(), "calls.csv"))

	out, err := execute(t, "analyze", "--json", "a transcript")
	if err != nil {
		t.Fatalf("analyze --json failed: %v", err)
	}

	for _, want := range []string{`"summary": "Short summary."`, `"sentiment": "Neutral"`, `"total_tokens": 59`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s, got:\n%s", want, out)
		}
	}
}

func TestAnalyzeCommand_FromFile(t *testing.T) {
	resetAnalyzeFlags()
	srv, calls := startFakeAPI(t, "From a file.", "Neutral")

	dir := t.TempDir()
	transcriptPath := filepath.Join(dir, "call.txt")
	if err := os.WriteFile(transcriptPath, []byte("transcript from disk"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("CALLSIGHT_BASE_URL", srv.URL)
	t.Setenv("CALLSIGHT_LOG_FILE", filepath.Join(dir, "calls.csv"))

	if _, err := execute(t, "analyze", "--file", transcriptPath); err != nil {
		t.Fatalf("analyze --file failed: %v", err)
	}
	if *calls != 1 {
		t.Errorf("expected exactly one API call, got %d", *calls)
	}
}

func TestAnalyzeCommand_MissingKeyFailsBeforeNetwork(t *testing.T) {
	resetAnalyzeFlags()
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("API must not be called when the key is missing")
	}))
	t.Cleanup(srv.Close)

	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("CALLSIGHT_BASE_URL", srv.URL)
	t.Setenv("CALLSIGHT_LOG_FILE", filepath.Join(t.TempDir(), "calls.csv"))

	_, err := execute(t, "analyze", "some transcript")
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "GROQ_API_KEY") {
		t.Errorf("error should mention GROQ_API_KEY, got: %v", err)
	}

	var ece *exitCodeError
	if !errors.As(err, &ece) {
		t.Fatalf("expected exitCodeError, got %T", err)
	}
	if ece.ExitCode() != ExitInvalidArgs {
		t.Errorf("expected exit code %d, got %d", ExitInvalidArgs, ece.ExitCode())
	}
}

func TestAnalyzeCommand_NoTranscript(t *testing.T) {
	resetAnalyzeFlags()

	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("CALLSIGHT_LOG_FILE", filepath.Join(t.TempDir(), "calls.csv"))

	_, err := execute(t, "analyze")
	if err == nil {
		t.Fatal("expected error when no transcript is given")
	}
	if !strings.Contains(err.Error(), "transcript required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAnalyzeCommand_APIFailureExitCode(t *testing.T) {
	resetAnalyzeFlags()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"boom","type":"server_error"}}`)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("CALLSIGHT_BASE_URL", srv.URL)
	logPath := filepath.Join(t.TempDir(), "calls.csv")
	t.Setenv("CALLSIGHT_LOG_FILE", logPath)

	_, err := execute(t, "analyze", "a transcript")
	if err == nil {
		t.Fatal("expected error on API failure")
	}

	var ece *exitCodeError
	if !errors.As(err, &ece) {
		t.Fatalf("expected exitCodeError, got %T", err)
	}
	if ece.ExitCode() != ExitAnalysis {
		t.Errorf("expected exit code %d, got %d", ExitAnalysis, ece.ExitCode())
	}

	if _, statErr := os.Stat(logPath); !os.IsNotExist(statErr) {
		t.Error("no row should be logged for a failed analysis")
	}
}

func TestExitError(t *testing.T) {
	e := exitError(ExitLogWrite, "failed: %s", "disk full")
	if e.ExitCode() != ExitLogWrite {
		t.Errorf("exit code = %d, want %d", e.ExitCode(), ExitLogWrite)
	}
	if e.Error() != "failed: disk full" {
		t.Errorf("message = %q", e.Error())
	}

	silent := exitError(ExitAnalysis, "")
	if silent.Error() != "" {
		t.Errorf("empty format should produce empty message, got %q", silent.Error())
	}
}
