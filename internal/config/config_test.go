// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.TargetColumn != "消息内容" {
		t.Errorf("expected default target_column=消息内容, got %q", cfg.Defaults.TargetColumn)
	}
	if cfg.Defaults.ContextRows != 2 {
		t.Errorf("expected default context_rows=2, got %d", cfg.Defaults.ContextRows)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
	if len(cfg.Defaults.ColumnAliases) == 0 {
		t.Error("expected default column aliases to be set")
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  target_column: 短信正文
  column_aliases: [正文]
  context_rows: 3
  checks: PHONE,ID_CARD
  workers: 4
  format: json
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.TargetColumn != "短信正文" {
		t.Errorf("expected target_column=短信正文, got %q", cfg.Defaults.TargetColumn)
	}
	if cfg.Defaults.ContextRows != 3 {
		t.Errorf("expected context_rows=3, got %d", cfg.Defaults.ContextRows)
	}
	if cfg.Defaults.Workers != 4 {
		t.Errorf("expected workers=4, got %d", cfg.Defaults.Workers)
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected format=json, got %q", cfg.Defaults.Format)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  workers: 2
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Workers != 2 {
		t.Errorf("expected workers=2, got %d", cfg.Defaults.Workers)
	}
	// Fields absent from the file keep their defaults
	if cfg.Defaults.TargetColumn != "消息内容" {
		t.Errorf("expected default target_column preserved, got %q", cfg.Defaults.TargetColumn)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  context_rows: -1
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("expected validation error for negative context_rows")
	}
}

func TestLoadConfigOrDefault_NonexistentFile(t *testing.T) {
	// A path that doesn't exist should fall back to defaults
	cfg := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults)")
	}
	if cfg.Defaults.TargetColumn == "" {
		t.Error("expected default target column to be set")
	}
}

func TestLoadConfigOrDefault_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte(":::invalid yaml:::"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Should fall back to defaults, not panic
	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults on parse error)")
	}
}
