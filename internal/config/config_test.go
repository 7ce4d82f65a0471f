package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Analysis.ChunkSize != 1000 {
		t.Errorf("Expected default chunk size 1000, got %d", cfg.Analysis.ChunkSize)
	}
	if cfg.Rules.DeadStockDays != 180 {
		t.Errorf("Expected default dead stock days 180, got %d", cfg.Rules.DeadStockDays)
	}
	if cfg.Rules.DeadStockWarningQuantity != 100 {
		t.Errorf("Expected default dead stock warning quantity 100, got %d", cfg.Rules.DeadStockWarningQuantity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	}()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed without a config file: %v", err)
	}
	if cfg.Analysis.ChunkSize != 1000 {
		t.Errorf("Expected defaults when no file exists, got chunk size %d", cfg.Analysis.ChunkSize)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")

	content := `analysis:
  chunk_size: 250
rules:
  dead_stock_days: 90
  dead_stock_warning_quantity: 50
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Analysis.ChunkSize != 250 {
		t.Errorf("Expected chunk size 250, got %d", cfg.Analysis.ChunkSize)
	}
	if cfg.Rules.DeadStockDays != 90 {
		t.Errorf("Expected dead stock days 90, got %d", cfg.Rules.DeadStockDays)
	}
	if cfg.Rules.DeadStockWarningQuantity != 50 {
		t.Errorf("Expected dead stock warning quantity 50, got %d", cfg.Rules.DeadStockWarningQuantity)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")

	content := `rules:
  dead_stock_days: 30
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Analysis.ChunkSize != 1000 {
		t.Errorf("Expected default chunk size to survive a partial file, got %d", cfg.Analysis.ChunkSize)
	}
	if cfg.Rules.DeadStockWarningQuantity != 100 {
		t.Errorf("Expected default dead stock warning quantity to survive a partial file, got %d", cfg.Rules.DeadStockWarningQuantity)
	}
	if cfg.Rules.DeadStockDays != 30 {
		t.Errorf("Expected dead stock days 30, got %d", cfg.Rules.DeadStockDays)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")

	if err := os.WriteFile(path, []byte("analysis: ["), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected an error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"zero chunk size", func(c *Config) { c.Analysis.ChunkSize = 0 }, true},
		{"negative chunk size", func(c *Config) { c.Analysis.ChunkSize = -5 }, true},
		{"zero dead stock days", func(c *Config) { c.Rules.DeadStockDays = 0 }, true},
		{"zero dead stock warning quantity", func(c *Config) { c.Rules.DeadStockWarningQuantity = 0 }, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.modify(cfg)

			err := cfg.Validate()
			if test.wantErr && err == nil {
				t.Error("Expected a validation error")
			}
			if !test.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestSave(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Rules.DeadStockDays = 45

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to reload saved config: %v", err)
	}
	if loaded.Rules.DeadStockDays != 45 {
		t.Errorf("Expected saved dead stock days 45, got %d", loaded.Rules.DeadStockDays)
	}
}
