package playstage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("default size = %dx%d, want 1280x720", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 60 {
		t.Errorf("default fps = %d, want 60", cfg.FPS)
	}
	if cfg.PhysicsMultiplier != 4 {
		t.Errorf("default physics multiplier = %d, want 4", cfg.PhysicsMultiplier)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file keeps defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil {
			t.Error("expected error for missing file")
		}
		if cfg.Width != 1280 {
			t.Error("defaults not returned on error")
		}
	})

	t.Run("partial file overlays defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		data := "title: demo\nwidth: 640\ngravity: -900\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Title != "demo" || cfg.Width != 640 || cfg.Gravity != -900 {
			t.Errorf("overrides not applied: %+v", cfg)
		}
		if cfg.Height != 720 || cfg.FPS != 60 {
			t.Errorf("absent keys lost defaults: %+v", cfg)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("width: [oops"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})
}
