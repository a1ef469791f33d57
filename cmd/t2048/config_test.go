package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

// ruleCommand returns a command carrying the rule flags, with the given
// flags set as if typed on the command line.
func ruleCommand(t *testing.T, set map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	f := cmd.Flags()
	f.IntVar(&flagSize, "size", 0, "")
	f.IntVar(&flagTarget, "target", 0, "")
	f.Float64Var(&flagSpawn4, "spawn4", 0, "")
	f.IntVar(&flagCellMS, "cell-ms", 0, "")
	for name, value := range set {
		if err := f.Set(name, value); err != nil {
			t.Fatalf("Set(%s) failed: %v", name, err)
		}
	}
	return cmd
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "t2048.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	old := flagConfig
	flagConfig = path
	t.Cleanup(func() { flagConfig = old })
}

func TestLoadGameConfigFlagsOverrideFile(t *testing.T) {
	writeConfig(t, "board:\n  size: 5\nrules:\n  win_target: 1024\n")

	cfg, err := loadGameConfig(ruleCommand(t, map[string]string{
		"size":    "6",
		"cell-ms": "40",
	}))
	if err != nil {
		t.Fatalf("loadGameConfig() failed: %v", err)
	}
	if cfg.Board.Size != 6 {
		t.Errorf("Board.Size = %d, want 6 from the flag", cfg.Board.Size)
	}
	if cfg.Rules.WinTarget != 1024 {
		t.Errorf("WinTarget = %d, want 1024 from the file", cfg.Rules.WinTarget)
	}
	if cfg.Animation.CellDuration != 40*time.Millisecond {
		t.Errorf("CellDuration = %s, want 40ms", cfg.Animation.CellDuration)
	}
}

func TestLoadGameConfigUnsetFlagsKeepFile(t *testing.T) {
	writeConfig(t, "rules:\n  spawn4_probability: 0.25\n")

	cfg, err := loadGameConfig(ruleCommand(t, nil))
	if err != nil {
		t.Fatalf("loadGameConfig() failed: %v", err)
	}
	if cfg.Rules.Spawn4Probability != 0.25 {
		t.Errorf("Spawn4Probability = %g, want 0.25", cfg.Rules.Spawn4Probability)
	}
	if cfg.Board.Size != config.DefaultT2048Config().Board.Size {
		t.Errorf("Board.Size = %d, want the default", cfg.Board.Size)
	}
}

func TestLoadGameConfigRejectsBadFlags(t *testing.T) {
	writeConfig(t, "")

	tests := map[string]map[string]string{
		"size too big":       {"size": "9"},
		"target not pow2":    {"target": "1000"},
		"spawn4 above one":   {"spawn4": "1.5"},
		"negative cell time": {"cell-ms": "-1"},
	}
	for name, set := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadGameConfig(ruleCommand(t, set))
			if !errors.Is(err, config.ErrInvalid) {
				t.Errorf("loadGameConfig() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := expandHome("~/.t2048/t2048.log")
	if err != nil {
		t.Fatalf("expandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".t2048", "t2048.log"); got != want {
		t.Errorf("expandHome() = %q, want %q", got, want)
	}
	if got, _ := expandHome("/tmp/x.log"); got != "/tmp/x.log" {
		t.Errorf("absolute path changed: %q", got)
	}
}
