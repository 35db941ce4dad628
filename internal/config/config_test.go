// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cfg "github.com/toeirei/startini/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	// Force the user config dir into tmp.
	t.Setenv("XDG_CONFIG_HOME", tmp)
	return tmp
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		t.Fatalf("expected ConfigFileNotFoundError, got: %T %v", err, err)
	}
	if got.Language != "en" || got.History.Type != "sqlite" || got.LogLevel != "info" {
		t.Fatalf("defaults not applied: %+v", got)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	tmp := isolate(t)
	yaml := "home: /opt/jetty\nbase: /srv/site\nlanguage: de\nbackup: true\nhistory:\n  enabled: true\n  type: postgres\n  dsn: postgresql://user@/db\n"
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Home != "/opt/jetty" || got.Base != "/srv/site" {
		t.Fatalf("unexpected dirs: %+v", got)
	}
	if got.Language != "de" || !got.Backup {
		t.Fatalf("unexpected values: %+v", got)
	}
	if !got.History.Enabled || got.History.Type != "postgres" {
		t.Fatalf("unexpected history: %+v", got.History)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	tmp := isolate(t)
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte("language: de\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("STARTINI_LANGUAGE", "en")
	t.Setenv("STARTINI_HISTORY_DSN", ":memory:")

	got, err := cfg.LoadConfig[cfg.Config](nil, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Language != "en" {
		t.Fatalf("expected env override, got %q", got.Language)
	}
	if got.History.Dsn != ":memory:" {
		t.Fatalf("expected env dsn, got %q", got.History.Dsn)
	}
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	isolate(t)
	t.Setenv("STARTINI_BASE", "/from/env")

	cmd := &cobra.Command{}
	cmd.Flags().String("base", "", "")
	if err := cmd.Flags().Set("base", "/from/flag"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	got, _ := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if got.Base != "/from/flag" {
		t.Fatalf("expected flag value, got %q", got.Base)
	}
}

func TestWriteConfigFile_CreatesFile(t *testing.T) {
	isolate(t)

	c := cfg.Config{Language: "en", Home: "/opt/jetty"}
	c.History.Type = "sqlite"
	if err := cfg.WriteConfigFile(&c, false); err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}

	path, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s, stat error: %v", path, err)
	}

	// The written file is picked up from the user config dir.
	got, err := cfg.LoadConfig[cfg.Config](nil, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Home != "/opt/jetty" {
		t.Fatalf("expected persisted home, got %q", got.Home)
	}
}
