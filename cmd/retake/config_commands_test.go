package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.execute(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("expected validation success, got: %s", out)
	}

	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	out, err = env.execute(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("expected init confirmation, got: %s", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := env.execute(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, err := env.execute(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateRejectsBadTimezone(t *testing.T) {
	env := setupCLITestEnv(t)

	content, err := os.ReadFile(env.configPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	bad := string(content) + "\n[pipeline]\ntimezone = \"Mars/Olympus\"\n"
	if err := os.WriteFile(env.configPath, []byte(bad), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := env.execute(t, "config", "validate"); err == nil {
		t.Fatal("expected unknown timezone to fail validation")
	}
}
