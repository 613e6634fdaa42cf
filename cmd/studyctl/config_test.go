package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigShow(t *testing.T) {
	root := testVault(t, nil)
	vaultDir = ""

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "vault: " + root + "\ndata_file: /tmp/studykit-test.json\nextensions:\n  - .md\n  - .markdown\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	configFile = cfgPath

	output, err := captureOutput(t, runConfigShow)
	if err != nil {
		t.Fatalf("runConfigShow() error: %v", err)
	}
	assertContains(t, output, []string{
		"vault: " + root,
		"data_file: /tmp/studykit-test.json",
		"- .markdown",
		"level: info",
	})

	// Flags override the file.
	dataFile = "/tmp/override.json"
	jsonOut = true
	output, err = captureOutput(t, runConfigShow)
	if err != nil {
		t.Fatalf("runConfigShow() error: %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"data_file": "/tmp/override.json"`})
}

func TestConfigMissingExplicitFile(t *testing.T) {
	testVault(t, nil)
	configFile = filepath.Join(t.TempDir(), "nope.yaml")

	if _, err := captureOutput(t, runConfigShow); err == nil {
		t.Error("runConfigShow() expected error for missing --config file")
	}
}

func TestConfigInitGlobal(t *testing.T) {
	testVault(t, nil)
	configInitGlobal = true

	output, err := captureOutput(t, runConfigInit)
	if err != nil {
		t.Fatalf("runConfigInit() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".studykit", "config.yaml")
	assertContains(t, output, []string{"Wrote " + want})

	if _, err := captureOutput(t, runConfigInit); err == nil {
		t.Error("runConfigInit() expected error when the file exists")
	}

	configInitForce = true
	if _, err := captureOutput(t, runConfigInit); err != nil {
		t.Errorf("runConfigInit(--force) error: %v", err)
	}

	// The written defaults load cleanly.
	configFile = want
	output, err = captureOutput(t, runConfigPath)
	if err != nil {
		t.Fatalf("runConfigPath() error: %v", err)
	}
	assertContains(t, output, []string{"global", want, "found"})
	if _, err := captureOutput(t, runConfigShow); err != nil {
		t.Errorf("runConfigShow() with written defaults: %v", err)
	}
}
