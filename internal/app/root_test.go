package app

import (
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	if RootCmd.Use != "archsetup" {
		t.Errorf("expected Use to be 'archsetup', got '%s'", RootCmd.Use)
	}

	if RootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if RootCmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	commands := RootCmd.Commands()

	expectedCommands := []string{"install", "export [file]", "history [run-id]"}
	foundCommands := make(map[string]bool)

	for _, cmd := range commands {
		foundCommands[cmd.Use] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("expected command '%s' to be registered", expected)
		}
	}
}

func TestRootCommandHasPersistentFlags(t *testing.T) {
	flag := RootCmd.PersistentFlags().Lookup("db")
	if flag == nil {
		t.Fatal("expected --db flag to be registered")
	}

	if flag.Usage == "" {
		t.Error("expected --db flag to have usage text")
	}
}

func TestInstallCommandFlags(t *testing.T) {
	for _, name := range []string{"only-config", "skip-nvidia", "noconfirm"} {
		flag := installCmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("expected --%s flag on install", name)
			continue
		}
		if flag.DefValue != "false" {
			t.Errorf("--%s default = %s, want false", name, flag.DefValue)
		}
	}
}

func TestGetDBPathCustom(t *testing.T) {
	oldDBPath := dbPath
	dbPath = "/tmp/archsetup-test.db"
	defer func() { dbPath = oldDBPath }()

	path, err := getDBPath()
	if err != nil {
		t.Fatalf("getDBPath failed: %v", err)
	}
	if path != "/tmp/archsetup-test.db" {
		t.Errorf("path = %q, want the flag value", path)
	}
}

func TestGetDBPathDefault(t *testing.T) {
	oldDBPath := dbPath
	dbPath = ""
	defer func() { dbPath = oldDBPath }()

	t.Setenv("HOME", t.TempDir())

	path, err := getDBPath()
	if err != nil {
		t.Fatalf("getDBPath failed: %v", err)
	}
	if !strings.HasSuffix(path, "archsetup.db") {
		t.Errorf("path = %q, want .../archsetup.db", path)
	}
}
