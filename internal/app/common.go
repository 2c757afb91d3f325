package app

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// getDBPath returns the database path, using the flag value or default.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	archsetupDir := filepath.Join(home, ".archsetup")
	if err := os.MkdirAll(archsetupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archsetup directory: %w", err)
	}

	return filepath.Join(archsetupDir, "archsetup.db"), nil
}

// askConfirm prompts the user for a yes/no answer. Anything but an
// explicit yes declines.
func askConfirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
