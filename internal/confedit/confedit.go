// Package confedit provides idempotent editing of small system
// configuration files (modprobe blacklists, /etc/environment, the
// mkinitcpio MODULES list). Every operation is safe to apply any number
// of times: the final file content is the same whether it runs once or
// twice, and each call reports whether it actually changed anything.
package confedit

import (
	"fmt"
	"os"
	"strings"
)

// EnsureLine appends line to the file at path unless an identical line
// (ignoring surrounding whitespace) is already present. The file is
// created with the given mode if it does not exist.
// Returns changed=true only when the file was modified.
func EnsureLine(path, line string, mode os.FileMode) (changed bool, err error) {
	want := strings.TrimSpace(line)
	if want == "" {
		return false, fmt.Errorf("refusing to ensure empty line in %s", path)
	}

	content, readErr := os.ReadFile(path)
	if readErr != nil && !os.IsNotExist(readErr) {
		return false, fmt.Errorf("cannot read %s: %w", path, readErr)
	}

	for _, existing := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(existing) == want {
			return false, nil
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, mode)
	if err != nil {
		return false, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	// Keep the file newline-terminated regardless of its prior state.
	prefix := ""
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		prefix = "\n"
	}

	if _, err := fmt.Fprintf(f, "%s%s\n", prefix, want); err != nil {
		return false, fmt.Errorf("cannot write to %s: %w", path, err)
	}

	return true, nil
}

// EnsureAbsent removes every line whose trimmed content equals line.
// A missing file counts as already-absent.
func EnsureAbsent(path, line string) (changed bool, err error) {
	want := strings.TrimSpace(line)

	content, readErr := os.ReadFile(path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return false, nil
		}
		return false, fmt.Errorf("cannot read %s: %w", path, readErr)
	}

	lines := strings.Split(string(content), "\n")
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == want {
			changed = true
			continue
		}
		kept = append(kept, l)
	}

	if !changed {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("cannot stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(strings.Join(kept, "\n")), info.Mode()); err != nil {
		return false, fmt.Errorf("cannot rewrite %s: %w", path, err)
	}

	return true, nil
}

// BackupOnce copies the file at path to path+".bak" unless that backup
// already exists. A second provisioning run therefore never clobbers the
// backup taken by the first. A missing source file is not an error; there
// is simply nothing to back up.
func BackupOnce(path string) (backedUp bool, err error) {
	backupPath := path + ".bak"

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("cannot stat backup %s: %w", backupPath, err)
	}

	content, readErr := os.ReadFile(path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return false, nil
		}
		return false, fmt.Errorf("cannot read %s: %w", path, readErr)
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("cannot stat %s: %w", path, err)
	}

	if err := os.WriteFile(backupPath, content, info.Mode()); err != nil {
		return false, fmt.Errorf("cannot write backup %s: %w", backupPath, err)
	}

	return true, nil
}
