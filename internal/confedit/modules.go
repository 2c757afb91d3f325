package confedit

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// modulesLine matches the MODULES array assignment in mkinitcpio.conf,
// with or without parentheses (older configs used MODULES="...").
var modulesLine = regexp.MustCompile(`(?m)^MODULES=[("]?([^)"\n]*)[)"]?[ \t]*$`)

// NormalizeModules rewrites the MODULES=(...) assignment in the file at
// path so that every token in remove is gone and every token in ensure is
// present exactly once, in the order given. It does not assume anything
// about the prior formatting: tokens already present are kept in place,
// duplicates are collapsed, repeated MODULES assignments are merged into
// the first one, and a missing MODULES line is appended. Returns
// changed=false when the file already has the desired token set.
func NormalizeModules(path string, remove, ensure []string) (changed bool, err error) {
	content, readErr := os.ReadFile(path)
	if readErr != nil && !os.IsNotExist(readErr) {
		return false, fmt.Errorf("cannot read %s: %w", path, readErr)
	}

	text := string(content)
	locs := modulesLine.FindAllStringSubmatchIndex(text, -1)

	var tokens []string
	for _, loc := range locs {
		tokens = append(tokens, strings.Fields(text[loc[2]:loc[3]])...)
	}

	normalized := normalizeTokens(tokens, remove, ensure)
	newLine := fmt.Sprintf("MODULES=(%s)", strings.Join(normalized, " "))

	var rewritten string
	if len(locs) == 0 {
		rewritten = text
		if len(rewritten) > 0 && !strings.HasSuffix(rewritten, "\n") {
			rewritten += "\n"
		}
		rewritten += newLine + "\n"
	} else {
		// The first assignment becomes the canonical one; later
		// assignments would shadow it in shell, so their lines go away.
		var sb strings.Builder
		prev := 0
		for i, loc := range locs {
			sb.WriteString(text[prev:loc[0]])
			if i == 0 {
				sb.WriteString(newLine)
			}
			prev = loc[1]
			if i > 0 && prev < len(text) && text[prev] == '\n' {
				prev++
			}
		}
		sb.WriteString(text[prev:])
		rewritten = sb.String()
	}

	if rewritten == text {
		return false, nil
	}

	mode := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}

	if err := os.WriteFile(path, []byte(rewritten), mode); err != nil {
		return false, fmt.Errorf("cannot rewrite %s: %w", path, err)
	}

	return true, nil
}

// normalizeTokens removes unwanted tokens, collapses duplicates and
// appends any missing ensure tokens at the end.
func normalizeTokens(tokens, remove, ensure []string) []string {
	removeSet := make(map[string]bool, len(remove))
	for _, t := range remove {
		removeSet[t] = true
	}

	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens)+len(ensure))
	for _, t := range tokens {
		if removeSet[t] || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}

	for _, t := range ensure {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}

	return out
}
