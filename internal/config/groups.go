// Package config holds the run options and the declarative package
// group table for the desktop environment.
package config

import "github.com/blackwell-systems/archsetup/internal/batch"

// Options is the explicit run configuration passed into each component;
// there is no ambient global state.
type Options struct {
	// OnlyConfig skips all installation and applies configuration only.
	OnlyConfig bool

	// SkipNVIDIA disables the driver detection and configuration step.
	SkipNVIDIA bool

	// NoConfirm suppresses installer prompts.
	NoConfirm bool

	// DBPath overrides the run-history database location.
	DBPath string
}

// DesktopGroups is the ordered set of package groups a full run
// installs. Groups run strictly in this order; Critical groups abort
// the run on failure, the rest degrade to a reported warning.
func DesktopGroups() []batch.Group {
	return []batch.Group{
		{
			Name:     "xorg",
			Members:  []string{"xorg-server", "xorg-xinit", "xorg-xrandr", "xorg-xsetroot"},
			Critical: true,
		},
		{
			Name:     "window manager",
			Members:  []string{"bspwm", "sxhkd", "polybar", "picom", "dunst", "rofi"},
			Critical: true,
		},
		{
			Name:    "terminal and shell",
			Members: []string{"alacritty", "zsh", "zsh-autosuggestions", "zsh-syntax-highlighting", "starship"},
		},
		{
			Name:    "fonts",
			Members: []string{"ttf-dejavu", "ttf-liberation", "ttf-jetbrains-mono-nerd", "noto-fonts", "noto-fonts-emoji"},
		},
		{
			Name:    "utilities",
			Members: []string{"feh", "maim", "xclip", "playerctl", "brightnessctl", "network-manager-applet"},
		},
		{
			Name:    "applications",
			Members: []string{"firefox", "thunar", "mpv"},
		},
	}
}
