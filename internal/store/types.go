package store

import "time"

// Run is one provisioning invocation.
type Run struct {
	ID           int64
	StartedAt    time.Time
	FinishedAt   time.Time
	OnlyConfig   bool
	GroupsTotal  int
	GroupsFailed int
}

// RunGroup is the persisted result of one package group within a run.
type RunGroup struct {
	ID               int64
	RunID            int64
	Position         int
	Name             string
	AlreadyInstalled int
	Attempted        int
	Succeeded        int
	ExitCode         int
	DurationSecs     int64
	Status           string
	Installer        string
}
