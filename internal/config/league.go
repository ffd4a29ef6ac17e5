package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultStartingBudget = 200.0
	defaultRosterSize     = 13
)

// LeagueConfig describes the draft format: budgets, roster shape and the
// position slots each roster must fill.
type LeagueConfig struct {
	StartingBudget float64      `yaml:"starting_budget"`
	RosterSize     int          `yaml:"roster_size"`
	Slots          []RosterSlot `yaml:"slots"`
}

// RosterSlot is one position slot in the fixed roster shape.
type RosterSlot struct {
	Position string `yaml:"position"`
	Count    int    `yaml:"count"`
}

func defaultLeague() LeagueConfig {
	return LeagueConfig{
		StartingBudget: defaultStartingBudget,
		RosterSize:     defaultRosterSize,
		Slots: []RosterSlot{
			{Position: "PG", Count: 1},
			{Position: "SG", Count: 1},
			{Position: "SF", Count: 1},
			{Position: "PF", Count: 1},
			{Position: "C", Count: 1},
			{Position: "G", Count: 1},
			{Position: "F", Count: 1},
			{Position: "UTIL", Count: 3},
			{Position: "Bench", Count: 3},
		},
	}
}

// LoadLeague reads league settings from a YAML file. Missing fields fall back
// to the standard 13-slot, $200 format.
func LoadLeague(path string) (LeagueConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultLeague(), fmt.Errorf("cannot read league config: %w", err)
	}

	league := defaultLeague()
	if err := yaml.Unmarshal(data, &league); err != nil {
		return defaultLeague(), fmt.Errorf("cannot parse league config: %w", err)
	}
	if league.StartingBudget <= 0 {
		league.StartingBudget = defaultStartingBudget
	}
	if league.RosterSize <= 0 {
		league.RosterSize = defaultRosterSize
	}
	return league, nil
}
