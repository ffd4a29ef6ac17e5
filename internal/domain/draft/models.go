package draft

// Team is one franchise in a draft session. Budget is the remaining spend
// capacity; it is mutated only by the budget ledger when picks are recorded.
type Team struct {
	Name     string  `json:"name"`
	Budget   float64 `json:"budget"`
	IsMyTeam bool    `json:"isMyTeam"`
}

// Pick is one recorded draft event. PickNumber is 1-based, assigned in
// insertion order, and never renumbered after the fact.
type Pick struct {
	PlayerName    string  `json:"playerName"`
	BidAmount     float64 `json:"bidAmount"`
	PickNumber    int     `json:"pickNumber"`
	Round         int     `json:"round"`
	IsMyPick      bool    `json:"isMyPick"`
	DraftedByTeam string  `json:"draftedByTeam"`
}

// Session is one complete draft event's accumulated state, addressed by an
// opaque key. Picks are append-only. TotalPicks is the draft's capacity
// (teams times roster size), not the running pick count.
type Session struct {
	Picks           []Pick  `json:"picks"`
	Teams           []Team  `json:"teams"`
	TotalPicks      int     `json:"totalPicks"`
	IsComplete      bool    `json:"isComplete"`
	TeamsConfigured bool    `json:"teamsConfigured"`
	SyncedAt        string  `json:"syncedAt"`
	MyTeamBudget    float64 `json:"myTeamBudget"`
}

// TeamIndex returns the index of the team with the given name, or -1.
func (s *Session) TeamIndex(name string) int {
	for i := range s.Teams {
		if s.Teams[i].Name == name {
			return i
		}
	}
	return -1
}

// MyTeam returns the operator's team when one is flagged.
func (s *Session) MyTeam() (*Team, bool) {
	for i := range s.Teams {
		if s.Teams[i].IsMyTeam {
			return &s.Teams[i], true
		}
	}
	return nil, false
}

// MyPicks returns the picks recorded for the operator's roster.
func (s *Session) MyPicks() []Pick {
	var picks []Pick
	for _, p := range s.Picks {
		if p.IsMyPick {
			picks = append(picks, p)
		}
	}
	return picks
}

// DraftedNames returns the player names of every recorded pick, in pick order.
func (s *Session) DraftedNames() []string {
	names := make([]string, 0, len(s.Picks))
	for _, p := range s.Picks {
		names = append(names, p.PlayerName)
	}
	return names
}

// Empty returns the well-defined default session served for keys that have
// never been initialized. Callers branch on TeamsConfigured to show setup.
func Empty() Session {
	return Session{
		Picks: []Pick{},
		Teams: []Team{},
	}
}
