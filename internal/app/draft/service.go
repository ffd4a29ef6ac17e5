package draft

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"auction-draft-service/internal/apperr"
	"auction-draft-service/internal/config"
	"auction-draft-service/internal/domain/draft"
	"auction-draft-service/internal/logging"
	"auction-draft-service/internal/metrics"
	"auction-draft-service/internal/store"
	"auction-draft-service/internal/timeutil"
)

// TeamSetup is the caller-supplied description of one franchise when a
// session's teams are configured.
type TeamSetup struct {
	Name string `json:"name"`
	// Budget is optional; nil means the league's starting budget. An
	// explicit 0 is kept as-is.
	Budget   *float64 `json:"budget,omitempty"`
	IsMyTeam bool     `json:"isMyTeam,omitempty"`
}

// PickRequest is one recorded auction win.
type PickRequest struct {
	PlayerName string  `json:"playerName"`
	BidAmount  float64 `json:"bidAmount"`
	TeamName   string  `json:"teamName"`
}

// Service owns draft session state transitions. All mutations for one session
// key are serialized; different sessions proceed independently.
type Service struct {
	store    store.SessionStore
	league   config.LeagueConfig
	logger   *slog.Logger
	recorder *metrics.Recorder

	newKey func() string
	now    func() string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService constructs a Service over the given session store.
func NewService(sessions store.SessionStore, league config.LeagueConfig, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		store:    sessions,
		league:   league,
		logger:   logger,
		recorder: recorder,
		newKey:   uuid.NewString,
		now:      func() string { return timeutil.FormatStamp(timeutil.Now()) },
		locks:    make(map[string]*sync.Mutex),
	}
}

// Initialize configures the teams for a session, replacing any previous
// state. An empty key allocates a fresh session key. Teams with no explicit
// budget start at the league's starting budget.
func (s *Service) Initialize(key string, teams []TeamSetup) (string, draft.Session, error) {
	if err := validateTeams(teams); err != nil {
		return "", draft.Session{}, err
	}
	if key == "" {
		key = s.newKey()
	}

	unlock := s.lockSession(key)
	defer unlock()

	session := draft.Empty()
	session.Teams = make([]draft.Team, 0, len(teams))
	for _, t := range teams {
		budget := s.league.StartingBudget
		if t.Budget != nil {
			budget = *t.Budget
		}
		session.Teams = append(session.Teams, draft.Team{
			Name:     strings.TrimSpace(t.Name),
			Budget:   budget,
			IsMyTeam: t.IsMyTeam,
		})
	}
	session.TeamsConfigured = true
	session.TotalPicks = len(session.Teams) * s.league.RosterSize
	session.SyncedAt = s.now()
	syncMyTeamBudget(&session)

	if err := s.store.Save(key, session); err != nil {
		return "", draft.Session{}, err
	}

	logging.Info(s.logger, "session initialized",
		slog.String(logging.FieldSession, key),
		slog.Int("teams", len(session.Teams)),
	)
	return key, session, nil
}

// RecordPick appends one auction win to a session and debits the winning
// team's budget. Invalid picks leave the session untouched.
func (s *Service) RecordPick(key string, req PickRequest) (draft.Session, error) {
	if err := validatePick(req); err != nil {
		return draft.Session{}, err
	}

	unlock := s.lockSession(key)
	defer unlock()

	session, ok, err := s.store.Load(key)
	if err != nil {
		return draft.Session{}, err
	}
	if !ok || !session.TeamsConfigured {
		return draft.Session{}, apperr.Validation("session", "teams must be configured before picks")
	}

	teamName := strings.TrimSpace(req.TeamName)

	// Affordability is enforced for the operator's own team only; opposing
	// budgets are trusted as entered and may go negative.
	if idx := session.TeamIndex(teamName); idx >= 0 && session.Teams[idx].IsMyTeam && req.BidAmount > session.Teams[idx].Budget {
		return draft.Session{}, apperr.Validation("bidAmount", "bid exceeds your remaining budget")
	}

	teamIdx, err := applyBid(&session, teamName, req.BidAmount)
	if err != nil {
		return draft.Session{}, err
	}

	pickNumber := len(session.Picks) + 1
	session.Picks = append(session.Picks, draft.Pick{
		PlayerName:    strings.TrimSpace(req.PlayerName),
		BidAmount:     req.BidAmount,
		PickNumber:    pickNumber,
		Round:         round(pickNumber, len(session.Teams)),
		IsMyPick:      session.Teams[teamIdx].IsMyTeam,
		DraftedByTeam: session.Teams[teamIdx].Name,
	})
	session.IsComplete = len(session.Picks) >= session.TotalPicks
	session.SyncedAt = s.now()
	syncMyTeamBudget(&session)

	if err := s.store.Save(key, session); err != nil {
		return draft.Session{}, err
	}

	s.recorder.RecordPick()
	logging.Info(s.logger, "pick recorded",
		slog.String(logging.FieldSession, key),
		slog.String(logging.FieldPlayer, req.PlayerName),
		slog.String(logging.FieldTeam, session.Teams[teamIdx].Name),
		slog.Int("pick_number", pickNumber),
	)
	return session, nil
}

// State returns a session's current state. Unknown keys get the well-defined
// empty session rather than an error, so clients can poll before setup.
func (s *Service) State(key string) (draft.Session, error) {
	session, ok, err := s.store.Load(key)
	if err != nil {
		return draft.Session{}, err
	}
	if !ok {
		return draft.Empty(), nil
	}
	return session, nil
}

// Reset discards a session's state. Resetting an unknown key succeeds.
func (s *Service) Reset(key string) error {
	unlock := s.lockSession(key)
	defer unlock()

	if err := s.store.Delete(key); err != nil {
		return err
	}
	logging.Info(s.logger, "session reset", slog.String(logging.FieldSession, key))
	return nil
}

// Keys lists every persisted session key.
func (s *Service) Keys() ([]string, error) {
	return s.store.Keys()
}

func (s *Service) lockSession(key string) func() {
	s.mu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func validateTeams(teams []TeamSetup) error {
	if len(teams) == 0 {
		return apperr.Validation("teams", "at least one team required")
	}
	seen := make(map[string]bool, len(teams))
	myTeams := 0
	for _, t := range teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return apperr.Validation("teams", "team name required")
		}
		if seen[name] {
			return apperr.Validation("teams", "duplicate team name "+name)
		}
		seen[name] = true
		if t.Budget != nil && *t.Budget < 0 {
			return apperr.Validation("teams", "budget must not be negative")
		}
		if t.IsMyTeam {
			myTeams++
		}
	}
	if myTeams > 1 {
		return apperr.Validation("teams", "at most one team may be yours")
	}
	return nil
}

func validatePick(req PickRequest) error {
	if strings.TrimSpace(req.PlayerName) == "" {
		return apperr.Validation("playerName", "required")
	}
	if strings.TrimSpace(req.TeamName) == "" {
		return apperr.Validation("teamName", "required")
	}
	if req.BidAmount < 0 {
		return apperr.Validation("bidAmount", "must not be negative")
	}
	return nil
}

// round computes the 1-based auction round for a pick: one round is one pick
// per team.
func round(pickNumber, teamCount int) int {
	if teamCount <= 0 {
		return 1
	}
	return (pickNumber-1)/teamCount + 1
}
