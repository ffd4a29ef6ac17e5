package draft

import (
	"auction-draft-service/internal/apperr"
	"auction-draft-service/internal/domain/draft"
)

// applyBid debits a winning bid from the named team's budget and returns the
// team index. Budgets may go negative; leagues handle overspend socially, the
// ledger only keeps the arithmetic honest.
func applyBid(session *draft.Session, teamName string, amount float64) (int, error) {
	idx := session.TeamIndex(teamName)
	if idx < 0 {
		return -1, apperr.NotFound("team", teamName)
	}
	session.Teams[idx].Budget -= amount
	return idx, nil
}

// syncMyTeamBudget mirrors the operator's remaining budget onto the session
// so clients get it without scanning teams.
func syncMyTeamBudget(session *draft.Session) {
	if team, ok := session.MyTeam(); ok {
		session.MyTeamBudget = team.Budget
	}
}
