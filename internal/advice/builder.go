package advice

import (
	"fmt"
	"strings"

	"auction-draft-service/internal/config"
	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/domain/draft"
	"auction-draft-service/internal/names"
)

const (
	// maxCandidates caps how many available players go into the prompt; the
	// catalog is value-ordered so the top slice is the interesting one.
	maxCandidates = 30

	// maxDraftedNames caps the drafted list so late-draft prompts stay small.
	maxDraftedNames = 50

	unknownPosition = "Unknown"
)

// BuildPrompt assembles the advice request text from the current draft
// context: budget, roster composition so far, who is gone and the best
// remaining candidates. all is the full catalog (used to resolve positions
// of drafted players); available is the undrafted remainder.
func BuildPrompt(all, available []catalog.CanonicalPlayer, session draft.Session, league config.LeagueConfig) string {
	var b strings.Builder

	b.WriteString("You are an auction draft expert for fantasy basketball.\n\n")
	b.WriteString(fmt.Sprintf("League: %d roster spots per team, $%.0f starting budget.\n", league.RosterSize, league.StartingBudget))
	if shape := rosterShape(league.Slots); shape != "" {
		b.WriteString("Roster shape: " + shape + "\n")
	}
	b.WriteString(fmt.Sprintf("My remaining budget: $%.2f\n", session.MyTeamBudget))

	myPicks := session.MyPicks()
	b.WriteString(fmt.Sprintf("Roster spots filled: %d of %d\n\n", len(myPicks), league.RosterSize))

	if len(myPicks) > 0 {
		b.WriteString("My roster so far:\n")
		for _, pick := range myPicks {
			b.WriteString(fmt.Sprintf("- %s (%s): $%.0f\n", pick.PlayerName, positionOf(pick.PlayerName, all), pick.BidAmount))
		}
		b.WriteString("\n")
	}

	drafted := session.DraftedNames()
	if len(drafted) > maxDraftedNames {
		drafted = drafted[len(drafted)-maxDraftedNames:]
	}
	if len(drafted) > 0 {
		b.WriteString("Already drafted (unavailable): ")
		b.WriteString(strings.Join(drafted, ", "))
		b.WriteString("\n\n")
	}

	candidates := available
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	b.WriteString("Best available players:\n")
	for _, p := range candidates {
		pos := p.Position
		if pos == "" {
			pos = unknownPosition
		}
		b.WriteString(fmt.Sprintf("- %s (%s, %s): avg $%.1f\n", p.Name, pos, p.Team, p.AverageValue))
	}

	b.WriteString("\nRecommend who to target next and the most I should bid on each.\n")
	b.WriteString("Respond with JSON in this structure:\n")
	b.WriteString(`{"recommendations":[{"name":"Player Name","reasoning":"short explanation","suggestedPrice":42}]}`)
	b.WriteString("\n")

	return b.String()
}

// rosterShape renders the league's slot configuration as "PG x1, ... Bench x3".
func rosterShape(slots []config.RosterSlot) string {
	if len(slots) == 0 {
		return ""
	}
	parts := make([]string, 0, len(slots))
	for _, slot := range slots {
		parts = append(parts, fmt.Sprintf("%s x%d", slot.Position, slot.Count))
	}
	return strings.Join(parts, ", ")
}

// positionOf resolves a drafted name back to a catalog position. Picks are
// free text, so unresolved names report Unknown rather than guessing.
func positionOf(pickName string, players []catalog.CanonicalPlayer) string {
	for _, p := range players {
		if names.Match(p.Name, pickName) && p.Position != "" {
			return p.Position
		}
	}
	return unknownPosition
}
