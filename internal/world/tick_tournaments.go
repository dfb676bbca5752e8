package world

import (
	"sort"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/events"
	"github.com/corsair-league/armada/internal/match"
	"github.com/corsair-league/armada/internal/model"
)

// tickTournamentsLocked advances every tournament's registration state
// machine and bracket progression. Callers must hold w.mu.
func (w *World) tickTournamentsLocked(now clock.Tick) {
	for id, t := range w.Tournaments {
		switch t.State(now) {
		case model.TournamentStateSyncing:
			w.cancelUnconfirmedLocked(t)
			if len(t.Bracket) == 0 {
				w.buildFirstRoundLocked(t, now)
			}
		case model.TournamentStateStarted:
			w.advanceBracketLocked(t, now)
		case model.TournamentStateEnded:
			w.announceTournamentEndLocked(id, t, now)
		}
	}
}

// cancelUnconfirmedLocked drops any team that registered but never
// confirmed by the confirmation deadline.
func (w *World) cancelUnconfirmedLocked(t *model.Tournament) {
	for teamID := range t.Participants {
		team, ok := w.Teams[teamID]
		if !ok || team.TournamentRegistration.State == model.RegistrationConfirmed {
			continue
		}
		t.Unregister(teamID)
		team.TournamentRegistration = model.TournamentRegistration{}
		team.Touch()
	}
}

// buildFirstRoundLocked seeds round 0 of the bracket from confirmed
// participants, ordered by registration-time reputation (highest
// first) and paired adjacently. An odd team out is dropped from the
// bracket (its registration reverted) rather than given a bye. Later
// rounds pair winners in order, so a round with an odd number of games
// leaves its last winner out of the next round.
func (w *World) buildFirstRoundLocked(t *model.Tournament, now clock.Tick) {
	var confirmed []model.TournamentParticipant
	for teamID, participant := range t.Participants {
		if team, ok := w.Teams[teamID]; ok && team.TournamentRegistration.State == model.RegistrationConfirmed {
			confirmed = append(confirmed, participant)
		}
	}
	sort.Slice(confirmed, func(i, j int) bool { return confirmed[i].Seed > confirmed[j].Seed })

	if len(confirmed)%2 != 0 && len(confirmed) > 0 {
		dropped := confirmed[len(confirmed)-1]
		t.Unregister(dropped.TeamID)
		if team, ok := w.Teams[dropped.TeamID]; ok {
			team.TournamentRegistration = model.TournamentRegistration{}
			team.Touch()
		}
		confirmed = confirmed[:len(confirmed)-1]
	}
	if len(confirmed) < 2 {
		return
	}

	round := make([]model.GameID, 0, len(confirmed)/2)
	for i := 0; i+1 < len(confirmed); i += 2 {
		gameID := w.createTournamentGameLocked(t, confirmed[i].TeamID, confirmed[i+1].TeamID, now)
		round = append(round, gameID)
	}
	t.Bracket = append(t.Bracket, round)

	w.events.Push(events.PopupMessage{
		Tick: now,
		Kind: events.KindTournamentTransition,
	})
}

// advanceBracketLocked builds the next round once every game in the
// current round has finished, pairing winners in order.
func (w *World) advanceBracketLocked(t *model.Tournament, now clock.Tick) {
	if len(t.Bracket) == 0 {
		return
	}
	current := t.Bracket[len(t.Bracket)-1]
	if len(current) <= 1 {
		return // final round: nothing further to build
	}

	winners := make([]model.TeamID, 0, len(current))
	for _, gameID := range current {
		winner, ok := w.gameWinnerLocked(gameID)
		if !ok {
			return // round still in progress
		}
		winners = append(winners, winner)
	}

	next := make([]model.GameID, 0, len(winners)/2)
	for i := 0; i+1 < len(winners); i += 2 {
		gameID := w.createTournamentGameLocked(t, winners[i], winners[i+1], now)
		next = append(next, gameID)
	}
	t.Bracket = append(t.Bracket, next)

	w.events.Push(events.PopupMessage{
		Tick: now,
		Kind: events.KindTournamentTransition,
	})
}

func (w *World) gameWinnerLocked(id model.GameID) (model.TeamID, bool) {
	for _, summary := range w.PastGames {
		if summary.ID != id {
			continue
		}
		if summary.HomeScore >= summary.AwayScore {
			return summary.HomeTeamID, true
		}
		return summary.AwayTeamID, true
	}
	return model.TeamID{}, false
}

func (w *World) announceTournamentEndLocked(id model.TournamentID, t *model.Tournament, now clock.Tick) {
	if w.tournamentsEnded[id] {
		return
	}

	if len(t.Bracket) == 0 {
		return
	}
	final := t.Bracket[len(t.Bracket)-1]
	if len(final) != 1 {
		return
	}
	winner, ok := w.gameWinnerLocked(final[0])
	if !ok {
		return // final game still in progress
	}
	w.tournamentsEnded[id] = true
	if team, ok := w.Teams[winner]; ok {
		team.TournamentsWon = append(team.TournamentsWon, id)
		team.Touch()
	}

	w.events.Push(events.PopupMessage{
		Tick:   now,
		Kind:   events.KindTournamentTransition,
		TeamID: winner,
	})
}

// createTournamentGameLocked builds a Game between two teams' current
// rosters at the tournament's planet and registers it in w.Games, in
// the same shape tick_games.go expects to advance.
func (w *World) createTournamentGameLocked(t *model.Tournament, homeID, awayID model.TeamID, now clock.Tick) model.GameID {
	gameID := model.NewGameID()
	home := w.buildTeamInGameLocked(homeID)
	away := w.buildTeamInGameLocked(awayID)

	seed := w.MasterSeed ^ planetSeedMix(model.PlanetID(t.ID)) ^ uint64(len(t.Bracket))

	game := &model.Game{
		ID:         gameID,
		Home:       home,
		Away:       away,
		Location:   t.Planet,
		StartingAt: now,
		Possession: model.PossessionHome,
		Seed:       seed,
	}
	w.Games[gameID] = game

	for _, id := range []model.TeamID{homeID, awayID} {
		if team, ok := w.Teams[id]; ok {
			team.CurrentGame = &gameID
			team.CurrentLocation = model.TeamLocation{Kind: model.LocationPlayingGame, Planet: t.Planet, Game: gameID}
			team.Touch()
		}
	}
	w.MarkDirty()
	return gameID
}

func (w *World) buildTeamInGameLocked(teamID model.TeamID) model.TeamInGame {
	team := w.Teams[teamID]
	var roster []*model.Player
	for _, id := range team.PlayerIDs {
		if p, ok := w.Players[id]; ok {
			roster = append(roster, p)
		}
	}
	lineup := match.BestLineup(roster)

	return model.TeamInGame{
		TeamID:         teamID,
		Name:           team.Name,
		PeerID:         team.PeerID,
		Reputation:     team.Reputation,
		Tactic:         team.Tactic,
		StartingLineup: lineup.Starters,
		Bench:          lineup.Bench,
		OnCourt:        lineup.Starters,
		Stats:          map[model.PlayerID]*model.StatLine{},
	}
}
