package world

import (
	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/events"
	"github.com/corsair-league/armada/internal/match"
	"github.com/corsair-league/armada/internal/model"
)

// tickGamesLocked advances every in-progress game, action by action,
// until its next action would start after now or its timer expires.
// Completed games are folded into PastGames and their teams freed back
// to LocationOnPlanet. Callers must hold w.mu.
func (w *World) tickGamesLocked(now clock.Tick) {
	for id, game := range w.Games {
		engine, ok := w.gameEngines[id]
		if !ok {
			engine = match.NewEngine(game.Seed, game.ID)
			w.gameEngines[id] = engine
		}

		for !game.IsOver() {
			last := lastActionEnd(game, game.StartingAt)
			if last > now {
				break
			}
			if !engine.Step(game, w.Players, last) {
				break
			}
		}

		if game.IsOver() {
			w.finishGameLocked(id, game, now)
		}
	}
}

// FinishGame forcibly ends game id at now, regardless of its timer,
// folding it into PastGames and freeing both teams. Used by
// control.QuitGame to apply a forfeit. Callers must hold w.Lock().
func (w *World) FinishGame(id model.GameID, now clock.Tick) {
	if game, ok := w.Games[id]; ok {
		w.finishGameLocked(id, game, now)
	}
}

func lastActionEnd(game *model.Game, start clock.Tick) clock.Tick {
	if len(game.ActionResults) == 0 {
		return start
	}
	return game.ActionResults[len(game.ActionResults)-1].EndAt
}

func (w *World) finishGameLocked(id model.GameID, game *model.Game, now clock.Tick) {
	w.PastGames = append(w.PastGames, game.Summarize())
	delete(w.Games, id)
	delete(w.gameEngines, id)

	for _, teamID := range []model.TeamID{game.Home.TeamID, game.Away.TeamID} {
		team, ok := w.Teams[teamID]
		if !ok {
			continue
		}
		team.CurrentGame = nil
		team.CurrentLocation = model.TeamLocation{
			Kind:   model.LocationOnPlanet,
			Planet: game.Location,
		}
		team.Touch()
		w.MarkDirty()
	}

	w.events.Push(events.PopupMessage{
		Tick:   now,
		Kind:   events.KindGameCompleted,
		GameID: id,
	})
}
