package world

import (
	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/events"
	"github.com/corsair-league/armada/internal/model"
)

// tickTravelLocked advances every team in Travelling/Exploring/
// OnSpaceAdventure. Fuel is not consumed here; it was debited at travel
// start by the control-surface callback. Callers must hold w.mu.
func (w *World) tickTravelLocked(now clock.Tick) {
	for _, team := range w.Teams {
		switch team.CurrentLocation.Kind {
		case model.LocationTravelling:
			w.advanceTravel(team, now)
		case model.LocationExploring:
			w.advanceExploration(team, now)
		case model.LocationOnSpaceAdventure:
			// Progress is driven by tickSpaceAdventureLocked; this tick
			// only needs to watch for an externally-ended adventure,
			// which control.EndSpaceAdventure handles directly.
		}
	}
}

// travelDue reports whether started+duration (both expressed as Tick,
// Duration holding a raw millisecond span rather than a point in time)
// has passed at now.
func travelDue(started, duration, now clock.Tick) bool {
	return started+duration <= now
}

func (w *World) advanceTravel(team *model.Team, now clock.Tick) {
	loc := team.CurrentLocation
	if !travelDue(loc.Started, loc.Duration, now) {
		return
	}
	destination := loc.To
	team.CurrentLocation = model.TeamLocation{
		Kind:   model.LocationOnPlanet,
		Planet: destination,
	}
	team.Touch()
	w.MarkDirty()

	if planet, ok := w.Planets[destination]; ok {
		planet.TeamsPresent = appendUniqueTeam(planet.TeamsPresent, team.ID)
	}
	if origin, ok := w.Planets[loc.From]; ok {
		origin.TeamsPresent = removeTeam(origin.TeamsPresent, team.ID)
	}

	w.events.Push(events.PopupMessage{
		Tick:     now,
		Kind:     events.KindLanding,
		TeamID:   team.ID,
		PlanetID: destination,
	})
}

func (w *World) advanceExploration(team *model.Team, now clock.Tick) {
	loc := team.CurrentLocation
	if !travelDue(loc.Started, loc.Duration, now) {
		return
	}
	team.CurrentLocation = model.TeamLocation{
		Kind:   model.LocationOnPlanet,
		Planet: loc.Planet,
	}
	team.Touch()
	w.MarkDirty()

	w.events.Push(events.PopupMessage{
		Tick:     now,
		Kind:     events.KindExplorationComplete,
		TeamID:   team.ID,
		PlanetID: loc.Planet,
	})
}

func appendUniqueTeam(ids []model.TeamID, id model.TeamID) []model.TeamID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeTeam(ids []model.TeamID, id model.TeamID) []model.TeamID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
