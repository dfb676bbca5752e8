package control

import (
	"encoding/json"
	"net/http"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/model"
	"github.com/corsair-league/armada/internal/space"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func clockTick(v uint64) clock.Tick { return clock.Tick(v) }

// Handler methods for routerHandlers. Each decodes its request body (if
// any), calls the matching action in actions.go, and reports a Denial
// as a 409 rather than a 4xx/5xx split by cause -- the caller reads the
// Denial string to decide what to show the user.

func (h *routerHandlers) handleGoToTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	team, d := GoToTeam(h.world, teamID)
	if !d.Allowed() {
		writeDenial(w, d)
		return
	}
	writeJSON(w, team)
}

func (h *routerHandlers) handleHirePlayer(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		PlayerID string `json:"playerId"`
	}
	if !decode(w, r, &req) {
		return
	}
	playerID, ok := parsePlayerID(w, req.PlayerID)
	if !ok {
		return
	}
	writeResult(w, HirePlayer(h.world, teamID, playerID))
}

func (h *routerHandlers) handleReleasePlayer(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		PlayerID string `json:"playerId"`
	}
	if !decode(w, r, &req) {
		return
	}
	playerID, ok := parsePlayerID(w, req.PlayerID)
	if !ok {
		return
	}
	writeResult(w, ReleasePlayer(h.world, teamID, playerID))
}

func (h *routerHandlers) handleSetCrewRole(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		PlayerID string `json:"playerId"`
		Role     int    `json:"role"`
	}
	if !decode(w, r, &req) {
		return
	}
	playerID, ok := parsePlayerID(w, req.PlayerID)
	if !ok {
		return
	}
	writeResult(w, SetCrewRole(h.world, teamID, playerID, model.CrewRole(req.Role)))
}

func (h *routerHandlers) handleTravelToPlanet(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		Destination string `json:"destination"`
		Duration    uint64 `json:"duration"`
		Teleport    bool   `json:"teleport"`
	}
	if !decode(w, r, &req) {
		return
	}
	destination, ok := parsePlanetID(w, req.Destination)
	if !ok {
		return
	}
	writeResult(w, TravelToPlanet(h.world, teamID, destination, h.now(), clockTick(req.Duration), req.Teleport))
}

func (h *routerHandlers) handleExploreAroundPlanet(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		PlanetID string `json:"planetId"`
		Duration uint64 `json:"duration"`
	}
	if !decode(w, r, &req) {
		return
	}
	planetID, ok := parsePlanetID(w, req.PlanetID)
	if !ok {
		return
	}
	writeResult(w, ExploreAroundPlanet(h.world, teamID, planetID, h.now(), clockTick(req.Duration)))
}

func (h *routerHandlers) handleChallengeTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		TargetID string `json:"targetId"`
	}
	if !decode(w, r, &req) {
		return
	}
	targetID, ok := parseTeamID(w, req.TargetID)
	if !ok {
		return
	}
	gameID, d := ChallengeTeam(h.world, teamID, targetID, h.now())
	if !d.Allowed() {
		writeDenial(w, d)
		return
	}
	writeJSON(w, map[string]any{"gameId": gameID})
}

func (h *routerHandlers) handleAcceptChallenge(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		ProposerID string `json:"proposerId"`
	}
	if !decode(w, r, &req) {
		return
	}
	proposerID, ok := parseTeamID(w, req.ProposerID)
	if !ok {
		return
	}
	gameID, d := AcceptChallenge(h.world, teamID, proposerID, h.now())
	if !d.Allowed() {
		writeDenial(w, d)
		return
	}
	writeJSON(w, map[string]any{"gameId": gameID})
}

func (h *routerHandlers) handleCreateTradeProposal(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		ProposerPlayerID string `json:"proposerPlayerId"`
		TargetTeamID     string `json:"targetTeamId"`
		TargetPlayerID   string `json:"targetPlayerId"`
	}
	if !decode(w, r, &req) {
		return
	}
	proposerPlayerID, ok := parsePlayerID(w, req.ProposerPlayerID)
	if !ok {
		return
	}
	targetTeamID, ok := parseTeamID(w, req.TargetTeamID)
	if !ok {
		return
	}
	targetPlayerID, ok := parsePlayerID(w, req.TargetPlayerID)
	if !ok {
		return
	}
	writeResult(w, CreateTradeProposal(h.world, teamID, proposerPlayerID, targetTeamID, targetPlayerID))
}

func (h *routerHandlers) handleTradeResource(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		Resource int `json:"resource"`
		Amount   int `json:"amount"`
		UnitCost int `json:"unitCost"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, TradeResource(h.world, teamID, model.Resource(req.Resource), req.Amount, req.UnitCost))
}

func (h *routerHandlers) handleUpgradeSpaceship(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		Component int `json:"component"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, UpgradeSpaceship(h.world, teamID, model.ComponentKind(req.Component), h.now()))
}

func (h *routerHandlers) handleUpgradeAsteroid(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		AsteroidID string         `json:"asteroidId"`
		Upgrade    int            `json:"upgrade"`
		Cost       map[string]int `json:"cost"`
	}
	if !decode(w, r, &req) {
		return
	}
	asteroidID, ok := parsePlanetID(w, req.AsteroidID)
	if !ok {
		return
	}
	writeResult(w, UpgradeAsteroid(h.world, teamID, asteroidID, model.PlanetUpgrade(req.Upgrade), decodeCost(req.Cost)))
}

func (h *routerHandlers) handleBuildSpaceCove(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		AsteroidID string         `json:"asteroidId"`
		Cost       map[string]int `json:"cost"`
	}
	if !decode(w, r, &req) {
		return
	}
	asteroidID, ok := parsePlanetID(w, req.AsteroidID)
	if !ok {
		return
	}
	writeResult(w, BuildSpaceCove(h.world, teamID, asteroidID, decodeCost(req.Cost)))
}

func (h *routerHandlers) handleSetTeamTactic(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		Tactic int `json:"tactic"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, SetTeamTactic(h.world, teamID, model.Tactic(req.Tactic)))
}

func (h *routerHandlers) handleNextTrainingFocus(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	writeResult(w, NextTrainingFocus(h.world, teamID))
}

func (h *routerHandlers) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, SendMessage(h.world, teamID, req.Text))
}

func (h *routerHandlers) handleQuitGame(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	writeResult(w, QuitGame(h.world, teamID, h.now()))
}

func (h *routerHandlers) handleStartSpaceAdventure(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	var req struct {
		Seed int64 `json:"seed"`
	}
	if !decode(w, r, &req) {
		return
	}
	scene, d := StartSpaceAdventure(h.world, teamID, req.Seed)
	if !d.Allowed() {
		writeDenial(w, d)
		return
	}
	h.adventures.put(teamID, scene)
	writeJSON(w, map[string]any{"started": true})
}

func (h *routerHandlers) handleSpaceAdventureInput(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	scene, ok := h.adventures.get(teamID)
	if !ok {
		writeDenial(w, DenyNoActiveAdventure)
		return
	}
	var req struct {
		Input int `json:"input"`
	}
	if !decode(w, r, &req) {
		return
	}
	scene.QueueInput(space.PlayerInput(req.Input))
	writeJSON(w, map[string]any{"queued": true})
}

func (h *routerHandlers) handleSpaceAdventureStatus(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	scene, ok := h.adventures.get(teamID)
	if !ok {
		writeDenial(w, DenyNoActiveAdventure)
		return
	}
	writeJSON(w, map[string]any{
		"active": scene.Active(),
		"result": scene.Result(),
	})
}

func (h *routerHandlers) handleFinishSpaceAdventure(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	scene, ok := h.adventures.get(teamID)
	if !ok {
		writeDenial(w, DenyNoActiveAdventure)
		return
	}
	if scene.Active() {
		writeError(w, "space adventure still running", http.StatusConflict)
		return
	}
	d := EndSpaceAdventure(h.world, teamID, scene.Result(), h.now())
	h.adventures.delete(teamID)
	writeResult(w, d)
}

// --- request/response plumbing ---

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func pathTeamID(w http.ResponseWriter, r *http.Request) (model.TeamID, bool) {
	return parseTeamID(w, chi.URLParam(r, "teamID"))
}

func parseTeamID(w http.ResponseWriter, s string) (model.TeamID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		writeError(w, "invalid team id", http.StatusBadRequest)
		return model.TeamID{}, false
	}
	return model.TeamID(id), true
}

func parsePlayerID(w http.ResponseWriter, s string) (model.PlayerID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		writeError(w, "invalid player id", http.StatusBadRequest)
		return model.PlayerID{}, false
	}
	return model.PlayerID(id), true
}

func parsePlanetID(w http.ResponseWriter, s string) (model.PlanetID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		writeError(w, "invalid planet id", http.StatusBadRequest)
		return model.PlanetID{}, false
	}
	return model.PlanetID(id), true
}

func decodeCost(raw map[string]int) map[model.Resource]int {
	if raw == nil {
		return nil
	}
	cost := make(map[model.Resource]int, len(raw))
	names := map[string]model.Resource{
		"satoshi": model.ResourceSatoshi,
		"gold":    model.ResourceGold,
		"scraps":  model.ResourceScraps,
		"rum":     model.ResourceRum,
		"fuel":    model.ResourceFuel,
	}
	for name, amount := range raw {
		if resource, ok := names[name]; ok {
			cost[resource] = amount
		}
	}
	return cost
}

func writeResult(w http.ResponseWriter, d Denial) {
	if !d.Allowed() {
		writeDenial(w, d)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func writeDenial(w http.ResponseWriter, d Denial) {
	writeError(w, d.String(), http.StatusConflict)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
