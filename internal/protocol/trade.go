package protocol

import (
	"github.com/corsair-league/armada/internal/control"
	"github.com/corsair-league/armada/internal/world"
)

// HandleTradeProposal is the target's half of a network trade: it only
// validates and builds the TradeAccept; the swap itself is applied by
// HandleTradeAccept, so a proposal that is declined never mutates state.
func HandleTradeProposal(w *world.World, msg TradeProposal) (TradeAccept, TradeDecline, bool) {
	d := control.ValidateTrade(w, msg.ProposerTeamID, msg.ProposerPlayerID, msg.TargetTeamID, msg.TargetPlayerID)
	if !d.Allowed() {
		return TradeAccept{}, TradeDecline{ProposerTeamID: msg.ProposerTeamID, TargetTeamID: msg.TargetTeamID, Reason: string(d)}, false
	}
	return TradeAccept{
		ProposerTeamID:   msg.ProposerTeamID,
		ProposerPlayerID: msg.ProposerPlayerID,
		TargetTeamID:     msg.TargetTeamID,
		TargetPlayerID:   msg.TargetPlayerID,
	}, TradeDecline{}, true
}

// HandleTradeAccept executes the agreed swap on w. The proposer calls
// it when the TradeAccept arrives; the target peer's Hub runs the
// identical call against its own World before sending the TradeAccept.
func HandleTradeAccept(w *world.World, msg TradeAccept) control.Denial {
	return control.ExecuteTrade(w, msg.ProposerTeamID, msg.ProposerPlayerID, msg.TargetTeamID, msg.TargetPlayerID)
}

// HandleTradeDecline is a no-op for the caller: a declined trade leaves
// no pending state in internal/protocol to clean up (unlike a
// challenge, a trade proposal never gets recorded before acceptance).
func HandleTradeDecline(msg TradeDecline) {}
