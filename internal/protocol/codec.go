package protocol

import (
	"encoding/json"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/model"
	"github.com/pkg/errors"
)

// Encode wraps body's JSON encoding in the shared model.Frame envelope
// (fixed header, LZ4 payload, BLAKE3 trailer), ready to hand to a
// websocket connection.
func Encode(kind Kind, origin model.PeerID, sendTick clock.Tick, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s payload", kind)
	}
	return model.EncodeFrame(model.Frame{
		Kind:     uint16(kind),
		Origin:   origin,
		SendTick: uint64(sendTick),
		Payload:  payload,
	})
}

// Envelope is a decoded Frame with its Kind still unresolved to a
// concrete payload type; the caller type-switches on Kind and calls
// the matching Decode* helper below.
type Envelope struct {
	Kind     Kind
	Origin   model.PeerID
	SendTick clock.Tick
	body     []byte
}

// Decode reverses Encode down to the raw payload bytes; call one of
// DecodeSeedInfo/DecodeTeamSnapshot/... to unmarshal the body itself.
func Decode(data []byte) (Envelope, error) {
	f, err := model.DecodeFrame(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		Kind:     Kind(f.Kind),
		Origin:   f.Origin,
		SendTick: clock.Tick(f.SendTick),
		body:     f.Payload,
	}, nil
}

func (e Envelope) DecodeSeedInfo() (SeedInfo, error) {
	var v SeedInfo
	err := json.Unmarshal(e.body, &v)
	return v, err
}

func (e Envelope) DecodeTeamSnapshot() (TeamSnapshot, error) {
	var v TeamSnapshot
	err := json.Unmarshal(e.body, &v)
	return v, err
}

func (e Envelope) DecodePlayerSnapshot() (PlayerSnapshot, error) {
	var v PlayerSnapshot
	err := json.Unmarshal(e.body, &v)
	return v, err
}

func (e Envelope) DecodeChallengeProposal() (ChallengeProposal, error) {
	var v ChallengeProposal
	err := json.Unmarshal(e.body, &v)
	return v, err
}

func (e Envelope) DecodeChallengeAck() (ChallengeAck, error) {
	var v ChallengeAck
	err := json.Unmarshal(e.body, &v)
	return v, err
}

func (e Envelope) DecodeChallengeConfirm() (ChallengeConfirm, error) {
	var v ChallengeConfirm
	err := json.Unmarshal(e.body, &v)
	return v, err
}

func (e Envelope) DecodeChallengeDecline() (ChallengeDecline, error) {
	var v ChallengeDecline
	err := json.Unmarshal(e.body, &v)
	return v, err
}

func (e Envelope) DecodeTradeProposal() (TradeProposal, error) {
	var v TradeProposal
	err := json.Unmarshal(e.body, &v)
	return v, err
}

func (e Envelope) DecodeTradeAccept() (TradeAccept, error) {
	var v TradeAccept
	err := json.Unmarshal(e.body, &v)
	return v, err
}

func (e Envelope) DecodeTradeDecline() (TradeDecline, error) {
	var v TradeDecline
	err := json.Unmarshal(e.body, &v)
	return v, err
}

func (e Envelope) DecodeChat() (Chat, error) {
	var v Chat
	err := json.Unmarshal(e.body, &v)
	return v, err
}
