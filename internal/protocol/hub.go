package protocol

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/model"
	"github.com/corsair-league/armada/internal/world"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	// gossipInterval is how often a Hub broadcasts locally-owned,
	// dirty-network entities to every connected peer.
	gossipInterval = 500 * time.Millisecond

	// maxMessagesPerPeerPerSec bounds how much gossip traffic a single
	// peer can push before the hub starts dropping it, mirroring
	// game.EventLog's per-player limiter.
	maxMessagesPerPeerPerSec = 200
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// peer is one live gossip connection, inbound or outbound.
type peer struct {
	id   model.PeerID
	conn *websocket.Conn
	send chan []byte
}

// Hub is the peer-to-peer gossip transport: it maintains one
// websocket connection per known peer, periodically gossips dirty
// local teams/players, and dispatches inbound challenge/trade
// handshake messages into a ChallengeBook and the control surface.
type Hub struct {
	self  model.PeerID
	world *world.World
	book  *ChallengeBook

	mu    sync.RWMutex
	peers map[model.PeerID]*peer

	limiters sync.Map // map[model.PeerID]*rate.Limiter

	register   chan *peer
	unregister chan model.PeerID
}

func NewHub(self model.PeerID, w *world.World, book *ChallengeBook) *Hub {
	return &Hub{
		self:       self,
		world:      w,
		book:       book,
		peers:      make(map[model.PeerID]*peer),
		register:   make(chan *peer),
		unregister: make(chan model.PeerID),
	}
}

// Run drives the hub's connection bookkeeping and periodic gossip
// broadcast until ctx-equivalent shutdown; callers run it in its own
// goroutine for the process lifetime.
func (h *Hub) Run(now func() clock.Tick) {
	ticker := time.NewTicker(gossipInterval)
	defer ticker.Stop()

	for {
		select {
		case p := <-h.register:
			h.mu.Lock()
			h.peers[p.id] = p
			count := len(h.peers)
			h.mu.Unlock()
			log.Printf("protocol: peer %s connected (%d total)", p.id, count)

		case id := <-h.unregister:
			h.mu.Lock()
			if p, ok := h.peers[id]; ok {
				close(p.send)
				delete(h.peers, id)
			}
			count := len(h.peers)
			h.mu.Unlock()
			log.Printf("protocol: peer %s disconnected (%d remaining)", id, count)

		case <-ticker.C:
			h.gossipTick(now())
		}
	}
}

// PeerCount reports how many peers are currently connected.
func (h *Hub) PeerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

func (h *Hub) gossipTick(now clock.Tick) {
	if !h.world.TakeDirtyNetwork() {
		return
	}

	for _, snap := range GossipableTeams(h.world) {
		h.broadcast(KindTeamSnapshot, now, snap)
	}
	for _, snap := range GossipablePlayers(h.world) {
		h.broadcast(KindPlayerSnapshot, now, snap)
	}
}

func (h *Hub) broadcast(kind Kind, now clock.Tick, body interface{}) {
	data, err := Encode(kind, h.self, now, body)
	if err != nil {
		log.Printf("protocol: encode %s: %v", kind, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.peers {
		select {
		case p.send <- data:
		default: // backpressure: drop rather than block the gossip tick
		}
	}
}

// HandleWebSocket accepts an inbound peer connection. The peer's first
// frame must be a SeedInfo, whose Origin names its PeerID; nothing else
// is trusted about the connection until then.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("protocol: upgrade error: %v", err)
		return
	}
	h.serve(conn)
}

// Dial opens an outbound connection to a known peer's gossip endpoint.
func (h *Hub) Dial(url string) error {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return err
	}
	go h.serve(conn)
	return nil
}

func (h *Hub) serve(conn *websocket.Conn) {
	env, err := h.readHandshake(conn)
	if err != nil {
		log.Printf("protocol: handshake failed: %v", err)
		conn.Close()
		return
	}

	p := &peer{id: env.Origin, conn: conn, send: make(chan []byte, 64)}
	h.register <- p

	go h.writeLoop(p)
	h.dispatch(env)
	h.readLoop(p)
}

// readHandshake reads exactly one frame and requires it to be a
// SeedInfo, establishing the peer's identity before anything else is
// trusted.
func (h *Hub) readHandshake(conn *websocket.Conn) (Envelope, error) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		return Envelope{}, err
	}
	env, err := Decode(data)
	if err != nil {
		return Envelope{}, err
	}
	if env.Kind != KindSeedInfo {
		return Envelope{}, errors.Errorf("first frame is %s, not SeedInfo", env.Kind)
	}
	return env, nil
}

func (h *Hub) writeLoop(p *peer) {
	for data := range p.send {
		if err := p.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			break
		}
	}
	p.conn.Close()
}

func (h *Hub) readLoop(p *peer) {
	defer func() { h.unregister <- p.id }()

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		if !h.allow(p.id) {
			continue // rate-limited: drop silently, connection stays up
		}
		env, err := Decode(data)
		if err != nil {
			log.Printf("protocol: decode from %s: %v", p.id, err)
			continue
		}
		h.dispatch(env)
	}
}

func (h *Hub) allow(id model.PeerID) bool {
	limiter, _ := h.limiters.LoadOrStore(id, rate.NewLimiter(rate.Limit(maxMessagesPerPeerPerSec), maxMessagesPerPeerPerSec/10))
	return limiter.(*rate.Limiter).Allow()
}

// dispatch routes an already-decoded envelope into the gossip merge
// functions, the ChallengeBook, or a trade handler. Replies
// (Ack/Confirm/Accept) are sent back to the originating peer directly
// rather than broadcast.
func (h *Hub) dispatch(env Envelope) {
	origin, sendTick := env.Origin, env.SendTick

	switch env.Kind {
	case KindSeedInfo:
		// identity/liveness only; nothing further to apply

	case KindTeamSnapshot:
		snap, err := env.DecodeTeamSnapshot()
		if err == nil {
			MergeTeamSnapshot(h.world, origin, snap)
		}

	case KindPlayerSnapshot:
		snap, err := env.DecodePlayerSnapshot()
		if err == nil {
			MergePlayerSnapshot(h.world, origin, snap)
		}

	case KindChallengeProposal:
		msg, err := env.DecodeChallengeProposal()
		if err != nil {
			return
		}
		ack, decline, ok := h.book.HandleProposal(h.world, msg.Home.TeamID, msg)
		if ok {
			h.reply(origin, KindChallengeAck, sendTick, ack)
		} else {
			h.reply(origin, KindChallengeDecline, sendTick, decline)
		}

	case KindChallengeAck:
		msg, err := env.DecodeChallengeAck()
		if err != nil {
			return
		}
		confirm, decline, ok := h.book.HandleAck(h.world, msg, sendTick)
		if ok {
			h.reply(origin, KindChallengeConfirm, sendTick, confirm)
		} else {
			h.reply(origin, KindChallengeDecline, sendTick, decline)
		}

	case KindChallengeConfirm:
		msg, err := env.DecodeChallengeConfirm()
		if err == nil {
			h.book.HandleConfirm(h.world, msg)
		}

	case KindChallengeDecline:
		msg, err := env.DecodeChallengeDecline()
		if err == nil {
			h.book.HandleDecline(msg)
		}

	case KindTradeProposal:
		msg, err := env.DecodeTradeProposal()
		if err != nil {
			return
		}
		accept, decline, ok := HandleTradeProposal(h.world, msg)
		if ok {
			// The acceptor applies the swap to its own World before replying.
			if d := HandleTradeAccept(h.world, accept); !d.Allowed() {
				decline = TradeDecline{ProposerTeamID: msg.ProposerTeamID, TargetTeamID: msg.TargetTeamID, Reason: string(d)}
				ok = false
			}
		}
		if ok {
			h.reply(origin, KindTradeAccept, sendTick, accept)
		} else {
			h.reply(origin, KindTradeDecline, sendTick, decline)
		}

	case KindTradeAccept:
		msg, err := env.DecodeTradeAccept()
		if err == nil {
			HandleTradeAccept(h.world, msg)
		}

	case KindTradeDecline:
		msg, err := env.DecodeTradeDecline()
		if err == nil {
			HandleTradeDecline(msg)
		}

	case KindChat:
		// not applied to the world and not forwarded to the event bus
	}
}

func (h *Hub) reply(to model.PeerID, kind Kind, now clock.Tick, body interface{}) {
	data, err := Encode(kind, h.self, now, body)
	if err != nil {
		log.Printf("protocol: encode reply %s: %v", kind, err)
		return
	}
	h.mu.RLock()
	p, ok := h.peers[to]
	h.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case p.send <- data:
	default:
	}
}
