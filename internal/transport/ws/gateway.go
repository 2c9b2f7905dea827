// Package ws implements the bidirectional per-agent socket described in
// spec.md §6's transport model over github.com/gorilla/websocket, adapted
// from the teacher's apps/server/internal/gateway package: one Connection
// per socket, a buffered send channel drained by its own writePump, and a
// Gateway registry mapping connection IDs to live sockets.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"texasholdem-server/internal/controller"
	"texasholdem-server/internal/engine"
	"texasholdem-server/internal/eventbus"
	"texasholdem-server/internal/metrics"
	"texasholdem-server/internal/view"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Gateway owns every live socket and the registry they act against.
type Gateway struct {
	reg *controller.Registry

	mu         sync.RWMutex
	clients    map[string]*Client
	nextConnID uint64
}

// New constructs a Gateway backed by reg.
func New(reg *controller.Registry) *Gateway {
	return &Gateway{reg: reg, clients: make(map[string]*Client)}
}

// Client is one agent's socket: at most one identified seat at a time,
// re-identifiable via reconnect after the underlying TCP connection drops.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	gw   *Gateway

	mu            sync.Mutex
	match         *controller.Match
	gameID        string
	playerID      engine.PlayerID
	sub           *eventbus.Subscription
	lastTurnHand  uint64
	lastTurnIndex int
}

// HandleWebSocket upgrades the HTTP request and starts the connection's
// read/write pumps. Mount at whatever path the HTTP router chooses
// (internal/httpapi does not itself know about sockets).
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	g.mu.Lock()
	g.nextConnID++
	id := uuid.New().String()
	c := &Client{
		id:            id,
		conn:          conn,
		send:          make(chan []byte, 256),
		gw:            g,
		lastTurnIndex: -1,
	}
	g.clients[id] = c
	g.mu.Unlock()
	metrics.ConnectedClients.Set(float64(g.clientCount()))

	log.Printf("[ws] client connected: %s, total=%d", id, g.clientCount())

	go c.writePump()
	go c.readPump()
}

func (g *Gateway) clientCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.clients)
}

func (g *Gateway) removeClient(c *Client) {
	g.mu.Lock()
	delete(g.clients, c.id)
	g.mu.Unlock()
	metrics.ConnectedClients.Set(float64(g.clientCount()))
}

func (c *Client) readPump() {
	defer func() {
		c.abruptDisconnect()
		c.gw.removeClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[ws] read error on %s: %v", c.id, err)
			}
			return
		}
		c.handleMessage(data)
	}
}

func (c *Client) handleMessage(data []byte) {
	var env inboundEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.sendError("invalid message", "IllegalAction")
		return
	}

	switch env.Type {
	case "identify":
		c.handleIdentify(env.Data)
	case "action":
		c.handleAction(env.Data)
	case "reconnect":
		c.handleReconnect(env.Data)
	case "leave":
		c.handleLeave()
	case "ping":
		// Liveness only; no reply required by spec.md §6.
	default:
		c.sendError("unknown message type: "+env.Type, "IllegalAction")
	}
}

func (c *Client) handleIdentify(raw json.RawMessage) {
	var req identifyMsg
	if err := json.Unmarshal(raw, &req); err != nil {
		c.sendError("malformed identify", "IllegalAction")
		return
	}
	m, err := c.gw.reg.GetMatch(req.GameID)
	if err != nil {
		c.sendError(err.Error(), errorCode(err))
		return
	}
	playerID := engine.PlayerID(uuid.New().String())
	if _, err := m.AddPlayer(playerID, req.BotName, req.ChipStack); err != nil {
		c.sendError(err.Error(), errorCode(err))
		return
	}

	c.attach(req.GameID, playerID, m)
	c.send_(outboundEnvelope{Type: "identificationSuccess", Data: identificationSuccessMsg{PlayerID: playerID}})
	c.pushGameState()
	c.maybeNotifyTurn()
}

func (c *Client) handleReconnect(raw json.RawMessage) {
	var req reconnectMsg
	if err := json.Unmarshal(raw, &req); err != nil {
		c.sendError("malformed reconnect", "IllegalAction")
		return
	}
	m, err := c.gw.reg.GetMatch(req.GameID)
	if err != nil {
		c.sendError(err.Error(), errorCode(err))
		return
	}
	gv, err := m.View(view.Viewer{Type: view.Player, ID: req.PlayerID})
	if err != nil {
		c.sendError(err.Error(), errorCode(err))
		return
	}
	found := false
	for _, sv := range gv.Seats {
		if sv.ID == req.PlayerID {
			found = true
			break
		}
	}
	if !found {
		c.sendError("no such seat", "UnknownGame")
		return
	}

	m.CancelOfflineSeat(req.PlayerID)
	c.attach(req.GameID, req.PlayerID, m)
	c.pushGameState()
	c.maybeNotifyTurn()
}

func (c *Client) handleAction(raw json.RawMessage) {
	c.mu.Lock()
	m, playerID := c.match, c.playerID
	c.mu.Unlock()
	if m == nil {
		c.sendError("not identified", "UnknownGame")
		return
	}

	var req actionMsg
	if err := json.Unmarshal(raw, &req); err != nil {
		c.sendError("malformed action", "IllegalAction")
		return
	}
	actionType, err := actionTypeFromWire(req.Action)
	if err != nil {
		c.sendError(err.Error(), "IllegalAction")
		return
	}
	action := engine.Action{Type: actionType, Amount: req.Amount, Actor: playerID, Timestamp: req.Timestamp}

	if _, err := m.ProcessAction(playerID, action); err != nil {
		c.sendError(err.Error(), errorCode(err))
		return
	}
	c.send_(outboundEnvelope{Type: "actionSuccess", Data: actionSuccessMsg{Action: action}})
}

func (c *Client) handleLeave() {
	c.mu.Lock()
	m, playerID := c.match, c.playerID
	c.mu.Unlock()
	if m == nil {
		return
	}
	_, _ = m.RemovePlayer(playerID)
	c.teardown()
}

// attach binds this client to gameID/playerID/m, tearing down any previous
// binding first (a reconnect may move a socket from one match to another).
func (c *Client) attach(gameID string, playerID engine.PlayerID, m *controller.Match) {
	c.teardown()

	c.mu.Lock()
	c.gameID, c.playerID, c.match = gameID, playerID, m
	c.lastTurnHand, c.lastTurnIndex = 0, -1
	c.mu.Unlock()

	sub := c.gw.reg.Bus().Subscribe(gameID, func(ev eventbus.Event) {
		c.send_(outboundEnvelope{Type: "gameEvent", Data: gameEventMsg{Event: ev}})
		switch ev.Type {
		case eventbus.HandStarted, eventbus.ActionTaken, eventbus.PhaseChanged, eventbus.TurnTimeout:
			go c.maybeNotifyTurn()
		}
	})
	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()
}

// teardown unsubscribes from the current match's events without touching the
// seat itself — an abrupt disconnect leaves the match intact per spec.md §7;
// only an explicit leave removes the seat (done by the caller beforehand).
func (c *Client) teardown() {
	c.mu.Lock()
	sub := c.sub
	c.sub, c.match, c.gameID, c.playerID = nil, nil, "", ""
	c.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

// abruptDisconnect marks the currently-attached seat offline before tearing
// down the subscription — called only from readPump's defer, which fires on
// every socket close including ones already explicit-left (where match/
// playerID are already cleared and this is a no-op).
func (c *Client) abruptDisconnect() {
	c.mu.Lock()
	m, playerID := c.match, c.playerID
	c.mu.Unlock()
	if m != nil {
		m.MarkSeatOffline(playerID)
	}
	c.teardown()
}

func (c *Client) pushGameState() {
	c.mu.Lock()
	m, playerID := c.match, c.playerID
	c.mu.Unlock()
	if m == nil {
		return
	}
	gv, err := m.View(view.Viewer{Type: view.Player, ID: playerID})
	if err != nil {
		return
	}
	c.send_(outboundEnvelope{Type: "gameState", Data: gameStateMsg{GameState: gv}})
}

// maybeNotifyTurn pushes turnStart at most once per (handNumber,
// currentPlayerIndex) this client is the acting seat for. Safe to call from
// a goroutine spawned off the bus subscriber: View always reflects live
// state at the moment it runs, never a stale snapshot captured earlier.
func (c *Client) maybeNotifyTurn() {
	c.mu.Lock()
	m, playerID := c.match, c.playerID
	c.mu.Unlock()
	if m == nil {
		return
	}
	gv, err := m.View(view.Viewer{Type: view.Player, ID: playerID})
	if err != nil || !gv.HasCurrentPlayer {
		return
	}
	var acting bool
	for _, sv := range gv.Seats {
		if sv.Index == gv.CurrentPlayerIndex && sv.ID == playerID {
			acting = true
			break
		}
	}
	if !acting {
		return
	}

	c.mu.Lock()
	already := c.lastTurnHand == gv.HandNumber && c.lastTurnIndex == gv.CurrentPlayerIndex
	if !already {
		c.lastTurnHand, c.lastTurnIndex = gv.HandNumber, gv.CurrentPlayerIndex
	}
	c.mu.Unlock()
	if already {
		return
	}

	c.send_(outboundEnvelope{Type: "turnStart", Data: turnStartMsg{TimeLimit: m.Config().TurnTimeLimitSeconds}})
}

func (c *Client) sendError(message, code string) {
	c.send_(outboundEnvelope{Type: "error", Data: errorMsg{Message: message, Code: code}})
}

func (c *Client) send_(env outboundEnvelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("[ws] marshal failed for %s: %v", env.Type, err)
		return
	}
	select {
	case c.send <- data:
	default:
		// Slow consumer: drop rather than block the publishing goroutine.
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
