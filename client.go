package main

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 50
	maxNameLen        = 16
)

// outMsg is one queued frame for WritePump
type outMsg struct {
	binary bool
	data   []byte
}

// Client represents a WebSocket connection
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan outMsg
	closeOnce  sync.Once
	closed     chan struct{}
	connID     uuid.UUID
	remoteAddr string
	msgCount   int
	msgResetAt time.Time

	// set once the client has joined the arena
	playerID ObjectID
	subject  string // token subject
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan outMsg, sendBufSize),
		closed:     make(chan struct{}),
		connID:     uuid.New(),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws %s: read error: %v", c.connID, err)
			}
			break
		}

		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("ws %s: rate limit exceeded for %s, disconnecting", c.connID, c.remoteAddr)
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			kind := websocket.TextMessage
			if msg.binary {
				kind = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(kind, msg.data); err != nil {
				return
			}

		case <-c.closed:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close stops the write pump. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws %s: marshal error: %v", c.connID, err)
		return
	}
	c.enqueue(outMsg{data: data})
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message
func (c *Client) SendBinary(data []byte) {
	c.enqueue(outMsg{binary: true, data: data})
}

func (c *Client) enqueue(msg outMsg) {
	select {
	case <-c.closed:
	case c.send <- msg:
	default:
		// Client too slow, drop message
	}
}

func (c *Client) sendError(msg string) {
	c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: msg}})
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("ws %s: unmarshal error: %v", c.connID, err)
		return
	}

	switch env.T {
	case MsgJoin:
		c.handleJoin(env.D)
	case MsgThrow:
		c.handleThrow(env.D)
	case MsgArm:
		c.handleArm(env.D)
	case MsgDetonate:
		c.handleDetonate()
	case MsgLeave:
		c.handleLeave()
	}
}

func (c *Client) handleJoin(data json.RawMessage) {
	if c.playerID != 0 {
		c.sendError("already joined")
		return
	}
	var msg JoinMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	claims, err := c.hub.auth.ValidateToken(msg.Token)
	if err != nil {
		c.sendError("invalid token")
		return
	}
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		name = claims.Name
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}

	player, err := c.hub.game.AddPlayer(name)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	c.playerID = player.ID()
	c.subject = claims.Subject
	log.Printf("ws %s: %s joined as player %d", c.connID, c.subject, c.playerID)

	c.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{
		ID:     uint32(player.ID()),
		Team:   player.Team,
		Layer:  player.Layer(),
		Width:  c.hub.game.cfg.WorldWidth,
		Height: c.hub.game.cfg.WorldHeight,
	}})
	c.hub.game.SetClient(player.ID(), c)
}

func (c *Client) handleThrow(data json.RawMessage) {
	if c.playerID == 0 {
		return
	}
	var msg ThrowMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if _, err := c.hub.game.Throw(c.playerID, msg.Def, msg.Angle, msg.Power); err != nil {
		c.sendError(err.Error())
	}
}

func (c *Client) handleArm(data json.RawMessage) {
	if c.playerID == 0 {
		return
	}
	var msg ArmMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if _, err := c.hub.game.Arm(c.playerID, msg.Def); err != nil {
		c.sendError(err.Error())
	}
}

func (c *Client) handleDetonate() {
	if c.playerID == 0 {
		return
	}
	if _, err := c.hub.game.DetonateDevices(c.playerID); err != nil {
		c.sendError(err.Error())
	}
}

func (c *Client) handleLeave() {
	if c.playerID == 0 {
		return
	}
	c.hub.game.RemovePlayer(c.playerID)
	log.Printf("ws %s: player %d left", c.connID, c.playerID)
	c.playerID = 0
}
