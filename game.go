package main

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrPlayerDead       = errors.New("player is dead")
	ErrUnknownThrowable = errors.New("unknown throwable")
	ErrNotThrowable     = errors.New("throwable must be planted")
	ErrNotPlantable     = errors.New("throwable cannot be planted")
	ErrTooManyDevices   = errors.New("too many active devices")
	ErrArenaFull        = errors.New("arena full")
	ErrTooManyThrown    = errors.New("too many projectiles in flight")
)

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Game runs the fixed-timestep simulation of one arena
type Game struct {
	mu       sync.RWMutex
	cfg      Config
	world    *World
	arena    *Arena
	players  map[ObjectID]*Player
	clients  map[ObjectID]Broadcaster
	notified map[ObjectID]bool // dead players already sent a death message
	tick     uint64
	running  bool
	stop     chan struct{}
	nextTeam int
}

// NewGame creates a game with the demo arena loaded
func NewGame(cfg Config) *Game {
	arena := NewArena(cfg.WorldWidth, cfg.WorldHeight)
	world := NewWorld(cfg.WorldWidth, cfg.WorldHeight, arena.Terrain)
	arena.Populate(world)
	return &Game{
		cfg:      cfg,
		world:    world,
		arena:    arena,
		players:  make(map[ObjectID]*Player),
		clients:  make(map[ObjectID]Broadcaster),
		notified: make(map[ObjectID]bool),
		stop:     make(chan struct{}),
	}
}

// World exposes the simulated world. Callers must not use it concurrently with Run.
func (g *Game) World() *World {
	return g.world
}

// Run starts the game loop
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	ticker := time.NewTicker(g.cfg.TickDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.Tick()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the game loop
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.running = false
		close(g.stop)
	}
}

// AddPlayer spawns a new player, alternating teams
func (g *Game) AddPlayer(name string) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.players) >= g.cfg.MaxPlayers {
		return nil, ErrArenaFull
	}
	team := g.nextTeam % 2
	g.nextTeam++
	p := NewPlayer(name, team, g.arena.SpawnPoint(team, len(g.players)), 0)
	g.world.Add(p)
	g.players[p.ID()] = p
	return p, nil
}

// RemovePlayer takes a player out of the world. Devices already thrown keep
// flying and still credit the player.
func (g *Game) RemovePlayer(id ObjectID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.players[id]
	if !ok {
		return
	}
	g.world.Remove(p)
	delete(g.players, id)
	delete(g.clients, id)
	delete(g.notified, id)
}

// SetClient associates a broadcaster with a player and sends it the full state
func (g *Game) SetClient(id ObjectID, client Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[id] = client

	data, err := msgpack.Marshal(g.fullState())
	if err != nil {
		log.Printf("game: marshal full state: %v", err)
		return
	}
	client.SendBinary(data)
}

// PlayerCount returns the number of players
func (g *Game) PlayerCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.players)
}

// Throw releases a throwable from the player towards angle. power scales the
// definition's max throw speed and is clamped to [0, 1].
func (g *Game) Throw(id ObjectID, defID string, angle, power float64) (*Projectile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, def, err := g.lookup(id, defID)
	if err != nil {
		return nil, err
	}
	if def.Stationary {
		return nil, ErrNotThrowable
	}
	if len(g.world.Projectiles()) >= g.cfg.MaxProjectiles {
		return nil, ErrTooManyThrown
	}

	angle = NormalizeAngle(angle)
	p.Rotation = angle
	g.world.MarkDirty(p.ID(), false)

	spawn := p.Pos.Add(FromPolar(angle, PlayerRadius+def.Radius))
	velocity := FromPolar(angle, def.MaxThrowSpeed*Clamp(power, 0, 1))
	proj := NewProjectile(g.world, def, p, spawn, p.Layer(), velocity)
	proj.Detonate(def.FuseTime)
	return proj, nil
}

// Arm plants a stationary device at the player's position
func (g *Game) Arm(id ObjectID, defID string) (*Projectile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, def, err := g.lookup(id, defID)
	if err != nil {
		return nil, err
	}
	if !def.Stationary {
		return nil, ErrNotPlantable
	}
	if len(p.Devices()) >= MaxActiveDevices {
		return nil, ErrTooManyDevices
	}
	return NewProjectile(g.world, def, p, p.Pos, p.Layer(), Vector2{}), nil
}

// DetonateDevices sets off every device the player has planted and returns how many
func (g *Game) DetonateDevices(id ObjectID) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[id]
	if !ok {
		return 0, ErrUnknownPlayer
	}
	devices := append([]*Projectile(nil), p.Devices()...)
	n := 0
	for _, d := range devices {
		if d.Activated() {
			continue
		}
		d.Detonate(d.Def.FuseTime)
		n++
	}
	return n, nil
}

func (g *Game) lookup(id ObjectID, defID string) (*Player, *ThrowableDefinition, error) {
	p, ok := g.players[id]
	if !ok {
		return nil, nil, ErrUnknownPlayer
	}
	if !p.Alive {
		return nil, nil, ErrPlayerDead
	}
	def, ok := GetThrowable(defID)
	if !ok {
		return nil, nil, errors.Wrapf(ErrUnknownThrowable, "%q", defID)
	}
	return p, def, nil
}

// Tick runs one fixed simulation step: projectiles first, then due timers
func (g *Game) Tick() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tick++
	dt := g.cfg.TickMillis()
	for _, proj := range g.world.Projectiles() {
		proj.Update(dt)
	}
	g.world.Advance(g.cfg.TickDuration())

	g.checkDeaths()

	if g.tick%uint64(g.cfg.BroadcastEvery()) == 0 {
		g.broadcastState()
	}
}

// checkDeaths notifies newly dead players and schedules their respawn
func (g *Game) checkDeaths() {
	ids := make([]ObjectID, 0, len(g.players))
	for id := range g.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		p := g.players[id]
		if p.Alive || g.notified[id] {
			continue
		}
		g.notified[id] = true
		msg := DeathMsg{Weapon: p.killedBy.WeaponUsed}
		if killer, ok := p.killedBy.Source.(*Player); ok {
			msg.KillerID = uint32(killer.ID())
			msg.KillerName = killer.Name
		}
		if client, ok := g.clients[id]; ok {
			client.SendJSON(Envelope{T: MsgDeath, Data: msg})
		}

		h := p.Handle()
		g.world.Schedule(g.cfg.RespawnDelay, func() {
			if pl, ok := g.world.Resolve(h).(*Player); ok {
				pl.Respawn(g.arena.SpawnPoint(pl.Team, int(h.ID)))
				g.world.UpdatePosition(pl)
				g.world.MarkDirty(h.ID, false)
				delete(g.notified, h.ID)
			}
		})
	}
}

// fullState snapshots every object with full projectile fields
func (g *Game) fullState() GameState {
	state := GameState{Tick: g.tick}
	for _, p := range g.world.Players() {
		state.Players = append(state.Players, p.ToState())
	}
	for _, o := range g.world.Obstacles() {
		state.Obstacles = append(state.Obstacles, o.ToState())
	}
	for _, proj := range g.world.Projectiles() {
		state.Projectiles = append(state.Projectiles, proj.Snapshot(true))
	}
	return state
}

// deltaState snapshots objects changed since the previous broadcast
func (g *Game) deltaState() GameState {
	changed, removed := g.world.TakeDirty()
	ids := make([]ObjectID, 0, len(changed))
	for id := range changed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	state := GameState{Tick: g.tick, Explosions: g.world.TakeExplosions()}
	for _, id := range ids {
		switch obj := g.world.Get(id).(type) {
		case *Player:
			state.Players = append(state.Players, obj.ToState())
		case *Obstacle:
			state.Obstacles = append(state.Obstacles, obj.ToState())
		case *Projectile:
			state.Projectiles = append(state.Projectiles, obj.Snapshot(changed[id]))
		}
	}
	for _, id := range removed {
		state.Removed = append(state.Removed, uint32(id))
	}
	return state
}

// broadcastState sends the changes since the last broadcast to all clients
func (g *Game) broadcastState() {
	data, err := msgpack.Marshal(g.deltaState())
	if err != nil {
		log.Printf("game: marshal state: %v", err)
		return
	}
	for _, client := range g.clients {
		client.SendBinary(data)
	}
}
