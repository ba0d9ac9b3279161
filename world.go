package main

import (
	"log"
	"sort"
	"time"
)

// CombatSink receives combat telemetry. *Analytics implements it.
type CombatSink interface {
	TrackCombat(evt CombatEvent)
}

// CombatEvent is one damage, destruction or detonation record
type CombatEvent struct {
	Type     string
	Weapon   string
	SourceID ObjectID
	TargetID ObjectID
	Amount   float64
	X, Y     float64
}

// World is the object registry of one arena. It owns the spatial index, the
// floor map and the simulation clock. Callers hold Game.mu while touching it.
type World struct {
	Width, Height float64

	slots []registrable
	gens  []uint32
	free  []ObjectID

	grid   *Grid
	floors FloorMap
	clock  Scheduler
	events CombatSink

	// dirty maps objects changed since the last snapshot to whether a full
	// snapshot is needed
	dirty      map[ObjectID]bool
	removed    []ObjectID
	explosions []ExplosionState
}

// NewWorld creates an empty world of the given size
func NewWorld(width, height float64, floors FloorMap) *World {
	if floors == nil {
		floors = &Terrain{Default: FloorGrass}
	}
	return &World{
		Width:  width,
		Height: height,
		slots:  make([]registrable, 1), // slot 0 stays empty so the zero Handle never resolves
		gens:   make([]uint32, 1),
		grid:   NewGrid(),
		floors: floors,
		dirty:  make(map[ObjectID]bool),
	}
}

// SetCombatSink attaches a telemetry sink; nil disables telemetry
func (w *World) SetCombatSink(sink CombatSink) {
	w.events = sink
}

// Add registers an object, assigns its handle and indexes it
func (w *World) Add(obj registrable) Handle {
	var id ObjectID
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		id = ObjectID(len(w.slots))
		w.slots = append(w.slots, nil)
		w.gens = append(w.gens, 0)
	}
	h := Handle{ID: id, Gen: w.gens[id]}
	w.slots[id] = obj
	obj.setHandle(h)
	if err := w.grid.Insert(obj); err != nil {
		log.Printf("world: index %v %d: %v", obj.Kind(), id, err)
	}
	w.dirty[id] = true
	return h
}

// Remove deregisters an object. Its handle stops resolving and the slot is
// recycled under a new generation.
func (w *World) Remove(obj Object) {
	id := obj.ID()
	if !w.owns(obj) {
		return
	}
	w.grid.Remove(obj)
	w.slots[id] = nil
	w.gens[id]++
	w.free = append(w.free, id)
	delete(w.dirty, id)
	w.removed = append(w.removed, id)
}

func (w *World) owns(obj Object) bool {
	h := obj.Handle()
	return h.ID != 0 && int(h.ID) < len(w.slots) && w.gens[h.ID] == h.Gen && w.slots[h.ID] != nil
}

// Resolve returns the object a handle points to, or nil if it is gone
func (w *World) Resolve(h Handle) Object {
	if h.ID == 0 || int(h.ID) >= len(w.slots) || w.gens[h.ID] != h.Gen {
		return nil
	}
	if obj := w.slots[h.ID]; obj != nil {
		return obj
	}
	return nil
}

// Get returns the live object in a slot, or nil
func (w *World) Get(id ObjectID) Object {
	if id == 0 || int(id) >= len(w.slots) || w.slots[id] == nil {
		return nil
	}
	return w.slots[id]
}

// Projectiles returns live projectiles in slot order
func (w *World) Projectiles() []*Projectile {
	var out []*Projectile
	for _, obj := range w.slots {
		if p, ok := obj.(*Projectile); ok {
			out = append(out, p)
		}
	}
	return out
}

// Players returns registered players in slot order
func (w *World) Players() []*Player {
	var out []*Player
	for _, obj := range w.slots {
		if p, ok := obj.(*Player); ok {
			out = append(out, p)
		}
	}
	return out
}

// Obstacles returns registered obstacles in slot order
func (w *World) Obstacles() []*Obstacle {
	var out []*Obstacle
	for _, obj := range w.slots {
		if o, ok := obj.(*Obstacle); ok {
			out = append(out, o)
		}
	}
	return out
}

// Query implements SpatialQuery
func (w *World) Query(shape Shape, layer *int) []Object {
	return w.grid.Query(shape, layer)
}

// FloorAt implements FloorMap
func (w *World) FloorAt(pos Vector2, layer int) FloorType {
	return w.floors.FloorAt(pos, layer)
}

// Size returns the world dimensions
func (w *World) Size() (float64, float64) {
	return w.Width, w.Height
}

// Now returns the simulation clock
func (w *World) Now() time.Duration {
	return w.clock.Now()
}

// Schedule runs fn on the tick thread once delay has elapsed on the simulation clock
func (w *World) Schedule(delay time.Duration, fn func()) {
	w.clock.After(delay, fn)
}

// Advance moves the simulation clock and fires due timers
func (w *World) Advance(dt time.Duration) {
	w.clock.Advance(dt)
}

// UpdatePosition re-indexes an object after it moved
func (w *World) UpdatePosition(obj Object) {
	if !w.owns(obj) {
		return
	}
	if err := w.grid.Update(obj); err != nil {
		log.Printf("world: reindex %v %d: %v", obj.Kind(), obj.ID(), err)
	}
}

// MarkDirty flags an object for replication. A full flag is sticky until the
// next TakeDirty.
func (w *World) MarkDirty(id ObjectID, full bool) {
	if w.Get(id) == nil {
		return
	}
	w.dirty[id] = w.dirty[id] || full
}

// TakeDirty returns and clears the objects changed and removed since the last call
func (w *World) TakeDirty() (changed map[ObjectID]bool, removed []ObjectID) {
	changed, removed = w.dirty, w.removed
	w.dirty = make(map[ObjectID]bool)
	w.removed = nil
	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	return changed, removed
}

// RegisterActiveDevice records a projectile the thrower can lose or trigger later
func (w *World) RegisterActiveDevice(thrower *Player, p *Projectile) {
	if thrower == nil || p == nil {
		return
	}
	thrower.addDevice(p)
}

// DeregisterProjectile removes a projectile from the registry and index
func (w *World) DeregisterProjectile(p *Projectile) {
	w.Remove(p)
}

// RecordCombat forwards an event to the telemetry sink, if any
func (w *World) RecordCombat(evt CombatEvent) {
	if w.events != nil {
		w.events.TrackCombat(evt)
	}
}
