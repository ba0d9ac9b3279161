package main

import (
	"math"
	"testing"
)

type recordingSink struct {
	events []CombatEvent
}

func (r *recordingSink) TrackCombat(evt CombatEvent) {
	r.events = append(r.events, evt)
}

func (r *recordingSink) count(typ string) int {
	n := 0
	for _, e := range r.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestWorldHandlesGoStale(t *testing.T) {
	w := newTestWorld()
	a := NewPlayer("a", 0, Vec(10, 10), 0)
	h := w.Add(a)
	if h.ID == 0 {
		t.Fatal("slot 0 must never be assigned")
	}
	if w.Resolve(h) != a {
		t.Fatal("expected handle to resolve")
	}

	w.Remove(a)
	if w.Resolve(h) != nil {
		t.Error("removed object should not resolve")
	}

	b := NewPlayer("b", 0, Vec(20, 20), 0)
	hb := w.Add(b)
	if hb.ID != h.ID {
		t.Fatalf("expected slot %d reused, got %d", h.ID, hb.ID)
	}
	if hb.Gen == h.Gen {
		t.Error("reused slot should carry a new generation")
	}
	if w.Resolve(h) != nil {
		t.Error("stale handle resolved to the new occupant")
	}
	if w.Resolve(hb) != b {
		t.Error("new handle should resolve")
	}
	if w.Resolve(Handle{}) != nil {
		t.Error("zero handle should never resolve")
	}
}

func TestWorldRemoveTwice(t *testing.T) {
	w := newTestWorld()
	p := NewProjectile(w, Throwables["brick"], nil, Vec(10, 10), 0, Vec(0, 0))
	w.Remove(p)
	w.Remove(p)

	_, removed := w.TakeDirty()
	if len(removed) != 1 {
		t.Errorf("expected 1 removal, got %v", removed)
	}
	q := NewProjectile(w, Throwables["brick"], nil, Vec(10, 10), 0, Vec(0, 0))
	r := NewProjectile(w, Throwables["brick"], nil, Vec(10, 10), 0, Vec(0, 0))
	if q.ID() == r.ID() {
		t.Error("slot freed twice")
	}
}

func TestWorldDirtyTracking(t *testing.T) {
	w := newTestWorld()
	a := NewPlayer("a", 0, Vec(10, 10), 0)
	b := NewPlayer("b", 1, Vec(20, 20), 0)
	w.Add(a)
	w.Add(b)

	changed, _ := w.TakeDirty()
	if !changed[a.ID()] || !changed[b.ID()] {
		t.Errorf("new objects need full snapshots, got %v", changed)
	}

	w.MarkDirty(a.ID(), false)
	changed, _ = w.TakeDirty()
	if full, ok := changed[a.ID()]; !ok || full {
		t.Errorf("expected partial update for a, got %v", changed)
	}
	if _, ok := changed[b.ID()]; ok {
		t.Error("b did not change")
	}

	w.MarkDirty(a.ID(), true)
	w.MarkDirty(a.ID(), false)
	changed, _ = w.TakeDirty()
	if !changed[a.ID()] {
		t.Error("full flag should be sticky until taken")
	}

	w.Remove(b)
	w.MarkDirty(b.ID(), false)
	changed, removed := w.TakeDirty()
	if _, ok := changed[b.ID()]; ok {
		t.Error("removed objects are not dirty")
	}
	if len(removed) != 1 || removed[0] != b.ID() {
		t.Errorf("expected removal of %d, got %v", b.ID(), removed)
	}
}

func TestWorldSlotOrderListing(t *testing.T) {
	w := newTestWorld()
	addObstacle(w, ObstacleDefinitions["crate"], RectFromCenter(Vec(50, 50), 4, 4), 0)
	pl := NewPlayer("a", 0, Vec(10, 10), 0)
	w.Add(pl)
	p1 := NewProjectile(w, Throwables["brick"], pl, Vec(10, 10), 0, Vec(0, 0))
	p2 := NewProjectile(w, Throwables["brick"], pl, Vec(12, 10), 0, Vec(0, 0))

	projs := w.Projectiles()
	if len(projs) != 2 || projs[0] != p1 || projs[1] != p2 {
		t.Errorf("expected projectiles in slot order, got %v", projs)
	}
	if len(w.Players()) != 1 || len(w.Obstacles()) != 1 {
		t.Errorf("expected 1 player and 1 obstacle, got %d and %d", len(w.Players()), len(w.Obstacles()))
	}
}

func TestExplosionFalloff(t *testing.T) {
	w := newTestWorld()
	sink := &recordingSink{}
	w.SetCombatSink(sink)

	thrower := NewPlayer("thrower", 0, Vec(150, 150), 0)
	near := NewPlayer("near", 1, Vec(105, 100), 0)
	edge := NewPlayer("edge", 1, Vec(126, 100), 0)
	upstairs := NewPlayer("upstairs", 1, Vec(100, 102), 1)
	for _, p := range []*Player{thrower, near, edge, upstairs} {
		w.Add(p)
	}
	rock := addObstacle(w, ObstacleDefinitions["rock"], RectFromCenter(Vec(100, 110), 4, 4), 0)
	wall := addObstacle(w, ObstacleDefinitions["wall"], RectFromCenter(Vec(90, 100), 2, 2), 0)

	def := Explosions["frag_explosion"]
	w.SpawnExplosion(def, Vec(100, 100), thrower, 0, "frag_grenade")

	if want := PlayerMaxHP - def.Damage*0.8; math.Abs(near.HP-want) > 1e-6 {
		t.Errorf("expected near HP %f, got %f", want, near.HP)
	}
	if edge.HP != PlayerMaxHP {
		t.Errorf("player past the blast radius took damage, HP %f", edge.HP)
	}
	if upstairs.HP != PlayerMaxHP {
		t.Errorf("explosions only hit their own layer, HP %f", upstairs.HP)
	}
	if want := ObstacleDefinitions["rock"].Health - def.Damage*0.6*def.ObstacleMultiplier; math.Abs(rock.HP-want) > 1e-6 {
		t.Errorf("expected rock HP %f, got %f", want, rock.HP)
	}
	if wall.Dead() {
		t.Error("indestructible wall destroyed")
	}

	explosions := w.TakeExplosions()
	if len(explosions) != 1 || explosions[0].Def != "frag_explosion" {
		t.Fatalf("expected one frag explosion, got %v", explosions)
	}
	if len(w.TakeExplosions()) != 0 {
		t.Error("TakeExplosions should clear the queue")
	}
	// near, rock and wall
	if n := sink.count(EvtExplosion); n != 3 {
		t.Errorf("expected 3 explosion events, got %d", n)
	}
	for _, e := range sink.events {
		if e.SourceID != thrower.ID() || e.Weapon != "frag_grenade" {
			t.Errorf("unexpected attribution %+v", e)
		}
	}
}

func TestExplosionKillCreditsThrower(t *testing.T) {
	w := newTestWorld()
	thrower := NewPlayer("thrower", 0, Vec(150, 150), 0)
	victim := NewPlayer("victim", 1, Vec(100, 100), 0)
	w.Add(thrower)
	w.Add(victim)

	w.SpawnExplosion(Explosions["c4_explosion"], Vec(100, 100), thrower, 0, "c4")

	if victim.Alive {
		t.Fatal("expected victim killed at the blast centre")
	}
	if thrower.Kills != 1 {
		t.Errorf("expected 1 kill, got %d", thrower.Kills)
	}
	if victim.killedBy.WeaponUsed != "c4" {
		t.Errorf("expected killed by c4, got %q", victim.killedBy.WeaponUsed)
	}
}

func TestExplosionDamagesDevices(t *testing.T) {
	w := newTestWorld()
	owner := NewPlayer("owner", 0, Vec(150, 150), 0)
	w.Add(owner)
	device := NewProjectile(w, Throwables["c4"], owner, Vec(100, 100), 0, Vec(0, 0))

	w.SpawnExplosion(Explosions["frag_explosion"], Vec(101, 100), nil, 0, "frag_grenade")

	if !device.Dead() {
		t.Error("expected planted c4 destroyed by a nearby blast")
	}
	if len(owner.Devices()) != 0 {
		t.Error("destroyed device should be dropped from its owner")
	}
}

func TestExplosionNilDefinition(t *testing.T) {
	w := newTestWorld()
	w.SpawnExplosion(nil, Vec(10, 10), nil, 0, "none")
	w.SpawnExplosion(&ExplosionDefinition{ID: "dud"}, Vec(10, 10), nil, 0, "none")
	if n := len(w.TakeExplosions()); n != 0 {
		t.Errorf("expected no explosions, got %d", n)
	}
}
