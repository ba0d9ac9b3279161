package main

import (
	"math"
	"time"
)

const (
	DragNormal = 0.001
	DragHarsh  = 0.005

	ImpactThreshold      = 0.0009 // squared speed, below it the projectile has landed
	FlyoverThreshold     = 0.0009 // squared speed to pass over FlyoverAlways obstacles
	HighFlyoverThreshold = 0.0016 // squared speed to pass over FlyoverSometimes obstacles

	AngularDecay    = 0.6
	BounceRetention = 0.4
	OwnerGrace      = 250 * time.Millisecond
)

// Reflect bounces v off a surface with unit normal n, keeping BounceRetention of the speed
func Reflect(v, n Vector2) Vector2 {
	return v.Sub(n.Scale(2 * v.Dot(n))).Scale(BounceRetention)
}

// ProjectileWorld is what a projectile needs from the world around it
type ProjectileWorld interface {
	SpatialQuery
	FloorMap
	Add(obj registrable) Handle
	Resolve(h Handle) Object
	Now() time.Duration
	Schedule(delay time.Duration, fn func())
	Size() (float64, float64)
	UpdatePosition(obj Object)
	MarkDirty(id ObjectID, full bool)
	RegisterActiveDevice(thrower *Player, p *Projectile)
	DeregisterProjectile(p *Projectile)
	SpawnExplosion(def *ExplosionDefinition, pos Vector2, thrower *Player, layer int, weapon string)
	RecordCombat(evt CombatEvent)
}

// Projectile is a thrown or planted throwable
type Projectile struct {
	handle  Handle
	world   ProjectileWorld
	Def     *ThrowableDefinition
	thrower *Player

	position     Vector2
	lastPosition Vector2
	rotation     float64
	layer        int

	velocity        Vector2
	angularVelocity float64
	drag            float64
	hitbox          Circle
	health          *float64

	airborne         bool
	activated        bool
	destroyed        bool
	spawnTime        time.Duration
	collideWithOwner bool

	currentlyAbove  ObjectSet
	damagedLastTick ObjectSet
}

// NewProjectile creates a projectile and registers it in the world. Stationary
// devices are also tracked on the thrower so they can be triggered later.
func NewProjectile(world ProjectileWorld, def *ThrowableDefinition, thrower *Player, pos Vector2, layer int, velocity Vector2) *Projectile {
	p := &Projectile{
		world:           world,
		Def:             def,
		thrower:         thrower,
		position:        pos,
		lastPosition:    pos,
		layer:           layer,
		velocity:        velocity,
		angularVelocity: def.InitialSpin,
		drag:            DragNormal,
		hitbox:          Circle{Position: pos, Radius: def.Radius},
		airborne:        !def.Stationary,
		spawnTime:       world.Now(),
		currentlyAbove:  make(ObjectSet),
		damagedLastTick: make(ObjectSet),
	}
	if thrower != nil {
		p.rotation = thrower.Rotation
	}
	if def.Health != nil {
		hp := *def.Health
		p.health = &hp
	}
	world.Add(p)
	if def.Stationary {
		world.RegisterActiveDevice(thrower, p)
	}
	return p
}

func (p *Projectile) ID() ObjectID       { return p.handle.ID }
func (p *Projectile) Handle() Handle     { return p.handle }
func (p *Projectile) Kind() ObjectKind   { return KindProjectile }
func (p *Projectile) Layer() int         { return p.layer }
func (p *Projectile) Position() Vector2  { return p.position }
func (p *Projectile) Dead() bool         { return p.destroyed }
func (p *Projectile) Collidable() bool   { return false }
func (p *Projectile) Hitbox() Shape      { return p.hitbox }
func (p *Projectile) setHandle(h Handle) { p.handle = h }

func (p *Projectile) Velocity() Vector2 { return p.velocity }
func (p *Projectile) Rotation() float64 { return p.rotation }
func (p *Projectile) Airborne() bool    { return p.airborne }
func (p *Projectile) Activated() bool   { return p.activated }
func (p *Projectile) Thrower() *Player  { return p.thrower }

// Health returns the remaining health and whether the projectile has any
func (p *Projectile) Health() (float64, bool) {
	if p.health == nil {
		return 0, false
	}
	return *p.health, true
}

// SetLayer moves the projectile to another layer, used by stairs
func (p *Projectile) SetLayer(layer int) {
	if p.layer == layer {
		return
	}
	p.layer = layer
	p.world.MarkDirty(p.handle.ID, false)
}

func (p *Projectile) moveTo(pos Vector2) {
	p.position = pos
	p.hitbox.Position = pos
}

func (p *Projectile) halfStep(dt float64) Vector2 {
	return p.velocity.Scale(dt / 2).Clamp(p.Def.SpeedCap * dt / 2)
}

func (p *Projectile) refreshOwnerGrace() {
	if !p.collideWithOwner && p.world.Now()-p.spawnTime >= OwnerGrace {
		p.collideWithOwner = true
	}
}

// ownerSuppressed reports whether obj is the thrower inside the grace window
func (p *Projectile) ownerSuppressed(obj Object) bool {
	if p.collideWithOwner || p.thrower == nil {
		return false
	}
	return obj.Handle() == p.thrower.Handle()
}

func (p *Projectile) canFlyOver(obj Object, v2 float64) bool {
	var pref FlyoverPref
	switch o := obj.(type) {
	case *Obstacle:
		if o.IsClosedDoor() {
			return false
		}
		pref = o.Def.Flyover
	case *Building:
		pref = o.Flyover
	default:
		return false
	}
	if obj.Layer() < p.layer {
		return true
	}
	switch pref {
	case FlyoverAlways:
		return v2 > FlyoverThreshold
	case FlyoverSometimes:
		return v2 > HighFlyoverThreshold
	}
	return false
}

// Update advances the projectile by dt milliseconds
func (p *Projectile) Update(dt float64) {
	if p.destroyed {
		return
	}
	if p.Def.Stationary {
		p.airborne = false
		return
	}
	p.refreshOwnerGrace()

	p.lastPosition = p.position
	p.moveTo(p.position.Add(p.halfStep(dt)))
	p.velocity = p.velocity.Scale(1 / (1 + dt*p.drag))
	p.moveTo(p.position.Add(p.halfStep(dt)))

	p.rotation = NormalizeAngle(p.rotation + p.angularVelocity*dt)

	v2 := p.velocity.SquaredLength()
	if v2 < ImpactThreshold {
		p.airborne = false
		if p.world.FloorAt(p.position, p.layer).Overlay {
			p.drag = DragHarsh
		}
	}
	dealImpact := p.Def.ImpactDamage != nil && p.airborne

	above := make(ObjectSet)
	damagedThisTick := make(ObjectSet)
	var (
		closest     *LineHit
		closestObj  Object
		closestDist = math.Inf(1)
	)

	layer := p.layer
	for _, obj := range p.world.Query(p.hitbox, &layer) {
		if obj.Dead() {
			continue
		}
		static := isObstacleOrBuilding(obj.Kind())
		if !static && !(obj.Kind() == KindPlayer && dealImpact && !p.ownerSuppressed(obj)) {
			continue
		}
		hitbox := obj.Hitbox()
		Assert(!(static && obj.Collidable() && hitbox == nil), "collidable %v %d has no hitbox", obj.Kind(), obj.ID())
		if hitbox == nil {
			continue
		}

		hit := hitbox.IntersectsLine(p.lastPosition, p.position)
		colliding := hit != nil || p.hitbox.Collides(hitbox)

		if static && colliding {
			if o, ok := obj.(*Obstacle); ok && o.IsStair() {
				o.HandleStairInteraction(p)
				continue
			}
			door := false
			if o, ok := obj.(*Obstacle); ok {
				door = o.IsClosedDoor()
			}
			if !door && (p.currentlyAbove.Has(obj.Handle()) || p.canFlyOver(obj, v2)) {
				above.Add(obj.Handle())
				continue
			}
			p.drag = DragHarsh
		}

		if hit != nil {
			if d := SquaredDistance(p.lastPosition, hit.Point); d < closestDist {
				closest, closestObj, closestDist = hit, obj, d
			}
		}

		if !colliding {
			continue
		}
		if dealImpact && !p.damagedLastTick.Has(obj.Handle()) {
			amount := *p.Def.ImpactDamage
			if obj.Kind() == KindObstacle {
				amount *= p.Def.ObstacleMultiplier
			}
			obj.Damage(DamageParams{Amount: amount, Source: p.throwerObject(), WeaponUsed: p.Def.ID})
			p.world.MarkDirty(obj.ID(), false)
			p.world.RecordCombat(CombatEvent{
				Type: EvtImpact, Weapon: p.Def.ID, SourceID: p.throwerID(), TargetID: obj.ID(),
				Amount: amount, X: p.position.X, Y: p.position.Y,
			})
			if obj.Dead() {
				continue
			}
		}
		damagedThisTick.Add(obj.Handle())
		p.handleCollision(obj)
		p.angularVelocity *= AngularDecay
	}
	p.currentlyAbove = above

	if closest != nil {
		p.moveTo(closest.Point.Add(closest.Normal.Scale(p.hitbox.Radius)))
		p.handleCollision(closestObj)
	}

	w, h := p.world.Size()
	r := p.hitbox.Radius
	p.moveTo(Vec(Clamp(p.position.X, r, w-r), Clamp(p.position.Y, r, h-r)))

	p.refreshOwnerGrace()
	p.damagedLastTick = damagedThisTick
	p.world.UpdatePosition(p)
	p.world.MarkDirty(p.handle.ID, false)
}

// handleCollision pushes the projectile out of obj and bounces it
func (p *Projectile) handleCollision(obj Object) {
	if obj.Dead() {
		return
	}
	static := isObstacleOrBuilding(obj.Kind())
	stair := false
	if o, ok := obj.(*Obstacle); ok {
		stair = o.IsStair()
	}
	hitbox := obj.Hitbox()
	if (!static || stair || !obj.Collidable() || hitbox == nil) &&
		(obj.Kind() != KindPlayer || p.ownerSuppressed(obj)) {
		return
	}
	if hitbox == nil || !p.hitbox.Collides(hitbox) || obj.Layer() != p.layer {
		return
	}
	pen := hitbox.ResolveCircle(p.hitbox)
	if pen == nil {
		return
	}
	p.moveTo(p.position.Add(pen.Direction.Scale(pen.Depth)))
	p.velocity = Reflect(p.velocity, pen.Direction)
}

// Detonate arms the projectile and explodes it once delay has elapsed
func (p *Projectile) Detonate(delay time.Duration) {
	if p.destroyed {
		return
	}
	p.activated = true
	p.world.MarkDirty(p.handle.ID, false)

	world, h := p.world, p.handle
	world.Schedule(delay, func() {
		proj, ok := world.Resolve(h).(*Projectile)
		if !ok || proj.destroyed {
			return
		}
		proj.explode()
	})
}

func (p *Projectile) explode() {
	pos := p.position
	p.destroy()
	p.world.RecordCombat(CombatEvent{
		Type: EvtDetonation, Weapon: p.Def.ID, SourceID: p.throwerID(), TargetID: p.handle.ID,
		X: pos.X, Y: pos.Y,
	})
	if p.Def.Explosion == "" {
		return
	}
	def, ok := Explosions[p.Def.Explosion]
	Assert(ok, "throwable %s references unknown explosion %s", p.Def.ID, p.Def.Explosion)
	p.world.SpawnExplosion(def, pos, p.thrower, p.layer, p.Def.ID)
}

// Damage reduces health; projectiles without health ignore it
func (p *Projectile) Damage(params DamageParams) {
	if p.health == nil || p.destroyed {
		return
	}
	*p.health -= params.Amount
	if *p.health > 0 {
		p.world.MarkDirty(p.handle.ID, false)
		return
	}
	p.destroy()
	var src ObjectID
	if params.Source != nil {
		src = params.Source.ID()
	}
	p.world.RecordCombat(CombatEvent{
		Type: EvtDestroyed, Weapon: params.WeaponUsed, SourceID: src, TargetID: p.handle.ID,
		Amount: params.Amount, X: p.position.X, Y: p.position.Y,
	})
}

func (p *Projectile) destroy() {
	p.destroyed = true
	if p.thrower != nil {
		p.thrower.removeDevice(p)
	}
	p.world.DeregisterProjectile(p)
}

func (p *Projectile) throwerObject() Object {
	if p.thrower == nil {
		return nil
	}
	return p.thrower
}

func (p *Projectile) throwerID() ObjectID {
	if p.thrower == nil {
		return 0
	}
	return p.thrower.ID()
}

// Snapshot converts to protocol state. Definition fields are only included in
// full snapshots, sent the first time a client observes the projectile.
func (p *Projectile) Snapshot(full bool) ProjectileState {
	s := ProjectileState{
		ID:        uint32(p.handle.ID),
		X:         round2(p.position.X),
		Y:         round2(p.position.Y),
		R:         round2(p.rotation),
		Layer:     p.layer,
		Airborne:  p.airborne,
		Activated: p.activated,
		Team:      -1,
	}
	if p.thrower != nil {
		s.Team = p.thrower.Team
	}
	if full {
		s.Full = &ProjectileStatic{
			Def:    p.Def.ID,
			Radius: p.Def.Radius,
			Image:  p.Def.Image,
			Tint:   p.Def.Tint,
		}
	}
	return s
}
