package main

// FlyoverPref says how readily a projectile may pass over an obstacle
type FlyoverPref uint8

const (
	FlyoverNever FlyoverPref = iota
	FlyoverSometimes // only above the high flyover speed
	FlyoverAlways    // above the normal flyover speed
)

// ObstacleDefinition holds the static properties of an obstacle type
type ObstacleDefinition struct {
	ID             string
	Health         float64
	Indestructible bool
	Flyover        FlyoverPref
	Door           bool
	// Stair, when set, makes the obstacle a layer transition instead of a blocker
	Stair *StairDefinition
}

// StairDefinition connects two layers. Moving along Up climbs to High,
// moving against it descends to Low.
type StairDefinition struct {
	Low, High int
	Up        Vector2
}

// Obstacle is a static, possibly destructible piece of world geometry
type Obstacle struct {
	handle   Handle
	Def      *ObstacleDefinition
	Pos      Vector2
	layer    int
	hitbox   Shape
	HP       float64
	dead     bool
	DoorOpen bool
}

// NewObstacle places an obstacle with the given world-space hitbox
func NewObstacle(def *ObstacleDefinition, hitbox Shape, layer int) *Obstacle {
	Assert(hitbox != nil, "obstacle %s has no hitbox", def.ID)
	return &Obstacle{
		Def:    def,
		Pos:    hitbox.Center(),
		layer:  layer,
		hitbox: hitbox,
		HP:     def.Health,
	}
}

func (o *Obstacle) ID() ObjectID      { return o.handle.ID }
func (o *Obstacle) Handle() Handle    { return o.handle }
func (o *Obstacle) Kind() ObjectKind  { return KindObstacle }
func (o *Obstacle) Layer() int        { return o.layer }
func (o *Obstacle) Position() Vector2 { return o.Pos }
func (o *Obstacle) Dead() bool        { return o.dead }
func (o *Obstacle) Hitbox() Shape     { return o.hitbox }

func (o *Obstacle) setHandle(h Handle) { o.handle = h }

// Collidable is false once destroyed and while an open door swings aside
func (o *Obstacle) Collidable() bool {
	if o.dead {
		return false
	}
	return !(o.Def.Door && o.DoorOpen)
}

// IsStair reports whether the obstacle is a layer transition
func (o *Obstacle) IsStair() bool { return o.Def.Stair != nil }

// IsClosedDoor reports a door that currently blocks
func (o *Obstacle) IsClosedDoor() bool { return o.Def.Door && !o.DoorOpen }

// Damage reduces HP unless indestructible, destroying the obstacle at zero
func (o *Obstacle) Damage(params DamageParams) {
	if o.dead || o.Def.Indestructible || params.Amount <= 0 {
		return
	}
	o.HP -= params.Amount
	if o.HP <= 0 {
		o.HP = 0
		o.dead = true
	}
}

// HandleStairInteraction moves a projectile on the stair to the layer it is heading for.
// A projectile at rest keeps its layer.
func (o *Obstacle) HandleStairInteraction(p *Projectile) {
	s := o.Def.Stair
	if s == nil {
		return
	}
	switch d := p.Velocity().Dot(s.Up); {
	case d > 0:
		p.SetLayer(s.High)
	case d < 0:
		p.SetLayer(s.Low)
	}
}

// ToState converts to protocol state
func (o *Obstacle) ToState() ObstacleState {
	return ObstacleState{
		ID:    uint32(o.handle.ID),
		Def:   o.Def.ID,
		X:     round2(o.Pos.X),
		Y:     round2(o.Pos.Y),
		Layer: o.layer,
		Dead:  o.dead,
		Open:  o.DoorOpen,
	}
}

// Building is an indestructible structure whose walls block projectiles
type Building struct {
	handle  Handle
	Name    string
	layer   int
	walls   *Group
	Flyover FlyoverPref
}

// NewBuilding creates a building from its wall hitboxes
func NewBuilding(name string, layer int, flyover FlyoverPref, walls ...Shape) *Building {
	Assert(len(walls) > 0, "building %s has no walls", name)
	return &Building{
		Name:    name,
		layer:   layer,
		walls:   NewGroup(walls...),
		Flyover: flyover,
	}
}

func (b *Building) ID() ObjectID      { return b.handle.ID }
func (b *Building) Handle() Handle    { return b.handle }
func (b *Building) Kind() ObjectKind  { return KindBuilding }
func (b *Building) Layer() int        { return b.layer }
func (b *Building) Position() Vector2 { return b.walls.Center() }
func (b *Building) Dead() bool        { return false }
func (b *Building) Collidable() bool  { return true }
func (b *Building) Hitbox() Shape     { return b.walls }

func (b *Building) setHandle(h Handle) { b.handle = h }

// Damage is a no-op, buildings cannot be destroyed
func (b *Building) Damage(DamageParams) {}
