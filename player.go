package main

const (
	PlayerRadius     = 2.25
	PlayerMaxHP      = 100.0
	MaxActiveDevices = 4 // planted devices a player may own at once
)

// Player represents a connected thrower in the world
type Player struct {
	handle   Handle
	Name     string
	Team     int
	Pos      Vector2
	layer    int
	HP       float64
	MaxHP    float64
	Alive    bool
	Rotation float64

	// devices are projectiles this player can still detonate or lose
	devices  []*Projectile
	// Kills counts players killed by this player's projectiles
	Kills    int
	killedBy DamageParams
}

// NewPlayer creates a player at the given position
func NewPlayer(name string, team int, pos Vector2, layer int) *Player {
	return &Player{
		Name:  name,
		Team:  team,
		Pos:   pos,
		layer: layer,
		HP:    PlayerMaxHP,
		MaxHP: PlayerMaxHP,
		Alive: true,
	}
}

func (p *Player) ID() ObjectID       { return p.handle.ID }
func (p *Player) Handle() Handle     { return p.handle }
func (p *Player) Kind() ObjectKind   { return KindPlayer }
func (p *Player) Layer() int         { return p.layer }
func (p *Player) Position() Vector2  { return p.Pos }
func (p *Player) Dead() bool         { return !p.Alive }
func (p *Player) Collidable() bool   { return p.Alive }
func (p *Player) Hitbox() Shape      { return Circle{Position: p.Pos, Radius: PlayerRadius} }
func (p *Player) setHandle(h Handle) { p.handle = h }
func (p *Player) SetLayer(layer int) { p.layer = layer }

// Damage reduces HP and kills the player at zero
func (p *Player) Damage(params DamageParams) {
	if !p.Alive || params.Amount <= 0 {
		return
	}
	p.HP -= params.Amount
	if p.HP <= 0 {
		p.HP = 0
		p.Alive = false
		p.killedBy = params
		if killer, ok := params.Source.(*Player); ok && killer != p {
			killer.Kills++
		}
	}
}

// Respawn restores a dead player at pos
func (p *Player) Respawn(pos Vector2) {
	p.Pos = pos
	p.HP = p.MaxHP
	p.Alive = true
	p.killedBy = DamageParams{}
}

// addDevice tracks a projectile the player owns, dropping the oldest past the cap
func (p *Player) addDevice(proj *Projectile) {
	p.devices = append(p.devices, proj)
	if len(p.devices) > MaxActiveDevices {
		p.devices = p.devices[1:]
	}
}

// removeDevice forgets a tracked projectile, if present
func (p *Player) removeDevice(proj *Projectile) {
	for i, d := range p.devices {
		if d == proj {
			p.devices = append(p.devices[:i], p.devices[i+1:]...)
			return
		}
	}
}

// Devices returns the projectiles this player is tracking
func (p *Player) Devices() []*Projectile {
	return p.devices
}

// ToState converts to protocol state
func (p *Player) ToState() PlayerState {
	return PlayerState{
		ID:    uint32(p.handle.ID),
		Name:  p.Name,
		X:     round2(p.Pos.X),
		Y:     round2(p.Pos.Y),
		R:     round2(p.Rotation),
		Layer: p.layer,
		HP:    round2(p.HP),
		Team:  p.Team,
		Alive: p.Alive,
	}
}
