package main

import "time"

// ThrowableDefinition holds the static stats of a projectile type
type ThrowableDefinition struct {
	ID     string
	Radius float64
	// SpeedCap limits displacement per ms, in units/ms
	SpeedCap float64
	// ImpactDamage, when set, is dealt to players and obstacles hit while airborne
	ImpactDamage       *float64
	ObstacleMultiplier float64
	// Health, when set, lets the projectile be destroyed by damage
	Health *float64
	// Stationary devices are planted, never integrated or collided
	Stationary    bool
	FuseTime      time.Duration
	Explosion     string  // explosion definition ID, empty for none
	InitialSpin   float64 // radians/ms
	MaxThrowSpeed float64 // units/ms at full power

	// cosmetic, replicated on first observation only
	Image string
	Tint  uint32
}

// ExplosionDefinition describes a blast
type ExplosionDefinition struct {
	ID     string
	Damage float64
	Radius float64
	// ObstacleMultiplier scales damage dealt to obstacles
	ObstacleMultiplier float64
}

func f64(v float64) *float64 { return &v }

// Throwables is the full catalog of projectile types, keyed by ID
var Throwables = map[string]*ThrowableDefinition{
	"frag_grenade": {
		ID: "frag_grenade", Radius: 1, SpeedCap: 0.1, ObstacleMultiplier: 1,
		FuseTime: 4 * time.Second, Explosion: "frag_explosion",
		InitialSpin: 0.01, MaxThrowSpeed: 0.09,
		Image: "frag_grenade", Tint: 0x6b8e23,
	},
	"smoke_grenade": {
		ID: "smoke_grenade", Radius: 1, SpeedCap: 0.1, ObstacleMultiplier: 1,
		FuseTime: 2 * time.Second, Explosion: "smoke_explosion",
		InitialSpin: 0.01, MaxThrowSpeed: 0.09,
		Image: "smoke_grenade", Tint: 0x999999,
	},
	// stickbomb deals contact damage and can be shot down before it goes off
	"stickbomb": {
		ID: "stickbomb", Radius: 1, SpeedCap: 0.1,
		ImpactDamage: f64(8), ObstacleMultiplier: 2, Health: f64(20),
		FuseTime: 3 * time.Second, Explosion: "stickbomb_explosion",
		InitialSpin: 0.02, MaxThrowSpeed: 0.08,
		Image: "stickbomb", Tint: 0xaa3322,
	},
	"c4": {
		ID: "c4", Radius: 1.5, SpeedCap: 0.1, ObstacleMultiplier: 1,
		Health: f64(40), Stationary: true, FuseTime: 500 * time.Millisecond,
		Explosion: "c4_explosion", Image: "c4", Tint: 0x333333,
	},
	// brick has no blast, its fuse only clears it from the world
	"brick": {
		ID: "brick", Radius: 1.2, SpeedCap: 0.12,
		ImpactDamage: f64(15), ObstacleMultiplier: 1.5,
		FuseTime: 6 * time.Second, InitialSpin: 0.03, MaxThrowSpeed: 0.1,
		Image: "brick", Tint: 0x8b4513,
	},
}

// Explosions is the catalog of blast types, keyed by ID
var Explosions = map[string]*ExplosionDefinition{
	"frag_explosion":      {ID: "frag_explosion", Damage: 120, Radius: 25, ObstacleMultiplier: 1.5},
	"smoke_explosion":     {ID: "smoke_explosion", Damage: 0, Radius: 30, ObstacleMultiplier: 0},
	"stickbomb_explosion": {ID: "stickbomb_explosion", Damage: 90, Radius: 18, ObstacleMultiplier: 2},
	"c4_explosion":        {ID: "c4_explosion", Damage: 150, Radius: 30, ObstacleMultiplier: 3},
}

// GetThrowable returns a throwable definition by ID
func GetThrowable(id string) (*ThrowableDefinition, bool) {
	def, ok := Throwables[id]
	return def, ok
}

// ObstacleDefinitions is the catalog of obstacle types, keyed by ID
var ObstacleDefinitions = map[string]*ObstacleDefinition{
	"crate":  {ID: "crate", Health: 80, Flyover: FlyoverAlways},
	"barrel": {ID: "barrel", Health: 40, Flyover: FlyoverSometimes},
	"rock":   {ID: "rock", Health: 200, Flyover: FlyoverNever},
	"wall":   {ID: "wall", Indestructible: true, Flyover: FlyoverNever},
	"door":   {ID: "door", Indestructible: true, Door: true, Flyover: FlyoverSometimes},
	"stair":  {ID: "stair", Indestructible: true, Stair: &StairDefinition{Low: 0, High: 1, Up: Vec(1, 0)}},
}
