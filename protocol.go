package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin     = "join"
	MsgLeave    = "leave"
	MsgThrow    = "throw"
	MsgArm      = "arm"      // plant a stationary device
	MsgDetonate = "detonate" // trigger planted devices
)

// Server -> Client message types
const (
	MsgState   = "state"
	MsgWelcome = "welcome"
	MsgDeath   = "death"
	MsgError   = "error"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages, json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// JoinMsg is sent when a player wants to enter the arena
type JoinMsg struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// ThrowMsg releases a throwable in the given direction
type ThrowMsg struct {
	Def   string  `json:"def"`
	Angle float64 `json:"angle"` // radians
	Power float64 `json:"power"` // 0..1 of the definition's max throw speed
}

// ArmMsg plants a stationary device at the player's feet
type ArmMsg struct {
	Def string `json:"def"`
}

// TokenRequest is the body of POST /token
type TokenRequest struct {
	Name string `json:"name"`
}

// TokenResponse is returned by POST /token
type TokenResponse struct {
	Token   string `json:"token"`
	Subject string `json:"sub"`
}

// PlayerState is broadcast per player
type PlayerState struct {
	ID    uint32  `json:"id" msgpack:"id"`
	Name  string  `json:"n" msgpack:"n"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	R     float64 `json:"r" msgpack:"r"`
	Layer int     `json:"l" msgpack:"l"`
	HP    float64 `json:"hp" msgpack:"hp"`
	Team  int     `json:"tm" msgpack:"tm"`
	Alive bool    `json:"a" msgpack:"a"`
}

// ObstacleState is broadcast per obstacle
type ObstacleState struct {
	ID    uint32  `json:"id" msgpack:"id"`
	Def   string  `json:"def" msgpack:"def"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Layer int     `json:"l" msgpack:"l"`
	Dead  bool    `json:"dd,omitempty" msgpack:"dd,omitempty"`
	Open  bool    `json:"o,omitempty" msgpack:"o,omitempty"`
}

// ProjectileStatic carries definition and cosmetic fields, sent once per observer
type ProjectileStatic struct {
	Def    string  `json:"def" msgpack:"def"`
	Radius float64 `json:"rad" msgpack:"rad"`
	Image  string  `json:"img" msgpack:"img"`
	Tint   uint32  `json:"tint" msgpack:"tint"`
}

// ProjectileState is broadcast per projectile
type ProjectileState struct {
	ID        uint32            `json:"id" msgpack:"id"`
	X         float64           `json:"x" msgpack:"x"`
	Y         float64           `json:"y" msgpack:"y"`
	R         float64           `json:"r" msgpack:"r"`
	Layer     int               `json:"l" msgpack:"l"`
	Airborne  bool              `json:"air" msgpack:"air"`
	Activated bool              `json:"act" msgpack:"act"`
	Team      int               `json:"tm" msgpack:"tm"` // thrower team, -1 if none
	Full      *ProjectileStatic `json:"f,omitempty" msgpack:"f,omitempty"`
}

// ExplosionState announces a blast spawned since the previous snapshot
type ExplosionState struct {
	Def   string  `json:"def" msgpack:"def"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Layer int     `json:"l" msgpack:"l"`
}

// GameState is one replication frame. Only objects that changed since the
// previous frame are included; Removed lists objects that left the world.
type GameState struct {
	Players     []PlayerState     `json:"p" msgpack:"p"`
	Obstacles   []ObstacleState   `json:"o,omitempty" msgpack:"o,omitempty"`
	Projectiles []ProjectileState `json:"pr" msgpack:"pr"`
	Explosions  []ExplosionState  `json:"ex,omitempty" msgpack:"ex,omitempty"`
	Removed     []uint32          `json:"rm,omitempty" msgpack:"rm,omitempty"`
	Tick        uint64            `json:"tick" msgpack:"tick"`
}

// WelcomeMsg is sent to a player when they join
type WelcomeMsg struct {
	ID     uint32  `json:"id"`
	Team   int     `json:"tm"`
	Layer  int     `json:"l"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

// DeathMsg notifies a player they died
type DeathMsg struct {
	KillerID   uint32 `json:"kid"`
	KillerName string `json:"kn"`
	Weapon     string `json:"wpn"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}
