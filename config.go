package main

import (
	"flag"
	"time"

	"github.com/pkg/errors"
)

// Config holds server settings, filled from flags
type Config struct {
	Addr           string
	DBPath         string
	TickRate       int // simulation ticks per second
	BroadcastRate  int // snapshots per second
	WorldWidth     float64
	WorldHeight    float64
	MaxPlayers     int
	MaxProjectiles int
	RespawnDelay   time.Duration
	TokenTTL       time.Duration
	// JWTSecret overrides the secret stored in the database when set
	JWTSecret string
}

// DefaultConfig returns the settings used when no flags are given
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		DBPath:         "throwables.db",
		TickRate:       40,
		BroadcastRate:  20,
		WorldWidth:     512,
		WorldHeight:    512,
		MaxPlayers:     32,
		MaxProjectiles: 400,
		RespawnDelay:   3 * time.Second,
		TokenTTL:       24 * time.Hour,
	}
}

// RegisterFlags binds the config fields to fs
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite database path (empty disables persistence)")
	fs.IntVar(&c.TickRate, "tick-rate", c.TickRate, "simulation ticks per second")
	fs.IntVar(&c.BroadcastRate, "broadcast-rate", c.BroadcastRate, "state broadcasts per second")
	fs.Float64Var(&c.WorldWidth, "width", c.WorldWidth, "world width in units")
	fs.Float64Var(&c.WorldHeight, "height", c.WorldHeight, "world height in units")
	fs.IntVar(&c.MaxPlayers, "max-players", c.MaxPlayers, "players allowed in the arena")
	fs.IntVar(&c.MaxProjectiles, "max-projectiles", c.MaxProjectiles, "projectiles allowed in flight")
	fs.DurationVar(&c.RespawnDelay, "respawn", c.RespawnDelay, "delay before a dead player respawns")
	fs.DurationVar(&c.TokenTTL, "token-ttl", c.TokenTTL, "player token lifetime")
	fs.StringVar(&c.JWTSecret, "jwt-secret", c.JWTSecret, "token signing secret (default: stored in db)")
}

// ParseConfig parses args into a validated config
func ParseConfig(args []string) (Config, error) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("throwables-server", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse flags")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0 || c.TickRate > 1000:
		return errors.Errorf("tick rate %d out of range (1-1000)", c.TickRate)
	case c.BroadcastRate <= 0 || c.BroadcastRate > c.TickRate:
		return errors.Errorf("broadcast rate %d must be between 1 and the tick rate %d", c.BroadcastRate, c.TickRate)
	case c.WorldWidth <= 0 || c.WorldHeight <= 0:
		return errors.Errorf("world size %gx%g must be positive", c.WorldWidth, c.WorldHeight)
	case c.MaxPlayers <= 0:
		return errors.Errorf("max players %d must be positive", c.MaxPlayers)
	case c.MaxProjectiles <= 0:
		return errors.Errorf("max projectiles %d must be positive", c.MaxProjectiles)
	case c.TokenTTL <= 0:
		return errors.Errorf("token ttl %v must be positive", c.TokenTTL)
	}
	return nil
}

// TickDuration is the wall and simulation time of one tick
func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// TickMillis is the tick length in milliseconds, the unit of projectile dt
func (c Config) TickMillis() float64 {
	return float64(c.TickDuration()) / float64(time.Millisecond)
}

// BroadcastEvery is the number of ticks between broadcasts
func (c Config) BroadcastEvery() int {
	n := c.TickRate / c.BroadcastRate
	if n < 1 {
		n = 1
	}
	return n
}
