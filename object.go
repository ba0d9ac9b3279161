package main

// ObjectID is an arena slot index into the world registry. Slot 0 is never used.
type ObjectID uint32

// Handle is a weak reference to an object: a slot plus the slot generation it
// was issued for. A handle to a removed object never resolves again, even after
// its slot is reused.
type Handle struct {
	ID  ObjectID
	Gen uint32
}

// ObjectKind is the closed set of world object variants
type ObjectKind uint8

const (
	KindPlayer ObjectKind = iota + 1
	KindObstacle
	KindBuilding
	KindProjectile
)

func (k ObjectKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindObstacle:
		return "obstacle"
	case KindBuilding:
		return "building"
	case KindProjectile:
		return "projectile"
	}
	return "unknown"
}

// DamageParams describes one damage application
type DamageParams struct {
	Amount     float64
	Source     Object // thrower, may be nil
	WeaponUsed string // definition ID of the projectile or explosion
}

// Object is anything registered in the world
type Object interface {
	ID() ObjectID
	Handle() Handle
	Kind() ObjectKind
	Layer() int
	Position() Vector2
	Dead() bool
	// Collidable reports whether the object currently blocks projectiles.
	Collidable() bool
	// Hitbox returns the object's shape in world coordinates, nil if it has none.
	Hitbox() Shape
	Damage(params DamageParams)
}

// isObstacleOrBuilding groups the two static-geometry variants
func isObstacleOrBuilding(k ObjectKind) bool {
	return k == KindObstacle || k == KindBuilding
}

// registrable is implemented by objects the world can assign a handle to
type registrable interface {
	Object
	setHandle(h Handle)
}

// ObjectSet is a weak reference set keyed by Handle. It holds no pointers so
// membership never keeps an object alive.
type ObjectSet map[Handle]struct{}

func (s ObjectSet) Has(h Handle) bool {
	_, ok := s[h]
	return ok
}

func (s ObjectSet) Add(h Handle) {
	s[h] = struct{}{}
}
