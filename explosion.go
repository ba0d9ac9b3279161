package main

// SpawnExplosion damages everything on the layer whose hitbox touches the blast.
// Damage falls off linearly from def.Damage at the centre to zero at def.Radius.
func (w *World) SpawnExplosion(def *ExplosionDefinition, pos Vector2, thrower *Player, layer int, weapon string) {
	if def == nil || def.Radius <= 0 {
		return
	}
	blast := Circle{Position: pos, Radius: def.Radius}
	var source Object
	if thrower != nil {
		source = thrower
	}

	l := layer
	for _, obj := range w.Query(blast, &l) {
		if obj.Dead() || obj.Layer() != layer {
			continue
		}
		hitbox := obj.Hitbox()
		if hitbox == nil || !blast.Collides(hitbox) {
			continue
		}
		amount := def.Damage * explosionFalloff(Distance(pos, obj.Position()), def.Radius)
		if obj.Kind() == KindObstacle {
			amount *= def.ObstacleMultiplier
		}
		if amount <= 0 {
			continue
		}
		obj.Damage(DamageParams{Amount: amount, Source: source, WeaponUsed: weapon})
		w.MarkDirty(obj.ID(), false)

		evt := CombatEvent{Type: EvtExplosion, Weapon: weapon, TargetID: obj.ID(), Amount: amount, X: pos.X, Y: pos.Y}
		if thrower != nil {
			evt.SourceID = thrower.ID()
		}
		w.RecordCombat(evt)
	}
	w.emitExplosion(ExplosionState{Def: def.ID, X: round2(pos.X), Y: round2(pos.Y), Layer: layer})
}

// explosionFalloff is 1 at the centre and 0 at the edge of the blast
func explosionFalloff(dist, radius float64) float64 {
	return Clamp(1-dist/radius, 0, 1)
}

func (w *World) emitExplosion(s ExplosionState) {
	w.explosions = append(w.explosions, s)
}

// TakeExplosions returns and clears the explosions spawned since the last call
func (w *World) TakeExplosions() []ExplosionState {
	out := w.explosions
	w.explosions = nil
	return out
}
