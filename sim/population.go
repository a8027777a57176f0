package sim

import (
	"math"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/systems"
)

// resizeTo grows or shrinks the population to the target count. Growth
// spawns at the nest; shrink removes the most recently spawned agents so
// older agents and their in-flight trips survive a resize.
func (e *Engine) resizeTo(target int) {
	if target < 0 {
		target = 0
	}
	for len(e.ants) < target {
		e.spawnAnt()
	}
	if len(e.ants) > target {
		for _, ent := range e.ants[target:] {
			e.antMapper.Remove(ent)
		}
		e.ants = e.ants[:target]
	}
}

// spawnAnt creates one agent at the nest center with a randomized heading.
func (e *Engine) spawnAnt() {
	base := e.rng.Float32() * 2 * math.Pi
	jitter := float32(e.cfg.Colony.HeadingJitter)
	h := systems.NormalizeHeading(base + (e.rng.Float32()*2-1)*jitter)

	pos := components.Position{X: e.geom.NestX, Y: e.geom.NestY}
	heading := components.Heading{Angle: h}
	cargo := components.Cargo{}
	nav := components.Navigation{}

	ent := e.antMapper.NewEntity(&pos, &heading, &cargo, &nav)
	e.ants = append(e.ants, ent)
}
