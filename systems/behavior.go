package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/forage/components"
)

// Decision/movement constants. Durations are simulated seconds, distances
// world units, angles radians.
const (
	carryTimeoutSec = 35.0 // carrying this long without delivery forces a return
	nestSignalSec   = 6.0  // beacon emission time after a delivery

	depositInterval = 0.1  // trail deposit cadence
	signalInterval  = 0.15 // nest-signal deposit cadence
	signalAmount    = 0.45 // nest-signal deposit per elapsed interval

	stallDisplacement = 0.025 // below this per-step displacement counts as stalled
	stallBreakSec     = 0.4   // stalled this long at an edge forces a nest heading
	stallQuietSec     = 0.3   // deposits are suppressed past this stall time
	edgeStallMargin   = 1.0   // distance from a world edge that counts as "at the edge"

	probeLookahead      = 4.0 // sensing distance ahead of the agent
	forcedHomeLookahead = 6.0 // widened homeward probe distance while forced
	deliveryLookahead   = 5.0 // food-trail lookup distance during delivery re-orientation

	signalWeightReturning = 0.55 // nest-signal probe weight while returning
	signalWeightForced    = 0.9  // nest-signal probe weight while forced

	influenceForced   = 1.65 // influence multiplier while forced
	influenceDelivery = 1.25 // influence multiplier for delivery re-orientation

	homeBiasReturning = 0.2  // path-integration homing blend while returning
	homeBiasForced    = 0.55 // path-integration homing blend while forced

	forcedJitterScale  = 0.35 // randomness reduction while forced
	lostTrailThreshold = 0.02 // local food-trail intensity that counts as "lost"
	wanderJitter       = 0.08 // small jitter applied to every step

	boundaryMargin = 0.5 // inward margin for the in-world check
	escapeAttempts = 6   // heading re-bias attempts before hard-clamping

	pathIntegrationCap = 1.5 // times the larger world dimension
)

// Probe fans around the current heading. The forced fan is wider so an
// overdue carrier sweeps more of its surroundings for homeward cues.
var (
	probeFanNormal = [...]float32{-math.Pi / 3, 0, math.Pi / 3}
	probeFanForced = [...]float32{-1.78, -0.628, 0, 0.628, 1.78}
)

// WorldGeom describes the static geometry of a run.
type WorldGeom struct {
	Width, Height float32
	NestX, NestY  float32
	NestRadius    float32
}

// Fields bundles the three scent grids an agent senses and writes.
type Fields struct {
	HomeTrail  *Field
	FoodTrail  *Field
	NestSignal *Field
}

// AntStepInput is the settings snapshot re-read at the start of every step.
type AntStepInput struct {
	DT             float32
	Speed          float32
	Influence      float32
	Randomness     float32
	DepositionRate float32
}

// AntStepOutcome reports the transitions an agent went through this step.
type AntStepOutcome struct {
	PickedUp     bool
	Delivered    bool
	ForcedReturn bool    // entered forced-return mode this step
	TripSeconds  float32 // pickup-to-delivery duration, set with Delivered
}

// AdvanceAnt runs one full decision/movement/deposit step for a single
// agent: sense, steer, move, deposit, then evaluate pickup and delivery.
// Agents in the same step are advanced strictly sequentially, so deposits
// made here are visible to agents updated later in the same step.
func AdvanceAnt(
	pos *components.Position,
	heading *components.Heading,
	cargo *components.Cargo,
	nav *components.Navigation,
	fields Fields,
	food *FoodManager,
	geom WorldGeom,
	in AntStepInput,
	rng *rand.Rand,
) AntStepOutcome {
	var out AntStepOutcome

	// Carry timing and the forced-return transition. The carry timer only
	// gates the transition; it is not counted further once forced.
	if cargo.Carrying {
		nav.TripTime += in.DT
		if !cargo.ForceReturn {
			cargo.CarryingTime += in.DT
			if cargo.CarryingTime >= carryTimeoutSec {
				cargo.StartForcedReturn()
				out.ForcedReturn = true
			}
		}
	}

	mode := cargo.Mode()
	h := heading.Angle

	// Steps 1-5: sense the mode's trail field and steer.
	h = steer(h, pos, nav, mode, fields, in, rng)

	// Step 6 happens inside blend/normalize helpers; re-normalize anyway
	// so jitter additions cannot leak an out-of-range heading.
	h = NormalizeHeading(h)

	// Step 7: move, staying inside the world.
	dx, dy := move(pos, &h, cargo.Carrying, geom, in.Speed*in.DT, rng)

	// Path integration accumulates realized displacement, bounded so a
	// long-lost agent's homing vector cannot grow without limit.
	nav.PathX += dx
	nav.PathY += dy
	clampPathIntegration(nav, geom)

	// Step 8: stall detection and corner breakout.
	disp := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if disp < stallDisplacement {
		nav.StalledTime += in.DT
		if nav.StalledTime > stallBreakSec && atWorldEdge(pos, geom) {
			h = NormalizeHeading(atan2(geom.NestY-pos.Y, geom.NestX-pos.X) + (rng.Float32()*2-1)*0.6)
			nav.StalledTime = 0
		}
	} else {
		nav.StalledTime = 0
	}

	// Step 9: timed trail deposit. Carriers mark the path back into the
	// home-trail field; foragers mark paths worth exploring into the
	// food-trail field.
	nav.DepositAccum += in.DT
	if intervals := int(nav.DepositAccum / depositInterval); intervals > 0 {
		nav.DepositAccum -= float32(intervals) * depositInterval
		if nav.StalledTime < stallQuietSec {
			target := fields.FoodTrail
			if cargo.Carrying {
				target = fields.HomeTrail
			}
			target.Deposit(pos.X, pos.Y, in.DepositionRate*float32(intervals))
		}
	}

	// Step 10: nest-signal emission, a short-lived beacon after a delivery
	// that helps later forced-return agents find the nest.
	if nav.NestSignalTimer > 0 {
		nav.NestSignalTimer -= in.DT
		if nav.StalledTime < stallQuietSec {
			nav.NestSignalAccum += in.DT
			if intervals := int(nav.NestSignalAccum / signalInterval); intervals > 0 {
				nav.NestSignalAccum -= float32(intervals) * signalInterval
				fields.NestSignal.Deposit(pos.X, pos.Y, signalAmount*float32(intervals))
			}
		}
	}

	// Step 11: pickup and delivery transitions.
	if !cargo.Carrying {
		if food.PickupAt(pos.X, pos.Y) {
			cargo.PickUp()
			nav.TripTime = 0
			out.PickedUp = true
		}
	} else if distanceSq(pos.X, pos.Y, geom.NestX, geom.NestY) <= geom.NestRadius*geom.NestRadius {
		out.Delivered = true
		out.TripSeconds = nav.TripTime
		cargo.Deliver()
		h = deliver(pos, h, nav, fields, geom, in, rng)
	}

	heading.Angle = NormalizeHeading(h)
	return out
}

// steer computes the agent's new desired heading from trail probes, jitter,
// and path-integration homing.
func steer(
	h float32,
	pos *components.Position,
	nav *components.Navigation,
	mode components.Mode,
	fields Fields,
	in AntStepInput,
	rng *rand.Rand,
) float32 {
	// Step 1: select the field to sense. Foragers read the food trail;
	// carriers read the home trail laid down by other carriers. The
	// cross-wired pairing with the deposit step is what produces the
	// emergent bidirectional trail.
	sense := fields.FoodTrail
	if mode != components.ModeForaging {
		sense = fields.HomeTrail
	}

	// Step 2: probe a fan of headings at a fixed lookahead. Carriers also
	// weigh in the nest-signal beacon.
	fan := probeFanNormal[:]
	lookahead := float32(probeLookahead)
	signalWeight := float32(0)
	switch mode {
	case components.ModeReturning:
		signalWeight = signalWeightReturning
	case components.ModeForcedReturn:
		fan = probeFanForced[:]
		lookahead = forcedHomeLookahead
		signalWeight = signalWeightForced
	}

	best := float32(0)
	bestAngle := h
	found := false
	for _, off := range fan {
		a := h + off
		sin, cos := sincos(a)
		px := pos.X + cos*lookahead
		py := pos.Y + sin*lookahead
		v := sense.Sample(px, py)
		if signalWeight > 0 {
			v += signalWeight * fields.NestSignal.Sample(px, py)
		}
		if v > best {
			best = v
			bestAngle = NormalizeHeading(a)
			found = true
		}
	}

	if found {
		// Step 3: blend toward the strongest probe.
		influence := in.Influence
		if mode == components.ModeForcedReturn {
			influence *= influenceForced
		}
		h = blendAngle(h, bestAngle, influenceBias(influence))
	} else {
		// Step 4: no signal anywhere; wander, and if carrying with no
		// local food trail either, fall back to dead-reckoning home.
		jitter := in.Randomness
		if mode == components.ModeForcedReturn {
			jitter *= forcedJitterScale
		}
		h += (rng.Float32()*2 - 1) * jitter

		if mode != components.ModeForaging &&
			fields.FoodTrail.Sample(pos.X, pos.Y) <= lostTrailThreshold {
			if homeAngle, ok := pathHomeAngle(nav); ok {
				bias := float32(homeBiasReturning)
				if mode == components.ModeForcedReturn {
					bias = homeBiasForced
				}
				h = blendAngle(h, homeAngle, bias)
			}
		}
	}

	// Step 5: a further small jitter, plus the standing homeward pull for
	// carriers on top of whatever steps 3-4 produced.
	h += (rng.Float32()*2 - 1) * wanderJitter
	if mode != components.ModeForaging {
		if homeAngle, ok := pathHomeAngle(nav); ok {
			bias := float32(homeBiasReturning)
			if mode == components.ModeForcedReturn {
				bias = homeBiasForced
			}
			h = blendAngle(h, homeAngle, bias)
		}
	}
	return h
}

// move projects the agent along its heading. Projections that leave the
// world re-bias the heading toward an interior anchor (the nest when
// carrying, else the world center) and retry; exhausted attempts hard-clamp
// to world bounds. Returns the realized displacement.
func move(
	pos *components.Position,
	h *float32,
	carrying bool,
	geom WorldGeom,
	dist float32,
	rng *rand.Rand,
) (dx, dy float32) {
	sin, cos := sincos(*h)
	nx := pos.X + cos*dist
	ny := pos.Y + sin*dist

	if !insideWorld(nx, ny, geom) {
		anchorX, anchorY := geom.Width/2, geom.Height/2
		if carrying {
			anchorX, anchorY = geom.NestX, geom.NestY
		}
		for attempt := 0; attempt < escapeAttempts; attempt++ {
			blend := 0.55 + rng.Float32()*0.35
			*h = blendAngle(*h, atan2(anchorY-pos.Y, anchorX-pos.X), blend)
			*h = NormalizeHeading(*h + (rng.Float32()*2-1)*0.25)
			sin, cos = sincos(*h)
			nx = pos.X + cos*dist
			ny = pos.Y + sin*dist
			if insideWorld(nx, ny, geom) {
				break
			}
		}
		nx = clampFloat(nx, 0, geom.Width)
		ny = clampFloat(ny, 0, geom.Height)
	}

	dx = nx - pos.X
	dy = ny - pos.Y
	pos.X = nx
	pos.Y = ny
	return dx, dy
}

// deliver handles the post-delivery re-orientation: arm the nest-signal
// beacon, derive an outward heading from the strongest food-trail direction
// (or a randomized reversal), snap the agent just outside the nest boundary,
// and restart path integration from there.
func deliver(
	pos *components.Position,
	h float32,
	nav *components.Navigation,
	fields Fields,
	geom WorldGeom,
	in AntStepInput,
	rng *rand.Rand,
) float32 {
	nav.NestSignalTimer = nestSignalSec
	nav.NestSignalAccum = 0
	nav.TripTime = 0

	const dirs = 8
	best := float32(0)
	bestAngle := h
	found := false
	for k := 0; k < dirs; k++ {
		a := float32(k) * (2 * math.Pi / dirs)
		sin, cos := sincos(a)
		v := fields.FoodTrail.Sample(pos.X+cos*deliveryLookahead, pos.Y+sin*deliveryLookahead)
		if v > best {
			best = v
			bestAngle = a
			found = true
		}
	}

	if found {
		h = blendAngle(h, bestAngle, influenceBias(in.Influence*influenceDelivery))
	} else {
		h = NormalizeHeading(h + math.Pi + (rng.Float32()*2-1)*0.8)
	}

	sin, cos := sincos(h)
	r := geom.NestRadius + boundaryMargin
	pos.X = geom.NestX + cos*r
	pos.Y = geom.NestY + sin*r
	nav.PathX = pos.X - geom.NestX
	nav.PathY = pos.Y - geom.NestY
	return h
}

// influenceBias converts an influence value into a blend fraction in [0,1].
// The clamp keeps malformed settings from corrupting direction math.
func influenceBias(influence float32) float32 {
	if influence <= 0 {
		return 0
	}
	return clamp01(influence / (influence + 1))
}

// pathHomeAngle returns the homeward direction implied by the negated
// path-integration vector, or false when there is no accumulated path.
func pathHomeAngle(nav *components.Navigation) (float32, bool) {
	if nav.PathX == 0 && nav.PathY == 0 {
		return 0, false
	}
	return atan2(-nav.PathY, -nav.PathX), true
}

// clampPathIntegration bounds the dead-reckoning vector's magnitude to
// 1.5x the larger world dimension.
func clampPathIntegration(nav *components.Navigation, geom WorldGeom) {
	limit := geom.Width
	if geom.Height > limit {
		limit = geom.Height
	}
	limit *= pathIntegrationCap

	magSq := nav.PathX*nav.PathX + nav.PathY*nav.PathY
	if magSq > limit*limit {
		scale := limit / float32(math.Sqrt(float64(magSq)))
		nav.PathX *= scale
		nav.PathY *= scale
	}
}

// insideWorld reports whether the point lies inside the world with a small
// inward margin.
func insideWorld(x, y float32, geom WorldGeom) bool {
	return x >= boundaryMargin && x <= geom.Width-boundaryMargin &&
		y >= boundaryMargin && y <= geom.Height-boundaryMargin
}

// atWorldEdge reports whether the point sits against a world edge.
func atWorldEdge(pos *components.Position, geom WorldGeom) bool {
	return pos.X <= edgeStallMargin || pos.X >= geom.Width-edgeStallMargin ||
		pos.Y <= edgeStallMargin || pos.Y >= geom.Height-edgeStallMargin
}
