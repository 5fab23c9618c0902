package layout

import (
	"hash/fnv"
	"math"

	"github.com/telintel/cdrlink/pkg/cdr"
	"github.com/telintel/cdrlink/pkg/graph"
)

// State is the lifecycle phase of a simulation.
type State string

const (
	StateIdle       State = "idle"
	StateSimulating State = "simulating"
	StateSettled    State = "settled"
)

// Position is a 2D coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Config configures simulation parameters. The zero value is filled
// with defaults by NewSimulation.
type Config struct {
	Width   float64 // viewport width
	Height  float64 // viewport height
	Padding float64 // padding from the viewport edges

	ChargeStrength  float64 // base many-body repulsion, negative
	ChargeMax       float64 // repulsion interaction cutoff distance
	CenterStrength  float64 // pull toward the viewport center
	CollideStrength float64 // overlap correction factor
	CollidePadding  float64 // extra clearance between node rims
	VelocityDecay   float64 // per-tick velocity damping, 0..1
	AlphaDecay      float64 // per-tick energy decay, 0..1
	AlphaMin        float64 // energy floor treated as settled
	MaxSteps        int     // hard stop for runaway simulations
}

// DefaultConfig returns the production simulation parameters for a
// viewport of the given size.
func DefaultConfig(width, height float64) Config {
	return Config{
		Width:           width,
		Height:          height,
		Padding:         50,
		ChargeStrength:  -50,
		ChargeMax:       200,
		CenterStrength:  0.05,
		CollideStrength: 0.8,
		CollidePadding:  5,
		VelocityDecay:   0.4,
		AlphaDecay:      0.02,
		AlphaMin:        0.001,
		MaxSteps:        300,
	}
}

type body struct {
	id       cdr.Identifier
	size     float64
	pos      Position
	vel      Position
	chargeMu float64 // per-node charge multiplier from size
}

// Simulation owns the position map for one visible subgraph. Exactly
// one simulation may be stepping at a time; Start fully discards any
// in-flight run before seeding, so two integrators never write the
// same positions. Not safe for concurrent use: the caller steps it
// from a single loop.
type Simulation struct {
	cfg   Config
	state State
	alpha float64
	steps int

	bodies []*body
	index  map[cdr.Identifier]*body
	edges  []*graph.Edge
}

// NewSimulation returns an idle simulation with the given config.
// Zero config fields fall back to defaults.
func NewSimulation(cfg Config) *Simulation {
	def := DefaultConfig(cfg.Width, cfg.Height)
	if cfg.Padding == 0 {
		cfg.Padding = def.Padding
	}
	if cfg.ChargeStrength == 0 {
		cfg.ChargeStrength = def.ChargeStrength
	}
	if cfg.ChargeMax == 0 {
		cfg.ChargeMax = def.ChargeMax
	}
	if cfg.CenterStrength == 0 {
		cfg.CenterStrength = def.CenterStrength
	}
	if cfg.CollideStrength == 0 {
		cfg.CollideStrength = def.CollideStrength
	}
	if cfg.CollidePadding == 0 {
		cfg.CollidePadding = def.CollidePadding
	}
	if cfg.VelocityDecay == 0 {
		cfg.VelocityDecay = def.VelocityDecay
	}
	if cfg.AlphaDecay == 0 {
		cfg.AlphaDecay = def.AlphaDecay
	}
	if cfg.AlphaMin == 0 {
		cfg.AlphaMin = def.AlphaMin
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = def.MaxSteps
	}
	return &Simulation{cfg: cfg, state: StateIdle}
}

// State returns the current lifecycle phase.
func (s *Simulation) State() State { return s.state }

// Start discards any in-flight run and seeds a fresh simulation for
// the given visible subgraph. Initial positions derive from each node
// id, so the same graph always starts from the same arrangement.
func (s *Simulation) Start(g *graph.Graph, width, height float64) {
	s.Stop()
	if width > 0 {
		s.cfg.Width = width
	}
	if height > 0 {
		s.cfg.Height = height
	}

	s.bodies = make([]*body, 0, len(g.Nodes))
	s.index = make(map[cdr.Identifier]*body, len(g.Nodes))
	s.edges = g.Edges

	spanX := s.cfg.Width - 2*s.cfg.Padding
	spanY := s.cfg.Height - 2*s.cfg.Padding
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}

	chargeBase := s.cfg.ChargeStrength
	if len(g.Nodes) > 100 {
		chargeBase *= 0.6 // crowded graphs repel less to stay on screen
	}

	for _, node := range g.Nodes {
		size := NodeSize(node.TotalInteractions())
		seedX, seedY := seedFractions(node.ID)
		b := &body{
			id:       node.ID,
			size:     size,
			pos:      Position{X: s.cfg.Padding + seedX*spanX, Y: s.cfg.Padding + seedY*spanY},
			chargeMu: chargeBase * (size / 20),
		}
		s.bodies = append(s.bodies, b)
		s.index[node.ID] = b
	}

	if len(s.bodies) == 0 {
		s.state = StateSettled
		return
	}
	if len(s.bodies) == 1 {
		s.bodies[0].pos = Position{X: s.cfg.Width / 2, Y: s.cfg.Height / 2}
		s.state = StateSettled
		return
	}

	s.alpha = 1
	s.steps = 0
	s.state = StateSimulating
}

// Restart re-injects energy into the current body set and resumes
// simulating from the present positions.
func (s *Simulation) Restart() {
	if len(s.bodies) < 2 {
		return
	}
	s.alpha = 1
	s.steps = 0
	s.state = StateSimulating
}

// Stop discards iteration state and returns to Idle. Positions remain
// readable until the next Start.
func (s *Simulation) Stop() {
	s.alpha = 0
	s.steps = 0
	s.state = StateIdle
}

// Step advances the simulation one tick and reports whether it is
// still running. Idle and settled simulations are no-ops.
func (s *Simulation) Step() bool {
	if s.state != StateSimulating {
		return false
	}

	s.applyLinks()
	s.applyCharge()
	s.applyCollision()
	s.applyCentering()
	s.integrate()

	s.steps++
	s.alpha -= s.alpha * s.cfg.AlphaDecay
	if s.alpha < s.cfg.AlphaMin || s.steps >= s.cfg.MaxSteps {
		s.state = StateSettled
		return false
	}
	return true
}

// Run steps until settled. Convenience for batch export.
func (s *Simulation) Run() {
	for s.Step() {
	}
}

// applyLinks pulls edge endpoints toward the edge's rest distance.
func (s *Simulation) applyLinks() {
	for _, e := range s.edges {
		a, okA := s.index[e.A]
		b, okB := s.index[e.B]
		if !okA || !okB {
			continue
		}
		dx := b.pos.X - a.pos.X
		dy := b.pos.Y - a.pos.Y
		dist := math.Hypot(dx, dy)
		if dist < 1e-6 {
			dx, dy, dist = 1e-3, 1e-3, math.Sqrt2*1e-3
		}
		displacement := (dist - restDistance(e)) / dist * stiffness(e) * s.alpha
		fx := dx * displacement / 2
		fy := dy * displacement / 2
		a.vel.X += fx
		a.vel.Y += fy
		b.vel.X -= fx
		b.vel.Y -= fy
	}
}

// applyCharge repels every node pair within the interaction cutoff.
func (s *Simulation) applyCharge() {
	for i, a := range s.bodies {
		for _, b := range s.bodies[i+1:] {
			dx := b.pos.X - a.pos.X
			dy := b.pos.Y - a.pos.Y
			dist := math.Hypot(dx, dy)
			if dist > s.cfg.ChargeMax {
				continue
			}
			if dist < 1 {
				dist = 1
			}
			strength := (a.chargeMu + b.chargeMu) / 2 * s.alpha / (dist * dist)
			fx := dx * strength
			fy := dy * strength
			a.vel.X += fx
			a.vel.Y += fy
			b.vel.X -= fx
			b.vel.Y -= fy
		}
	}
}

// applyCollision pushes overlapping node rims apart.
func (s *Simulation) applyCollision() {
	for i, a := range s.bodies {
		for _, b := range s.bodies[i+1:] {
			minDist := a.size/2 + b.size/2 + s.cfg.CollidePadding
			dx := b.pos.X - a.pos.X
			dy := b.pos.Y - a.pos.Y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist < 1e-6 {
				dx, dy, dist = 1e-3, 1e-3, math.Sqrt2*1e-3
			}
			push := (minDist - dist) / dist * s.cfg.CollideStrength / 2
			a.pos.X -= dx * push
			a.pos.Y -= dy * push
			b.pos.X += dx * push
			b.pos.Y += dy * push
		}
	}
}

// applyCentering pulls every node weakly toward the viewport center.
func (s *Simulation) applyCentering() {
	cx := s.cfg.Width / 2
	cy := s.cfg.Height / 2
	for _, b := range s.bodies {
		b.vel.X += (cx - b.pos.X) * s.cfg.CenterStrength * s.alpha
		b.vel.Y += (cy - b.pos.Y) * s.cfg.CenterStrength * s.alpha
	}
}

func (s *Simulation) integrate() {
	keep := 1 - s.cfg.VelocityDecay
	for _, b := range s.bodies {
		b.vel.X *= keep
		b.vel.Y *= keep
		b.pos.X += b.vel.X
		b.pos.Y += b.vel.Y
	}
}

// KineticEnergy is the total squared speed across bodies, the settle
// signal surfaced for metrics and the workbench status line.
func (s *Simulation) KineticEnergy() float64 {
	total := 0.0
	for _, b := range s.bodies {
		total += b.vel.X*b.vel.X + b.vel.Y*b.vel.Y
	}
	return total
}

// Steps returns the tick count of the current run.
func (s *Simulation) Steps() int { return s.steps }

// Bounds returns the viewport size the simulation is laying out into.
func (s *Simulation) Bounds() (width, height float64) {
	return s.cfg.Width, s.cfg.Height
}

// Positions snapshots current positions normalized to the viewport
// bounds. The returned map is a copy; the simulation keeps sole
// ownership of its internal state.
func (s *Simulation) Positions() map[cdr.Identifier]Position {
	raw := make(map[cdr.Identifier]Position, len(s.bodies))
	for _, b := range s.bodies {
		raw[b.id] = b.pos
	}
	if len(raw) < 2 {
		return raw
	}
	return normalizePositions(raw, s.cfg.Width, s.cfg.Height, s.cfg.Padding)
}

// seedFractions hashes a node id into two stable unit-interval
// fractions, so layout runs are reproducible without a RNG.
func seedFractions(id cdr.Identifier) (float64, float64) {
	h := fnv.New64a()
	h.Write([]byte(id))
	sum := h.Sum64()
	x := float64(sum&0xFFFFFFFF) / float64(1<<32)
	y := float64(sum>>32) / float64(1<<32)
	return x, y
}

// normalizePositions scales positions to fit within bounds.
func normalizePositions(positions map[cdr.Identifier]Position, width, height, padding float64) map[cdr.Identifier]Position {
	if len(positions) == 0 {
		return positions
	}

	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(map[cdr.Identifier]Position, len(positions))
	for id, pos := range positions {
		normalized[id] = Position{
			X: padding + ((pos.X-minX)/rangeX)*targetWidth,
			Y: padding + ((pos.Y-minY)/rangeY)*targetHeight,
		}
	}
	return normalized
}
