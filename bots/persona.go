// Package bots hosts the NPC seat-filling and decision-making machinery
// named in spec §4.H: a persona catalog, a per-variant Handler interface,
// and a Scheduler that times decisions the way the teacher's
// table.scheduleNPCAction does — a timer waits out a "thinking" delay,
// then injects the decision back through the same path a real player's
// action would take.
package bots

// Brain is the tunable personality knobs a rule-based bot reads. The
// teacher's poker persona tunes aggression/tightness/bluffing; HenHur's
// remap is burn-eagerness (how readily a bot commits a card to a burn
// slot), token-hoarding (how reluctant it is to spend tokens) and
// bid-aggression (how highly it values winning an auction over
// preserving hand cards), plus a randomness knob shared with the
// teacher's noise term.
type Brain struct {
	BurnEagerness  float64
	TokenHoarding  float64
	BidAggression  float64
	Randomness     float64
}

// Persona is one named, tiered NPC definition (spec §4.H's "style
// catalog" with difficulty tiers).
type Persona struct {
	ID    string
	Name  string
	Tier  int // 1 = easy, higher = more capable
	Brain Brain
}

// Registry holds the persona catalog, grounded on the teacher's
// npc.PersonaRegistry but without the JSON-file loading path since the
// bundled catalog is small and fixed in code.
type Registry struct {
	personas map[string]*Persona
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{personas: make(map[string]*Persona)}
}

func (r *Registry) Register(p *Persona) {
	if _, exists := r.personas[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.personas[p.ID] = p
}

func (r *Registry) Get(id string) (*Persona, bool) {
	p, ok := r.personas[id]
	return p, ok
}

func (r *Registry) All() []*Persona {
	out := make([]*Persona, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.personas[id])
	}
	return out
}

func (r *Registry) ByTier(tier int) []*Persona {
	var out []*Persona
	for _, id := range r.order {
		if p := r.personas[id]; p.Tier == tier {
			out = append(out, p)
		}
	}
	return out
}

func (r *Registry) Count() int { return len(r.personas) }

// DefaultRegistry bundles a small three-tier sample catalog, enough to
// auto-fill a table the way the teacher's lobby.fillTableWithNPCs does.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&Persona{ID: "cautious-clara", Name: "Cautious Clara", Tier: 1,
		Brain: Brain{BurnEagerness: 0.15, TokenHoarding: 0.8, BidAggression: 0.2, Randomness: 0.1}})
	r.Register(&Persona{ID: "steady-sam", Name: "Steady Sam", Tier: 2,
		Brain: Brain{BurnEagerness: 0.4, TokenHoarding: 0.5, BidAggression: 0.5, Randomness: 0.2}})
	r.Register(&Persona{ID: "reckless-rex", Name: "Reckless Rex", Tier: 3,
		Brain: Brain{BurnEagerness: 0.8, TokenHoarding: 0.15, BidAggression: 0.85, Randomness: 0.35}})
	return r
}
