package bots

import "henhur-arena/gameplay"

// WarHandler plays War, where there is exactly one legal action: flip
// the next card. Personas only affect pacing, not the decision itself.
type WarHandler struct{}

func (WarHandler) ActionDelayMs(p *Persona, indexInBatch int) int {
	const styleBase = 300
	const stagger = 150
	return styleBase + indexInBatch*stagger + int(p.Brain.Randomness*500)
}

func (WarHandler) Decide(persona *Persona, playerID string, viewAny any) gameplay.Action {
	return gameplay.Action{Type: "flip"}
}
