package bots

import "henhur-arena/gameplay"

// Handler is the per-variant bridge between a Persona and a concrete
// decision: given a game's current projection for a bot's own seat, pick
// the action to submit. Each hosted variant that wants bot seats
// implements one.
type Handler interface {
	// Decide returns the action a bot holding persona should submit,
	// given the variant's own ProjectFor(botID) result.
	Decide(persona *Persona, playerID string, view any) gameplay.Action

	// ActionDelayMs returns the "thinking" delay before the decision is
	// submitted, so bot play doesn't look instantaneous. indexInBatch is
	// this bot's position among every seat pending in the same poke, so
	// a batch of simultaneous bots staggers instead of firing as one.
	ActionDelayMs(persona *Persona, indexInBatch int) int
}

// HandlerRegistry maps a variant tag to the Handler that knows how to
// play it, so package lobby can look one up without importing every
// variant package directly.
type HandlerRegistry struct {
	handlers map[string]Handler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]Handler)}
}

func (r *HandlerRegistry) Register(variant string, h Handler) {
	r.handlers[variant] = h
}

func (r *HandlerRegistry) Get(variant string) (Handler, bool) {
	h, ok := r.handlers[variant]
	return h, ok
}
