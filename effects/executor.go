package effects

import (
	"henhur-arena/card"

	"github.com/sirupsen/logrus"
)

func executeOne(e card.Effect, ctx *Context) (Result, *RequiresInput) {
	switch e.Type {
	case card.EffectMovePlayerPosition:
		return movePlayerPosition(e, ctx), nil
	case card.EffectMoveOpponentPosition:
		return moveOpponentPosition(e, ctx)
	case card.EffectAffectTokenPool:
		return affectTokenPool(e, ctx), nil
	case card.EffectDrawCards:
		return drawCards(e, ctx), nil
	case card.EffectDiscardCards:
		return discardCards(e, ctx), nil
	case card.EffectModifyPriority:
		return modifyPriority(e, ctx), nil
	case card.EffectAffectPlayerMat:
		return affectPlayerMat(e, ctx), nil
	default:
		logrus.WithField("type", e.Type).Warn("effects: unknown effect type")
		return Result{Success: false, Message: "unknown effect type"}, nil
	}
}

// MoveWithWrap implements the lap-wrap position math of spec §4.C's
// move_player_position: advancing past the end of a lap increments lap
// and wraps space, retreating below zero decrements lap and wraps space,
// floored at lap 1 / space 0. It is shared by the card effect below and
// by the turn engine's own race-distance movement, so both use the exact
// same arithmetic.
func MoveWithWrap(trackLen, space, lap, distance int) (newSpace, newLap int) {
	space += distance
	for space >= trackLen {
		lap++
		space -= trackLen
	}
	for space < 0 {
		if lap > 1 {
			lap--
			space += trackLen
		} else {
			space = 0
			break
		}
	}
	return space, lap
}

func movePlayerPosition(e card.Effect, ctx *Context) Result {
	trackLen := ctx.Game.TrackLength()
	space, lap := ctx.Player.Position()
	space, lap = MoveWithWrap(trackLen, space, lap, e.Distance)

	ctx.Player.SetPosition(space, lap)
	ctx.Player.AddDistanceMoved(absInt(e.Distance))
	return Result{Success: true}
}

func moveOpponentPosition(e card.Effect, ctx *Context) (Result, *RequiresInput) {
	if e.TargetSelection == card.TargetChoose && ctx.TargetPlayerID == "" {
		return Result{Success: true}, &RequiresInput{
			Kind: "choose_opponent",
			Params: map[string]any{
				"distance": e.Distance,
			},
		}
	}

	var targets []string
	switch e.TargetSelection {
	case card.TargetChoose:
		targets = []string{ctx.TargetPlayerID}
	case card.TargetAll:
		targets = ctx.Game.Opponents(ctx.PlayerID)
	case card.TargetRandom:
		if id, ok := ctx.Game.RandomOpponent(ctx.PlayerID); ok {
			targets = []string{id}
		}
	default:
		targets = []string{ctx.TargetPlayerID}
	}

	if e.RequiresAdjacent {
		targets = nearestBySpace(ctx, targets)
	}

	applied := 0
	for _, id := range targets {
		p, ok := ctx.Game.Player(id)
		if !ok {
			continue
		}
		space, lap := p.Position()
		space += e.Distance
		if space < 0 {
			space = 0
		}
		p.SetPosition(space, lap)
		applied++
	}
	if applied == 0 {
		return Result{Success: false, Message: "no valid target for move_opponent_position"}, nil
	}
	return Result{Success: true}, nil
}

// nearestBySpace restricts targets to whichever opponents sit closest (by
// absolute space delta) to the acting player — the spec names
// requiresAdjacent but does not define "adjacent" precisely, so distance
// on the track is used as the closest faithful reading.
func nearestBySpace(ctx *Context, targets []string) []string {
	if len(targets) <= 1 {
		return targets
	}
	mySpace, _ := ctx.Player.Position()
	best := -1
	var nearest []string
	for _, id := range targets {
		p, ok := ctx.Game.Player(id)
		if !ok {
			continue
		}
		space, _ := p.Position()
		delta := absInt(space - mySpace)
		switch {
		case best == -1 || delta < best:
			best = delta
			nearest = []string{id}
		case delta == best:
			nearest = append(nearest, id)
		}
	}
	return nearest
}

func affectTokenPool(e card.Effect, ctx *Context) Result {
	switch e.TokenAction {
	case card.TokenGain:
		room := ctx.Player.MaxTokens() - ctx.Player.TotalTokens()
		if room < 0 {
			room = 0
		}
		add := e.Count
		if add > room {
			add = room
		}
		ctx.Player.SetTokenCount(e.TokenType, ctx.Player.TokenCount(e.TokenType)+add)
	case card.TokenSpend:
		cur := ctx.Player.TokenCount(e.TokenType) - e.Count
		if cur < 0 {
			cur = 0
		}
		ctx.Player.SetTokenCount(e.TokenType, cur)
	case card.TokenSet:
		ctx.Player.SetTokenCount(e.TokenType, e.Count)
	default:
		return Result{Success: false, Message: "unknown token action"}
	}
	return Result{Success: true}
}

func drawCards(e card.Effect, ctx *Context) Result {
	drawn := ctx.Game.DrawCards(ctx.PlayerID, e.Count)
	return Result{Success: true, Message: drawMessage(len(drawn), e.Count)}
}

// discardCards is not given explicit semantics in spec §4.C (it is named
// in the closed effect enum but the per-type walkthrough omits it); we
// treat it as the mirror of draw_cards — an automatic discard of up to
// count cards from the front of hand, with no player selection step,
// since nothing in the spec threads a selection through this effect.
func discardCards(e card.Effect, ctx *Context) Result {
	discarded := ctx.Game.DiscardCards(ctx.PlayerID, e.Count)
	return Result{Success: true, Message: drawMessage(len(discarded), e.Count)}
}

func modifyPriority(e card.Effect, ctx *Context) Result {
	ctx.Player.AddPriorityModifier(e.Adjustment)
	return Result{Success: true}
}

func affectPlayerMat(e card.Effect, ctx *Context) Result {
	ctx.Player.SetMatProperty(e.Property, e.Operation, e.Value)
	return Result{Success: true}
}

func drawMessage(got, want int) string {
	if got == want {
		return ""
	}
	return "fewer cards available than requested"
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
