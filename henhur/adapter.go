package henhur

import (
	"henhur-arena/card"
	"henhur-arena/gameplay"
)

// Adapter wraps an Engine to satisfy package gameplay's Game interface,
// translating the transport's generic Action/Payload shape into the
// engine's typed methods.
type Adapter struct {
	*Engine
}

func NewAdapter(e *Engine) *Adapter { return &Adapter{Engine: e} }

// ApplyAction dispatches spec §6.1's three player-submitted HenHur verbs.
func (a *Adapter) ApplyAction(playerID string, action gameplay.Action) gameplay.Result {
	cardID, _ := action.Payload["cardInstanceId"].(string)
	willBurn, _ := action.Payload["willBurn"].(bool)
	tokens := toTokenTypes(action.Payload["tokensUsed"])

	var res Result
	switch action.Type {
	case "race_selection":
		res = a.SubmitRaceSelection(playerID, cardID, tokens, willBurn)
	case "auction_bid":
		res = a.SubmitAuctionBid(playerID, cardID, tokens, willBurn)
	case "draft":
		res = a.SubmitDraft(playerID, cardID)
	default:
		res = Result{Success: false, Message: "unknown action type: " + action.Type}
	}
	return gameplay.Result{Success: res.Success, Message: res.Message}
}

// ProjectFor satisfies gameplay.Game's any-typed projection by wrapping
// the engine's concrete View.
func (a *Adapter) ProjectFor(viewerID string) any {
	return a.Engine.ProjectFor(viewerID)
}

func toTokenTypes(v any) []card.TokenType {
	switch vv := v.(type) {
	case []card.TokenType:
		return vv
	case []string:
		out := make([]card.TokenType, len(vv))
		for i, s := range vv {
			out[i] = card.TokenType(s)
		}
		return out
	case []any:
		out := make([]card.TokenType, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, card.TokenType(s))
			}
		}
		return out
	default:
		return nil
	}
}
