package henhur

import (
	"henhur-arena/carddata"
	"henhur-arena/gameplay"
)

// defaultConfig returns the Config backing every lobby-started HenHur
// match: the bundled sample card catalog (package carddata) plus the
// default deck policy and track layout named in spec §9's worked
// scenarios.
func defaultConfig() Config {
	return Config{
		TurnsPerRound:    3,
		HandSize:         5,
		MaxTokens:        6,
		BurnSlots:        3,
		Track:            Track{SpacesPerLap: 12, LapsToWin: 3},
		TokenCategories:  carddata.Categories,
		TokenBonusValues: carddata.BonusValues,
		CardsByDeck:      carddata.Catalog(),
		RecordHistory:    true,
	}
}

// NewGame satisfies gameplay.Constructor: it builds a Config from the
// bundled catalog, applies the lobby's selectedCards option (§6.2), and
// wraps the resulting Engine in an Adapter so package lobby can drive it
// like any other variant.
func NewGame(playerIDs []string, opts map[string]any) (gameplay.Game, error) {
	cfg := defaultConfig()
	cfg.SelectedCards = selectedCardsFrom(opts)

	e, err := NewEngine(cfg, playerIDs, nil)
	if err != nil {
		return nil, err
	}
	return NewAdapter(e), nil
}

func selectedCardsFrom(opts map[string]any) []string {
	raw, ok := opts["selectedCards"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
