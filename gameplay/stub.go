package gameplay

// UnimplementedGame satisfies Game for variants named in spec §1 that are
// explicitly out of scope for this build (Dice Factory, Kill-Team Draft,
// Heist-City): a lobby can still be created, titled and started for one
// of these, but every action it receives fails as not implemented.
type UnimplementedGame struct {
	Variant   string
	PlayerIDs []string
}

func NewUnimplementedGame(variant string) Constructor {
	return func(playerIDs []string, _ map[string]any) (Game, error) {
		return &UnimplementedGame{Variant: variant, PlayerIDs: playerIDs}, nil
	}
}

func (g *UnimplementedGame) Start() {}

func (g *UnimplementedGame) ApplyAction(playerID string, action Action) Result {
	return Result{Success: false, Message: g.Variant + " is not implemented yet"}
}

func (g *UnimplementedGame) ProjectFor(viewerID string) any {
	return map[string]any{
		"variant": g.Variant,
		"status":  "not_implemented",
		"players": g.PlayerIDs,
	}
}

func (g *UnimplementedGame) PendingBots() []string { return nil }

func (g *UnimplementedGame) OnPlayerReconnect(oldID, newID string) {}

func (g *UnimplementedGame) SetConnected(playerID string, connected bool) {}
