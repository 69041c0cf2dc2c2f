package card

// EffectType is the closed enum of card effects (spec §3.4). Adding a new
// kind of effect means extending this enum and the executor in package
// effects together — there is no dynamic dispatch here on purpose.
type EffectType string

const (
	EffectMovePlayerPosition   EffectType = "move_player_position"
	EffectMoveOpponentPosition EffectType = "move_opponent_position"
	EffectAffectTokenPool      EffectType = "affect_token_pool"
	EffectDrawCards            EffectType = "draw_cards"
	EffectDiscardCards         EffectType = "discard_cards"
	EffectModifyPriority       EffectType = "modify_priority"
	EffectAffectPlayerMat      EffectType = "affect_player_mat"
)

// TargetSelection picks which opponent(s) move_opponent_position affects.
type TargetSelection string

const (
	TargetChoose TargetSelection = "choose"
	TargetAll    TargetSelection = "all"
	TargetRandom TargetSelection = "random"
)

// TokenAction is the verb for affect_token_pool.
type TokenAction string

const (
	TokenGain TokenAction = "gain"
	TokenSpend TokenAction = "spend"
	TokenSet   TokenAction = "set"
)

// MatOperation is the verb for affect_player_mat.
type MatOperation string

const (
	MatSet MatOperation = "set"
	MatAdd MatOperation = "add"
)

// TokenType is a card-table-declared token tag (e.g. "R+", "A+", "P+").
type TokenType string

// TokenCategory groups token types for the bonus-partition math in
// §4.D.2: priority/race/auction bonuses sum different category sets.
type TokenCategory string

const (
	CategoryPriority TokenCategory = "priority"
	CategoryRace     TokenCategory = "race"
	CategoryAuction  TokenCategory = "auction"
	CategoryWild     TokenCategory = "wild"
)

// Effect is a tagged record. Only the fields relevant to Type are
// meaningful; it is the effect executor's job to read the right ones.
type Effect struct {
	Type EffectType

	// move_player_position, move_opponent_position
	Distance int

	// move_opponent_position
	TargetSelection  TargetSelection
	RequiresAdjacent bool

	// affect_token_pool
	TokenAction TokenAction
	TokenType   TokenType
	Count       int

	// draw_cards, discard_cards
	// (Count is reused above)

	// modify_priority
	Adjustment int

	// affect_player_mat
	Property  string
	Value     int
	Operation MatOperation
}
