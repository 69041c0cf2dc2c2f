// Package card defines the HenHur card value object and the closed set
// of effects a card can carry.
package card

// DeckType tags which deck a card belongs to.
type DeckType string

const (
	DeckBase DeckType = "base"
	DeckLap1 DeckType = "lap1"
	DeckLap2 DeckType = "lap2"
	DeckLap3 DeckType = "lap3"
)

// Priority is either a fixed integer (Dice == "") or a base+dice roll.
type Priority struct {
	Base int
	Dice string // notation understood by package dice; empty means fixed
}

// IsFixed reports whether this priority resolves without a dice roll.
func (p Priority) IsFixed() bool { return p.Dice == "" }

// Card is the immutable value object described in spec §3.4. Effect lists
// are copied, never mutated, by anything that reads a Card.
type Card struct {
	ID          string
	Title       string
	DeckType    DeckType
	TrickNumber int
	RaceNumber  int
	Priority    Priority
	Text        string
	Effect      []Effect
	BurnEffect  []Effect
	Copies      int // 0 means "use DefaultCopies"

	// InstanceID is stamped when a card is expanded into a concrete deck
	// copy (§4.D.4); it is empty on the catalog definition itself.
	InstanceID string
}

// DefaultCopies is the copy count assumed when Card.Copies is zero.
const DefaultCopies = 2

// Copy returns a deep copy stamped with instanceID, safe to hand to a
// player's deck without aliasing the catalog card's effect slices.
func (c Card) Copy(instanceID string) Card {
	out := c
	out.InstanceID = instanceID
	out.Effect = append([]Effect(nil), c.Effect...)
	out.BurnEffect = append([]Effect(nil), c.BurnEffect...)
	return out
}

// CanBurnInAuction reports whether this card may be burned as an auction
// bid — it must have a non-empty burn effect (§4.D.3).
func (c Card) CanBurnInAuction() bool {
	return len(c.BurnEffect) > 0
}
