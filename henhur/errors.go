package henhur

// Result is the total, never-panics return shape every action uses
// (spec §4.D.8): invalid actions are reported, not fatal.
type Result struct {
	Success bool
	Message string
}

// errGameOverMsg is the one fatal condition named in spec §4.D.8/§7:
// once a winner is set, every action returns failure and no further
// state transitions occur.
const errGameOverMsg = "game is over"
