package graph

// Budget caps how many expandable nodes open automatically during the
// initial construction pass. It is a value: taking from it returns the
// updated budget, which the construction threads through its recursion.
type Budget struct {
	remaining int
}

// NewBudget returns a budget allowing n auto-expansions. Negative n is 0.
func NewBudget(n int) Budget {
	if n < 0 {
		n = 0
	}
	return Budget{remaining: n}
}

// Remaining returns how many auto-expansions are left
func (b Budget) Remaining() int { return b.remaining }

// Exhausted reports whether no auto-expansions are left
func (b Budget) Exhausted() bool { return b.remaining <= 0 }

// Take consumes one auto-expansion. ok is false, and b is returned
// unchanged, once the budget is exhausted.
func (b Budget) Take() (ok bool, next Budget) {
	if b.remaining <= 0 {
		return false, b
	}
	return true, Budget{remaining: b.remaining - 1}
}
