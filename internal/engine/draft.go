package engine

// Draft is the buyer's work in progress: a tier choice and the box
// quantities typed so far. It is saved wholesale on every change and has no
// merge semantics; an absent or corrupt draft simply becomes the zero value.
type Draft struct {
	Tier       Tier             `json:"tier"`
	Quantities map[string]int64 `json:"quantities"`
}

// NewDraft returns an empty draft with no tier selected.
func NewDraft() Draft {
	return Draft{Tier: TierNone, Quantities: make(map[string]int64)}
}

// Set records a quantity for a code. Negative input is normalized to zero
// before it can reach the engine; a zero quantity removes the entry so the
// draft only carries live lines.
func (d *Draft) Set(code string, qty int64) {
	if d.Quantities == nil {
		d.Quantities = make(map[string]int64)
	}
	if qty <= 0 {
		delete(d.Quantities, code)
		return
	}
	d.Quantities[code] = qty
}

// Apply overwrites the draft's quantities for exactly the given codes,
// leaving all other entries untouched. This is the projection merge policy:
// SKUs with history are overwritten, manual entries for everything else
// survive.
func (d *Draft) Apply(targets map[string]int64) {
	for code, qty := range targets {
		d.Set(code, qty)
	}
}

// Normalize drops non-positive quantities that may have arrived from a
// persisted payload written by an older build.
func (d *Draft) Normalize() {
	if d.Quantities == nil {
		d.Quantities = make(map[string]int64)
		return
	}
	for code, qty := range d.Quantities {
		if qty <= 0 {
			delete(d.Quantities, code)
		}
	}
}
