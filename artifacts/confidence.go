package artifacts

// ConfidenceTable maps a margin-of-error percentage to the share of held-out
// predictions that fell within that margin.
type ConfidenceTable struct {
	entries map[int]float64
}

func NewConfidenceTable(entries map[int]float64) ConfidenceTable {
	m := make(map[int]float64, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return ConfidenceTable{entries: m}
}

// Lookup reports false for margins that were not precomputed.
func (t ConfidenceTable) Lookup(margin int) (float64, bool) {
	v, ok := t.entries[margin]
	return v, ok
}

func (t ConfidenceTable) Len() int { return len(t.entries) }
