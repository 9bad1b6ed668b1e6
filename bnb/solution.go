package bnb

// materialize maps incumbent frames back to the caller's item positions.
// Each frame's kept index goes through Perm to the original index; value and
// cost are recomputed from the kept items, which by construction equals the
// incumbent value the engine recorded.
//
// Complexity: O(n + len(frames)) for the Counts vector, O(len(frames)) work.
func (s *Search) materialize(frames []frame) Result {
	res := Result{Counts: make([]int64, s.inst.Len())}
	for _, f := range frames {
		it := s.ord.Items[f.index]
		res.Counts[s.ord.Perm[f.index]] += f.count
		res.Value += f.count * it.Value
		res.Cost += f.count * it.Cost
	}

	return res
}
