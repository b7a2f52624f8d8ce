package statistics

// ChoiceDepthStats tracks how much of one choice point has been
// explored.
type ChoiceDepthStats struct {
	// Candidates the choice point offered.
	NumChoices int
	// Distinct states the choices at this depth led to so far.
	DistinctStates int
}

// CoverageStats tracks exploration coverage per choice depth.
type CoverageStats struct {
	perChoiceDepth []ChoiceDepthStats
}

// NewCoverageStats returns empty coverage.
func NewCoverageStats() *CoverageStats {
	return &CoverageStats{}
}

// RecordChoice notes that a choice point at depth offered n
// candidates.
func (c *CoverageStats) RecordChoice(depth, n int) {
	for len(c.perChoiceDepth) <= depth {
		c.perChoiceDepth = append(c.perChoiceDepth, ChoiceDepthStats{})
	}
	c.perChoiceDepth[depth].NumChoices = n
}

// RewardStep credits the choices between from and to with the
// distinct states the step produced.
func (c *CoverageStats) RewardStep(from, to, distinctStates int) {
	for d := from; d < to && d < len(c.perChoiceDepth); d++ {
		c.perChoiceDepth[d].DistinctStates += distinctStates
	}
}

// PerChoiceDepth returns the recorded choice points.
func (c *CoverageStats) PerChoiceDepth() []ChoiceDepthStats {
	return c.perChoiceDepth
}

// Reset clears coverage for a fresh search.
func (c *CoverageStats) Reset() { c.perChoiceDepth = nil }
