package score

// band is one (threshold, score) pair in a banding table.
type band struct {
	threshold float64
	score     float64
}

// banding is an ordered step function consulted first-match-wins, with a
// floor score when no band matches. The banding data, not control flow,
// defines each factor.
type banding struct {
	bands []band
	floor float64
}

// atLeast returns the score of the first band whose threshold the value
// meets or exceeds. Bands must be declared highest threshold first.
func (b banding) atLeast(value float64) float64 {
	for _, band := range b.bands {
		if value >= band.threshold {
			return band.score
		}
	}
	return b.floor
}

// atMost returns the score of the first band whose threshold the value
// does not exceed. Bands must be declared lowest threshold first.
func (b banding) atMost(value float64) float64 {
	for _, band := range b.bands {
		if value <= band.threshold {
			return band.score
		}
	}
	return b.floor
}
