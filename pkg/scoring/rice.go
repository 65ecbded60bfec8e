// Package scoring holds the two prioritization scores attached to a request.
package scoring

// RiceScore returns reach*impact*confidence/effort, or nil unless all four
// factors are present and positive.
func RiceScore(reach, impact, confidence, effort *int) *float64 {
	for _, f := range []*int{reach, impact, confidence, effort} {
		if f == nil || *f <= 0 {
			return nil
		}
	}
	score := float64(*reach) * float64(*impact) * float64(*confidence) / float64(*effort)
	return &score
}
