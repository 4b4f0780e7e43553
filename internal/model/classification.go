package model

// Classification is the result of the spatial tier pass for one entity.
// Near gates full per-joint animation; Visible gates rendering and any update at all.
// The two tiers are independent.
type Classification struct {
	Near    bool
	Visible bool
}

// Classify computes tiers from squared planar distance to the player.
func Classify(distSq, nearRadius, visibleRadius float64) Classification {
	return Classification{
		Near:    distSq <= nearRadius*nearRadius,
		Visible: distSq <= visibleRadius*visibleRadius,
	}
}
