package service

import "math"

// ImpermanentLoss loss of a constant-product LP position versus holding, in
// percent. Returns 0 when either ratio is non-positive.
//
// Swapping the arguments maps r to 1/r, which gives the same loss
// mathematically but not necessarily bit-for-bit; compare with a tolerance.
func ImpermanentLoss(initialRatio, currentRatio float64) float64 {
	if initialRatio <= 0 || currentRatio <= 0 {
		return 0
	}
	r := currentRatio / initialRatio
	il := 2*math.Sqrt(r)/(1+r) - 1
	return math.Abs(il) * 100
}
