package performance

import "math"

// Rate blends WND, WNDOT, and the external RQC score into one 0-100
// performance score. WND and WNDOT always participate (a missing value is
// passed as 0 and converts to a full 100); RQC participates only when it is
// present and positive, so an unavailable score never penalizes the result.
func Rate(rqcScore, wnd, wndOnTime float64) float64 {
	wndGoodness := 100 - math.Abs(wnd)
	wndOnTimeGoodness := 100 - math.Abs(wndOnTime)

	var rate float64
	if rqcScore > 0 {
		rate = (rqcScore + wndGoodness + wndOnTimeGoodness) / 3
	} else {
		rate = (wndGoodness + wndOnTimeGoodness) / 2
	}
	return round2(rate)
}
