// Package rating keeps Elo ratings and win/draw/loss records for named
// players.
package rating

import "math"

// DefaultKFactor is the maximum rating change per game.
const DefaultKFactor = 32

// UpdateRatings returns the new ratings of players A and B after a game in
// which A scored resA and B scored resB (1 win, 0.5 draw, 0 loss). New
// ratings are truncated toward zero.
func UpdateRatings(ra, rb int, resA, resB float64) (int, int) {
	return UpdateRatingsK(ra, rb, resA, resB, DefaultKFactor)
}

// UpdateRatingsK is UpdateRatings with an explicit K-factor.
func UpdateRatingsK(ra, rb int, resA, resB, k float64) (int, int) {
	ea := Expected(ra, rb)
	eb := Expected(rb, ra)
	newA := float64(ra) + k*(resA-ea)
	newB := float64(rb) + k*(resB-eb)
	return int(newA), int(newB)
}

// Expected returns the expected score of a player rated r against one
// rated opp: 10^(r/400) / (10^(r/400) + 10^(opp/400)).
func Expected(r, opp int) float64 {
	qr := math.Pow(10, float64(r)/400)
	qo := math.Pow(10, float64(opp)/400)
	return qr / (qr + qo)
}
