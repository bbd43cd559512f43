package diploma

import "github.com/ibpath/ibpath-api/internal/models"

// BonusStrategy names a TOK/EE bonus-point formula. The product historically
// shipped two formulas that disagree on some grade pairs (the quick-edit form
// used the simple letter map, the detailed entry view the index matrix), so
// both remain available instead of being silently unified.
type BonusStrategy string

const (
	// BonusStrategySimple maps each core grade to points (A=3, B=2, C=1,
	// D=0, E=0), sums both components and clamps to the 0–3 diploma bonus
	// range.
	BonusStrategySimple BonusStrategy = "simple"
	// BonusStrategyMatrix scores each component as 5 minus its A–E index,
	// sums, subtracts 6 and clamps to [0,3]. This tracks the official IB
	// bonus matrix more closely and is the canonical default.
	BonusStrategyMatrix BonusStrategy = "matrix"
)

// ParseBonusStrategy normalises a configured strategy name, defaulting to
// the matrix formula for anything unrecognised.
func ParseBonusStrategy(raw string) BonusStrategy {
	if BonusStrategy(raw) == BonusStrategySimple {
		return BonusStrategySimple
	}
	return BonusStrategyMatrix
}

const maxBonusPoints = 3

var simpleLetterPoints = map[models.CoreGrade]int{
	"A": 3,
	"B": 2,
	"C": 1,
	"D": 0,
	"E": 0,
}

// BonusPoints computes the TOK/EE contribution to the 45-point diploma total
// using the given strategy. Unset grades contribute nothing.
func BonusPoints(strategy BonusStrategy, tok, ee models.CoreGrade) int {
	if !tok.IsSet() || !ee.IsSet() {
		return 0
	}
	switch strategy {
	case BonusStrategySimple:
		return clampBonus(simpleLetterPoints[tok] + simpleLetterPoints[ee])
	default:
		return clampBonus((5 - tok.Index()) + (5 - ee.Index()) - 6)
	}
}

func clampBonus(points int) int {
	if points < 0 {
		return 0
	}
	if points > maxBonusPoints {
		return maxBonusPoints
	}
	return points
}
