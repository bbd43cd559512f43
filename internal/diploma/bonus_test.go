package diploma

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ibpath/ibpath-api/internal/models"
)

func TestParseBonusStrategy(t *testing.T) {
	assert.Equal(t, BonusStrategySimple, ParseBonusStrategy("simple"))
	assert.Equal(t, BonusStrategyMatrix, ParseBonusStrategy("matrix"))
	assert.Equal(t, BonusStrategyMatrix, ParseBonusStrategy(""))
	assert.Equal(t, BonusStrategyMatrix, ParseBonusStrategy("unknown"))
}

func TestBonusPointsSimple(t *testing.T) {
	cases := []struct {
		tok, ee models.CoreGrade
		want    int
	}{
		{"A", "A", 3}, // 3+3 clamped to 3
		{"A", "B", 3}, // 3+2 clamped to 3
		{"B", "B", 3}, // 2+2 clamped
		{"B", "C", 3},
		{"C", "C", 2},
		{"C", "D", 1},
		{"D", "D", 0},
		{"D", "E", 0},
		{"E", "E", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BonusPoints(BonusStrategySimple, tc.tok, tc.ee), "simple %s/%s", tc.tok, tc.ee)
	}
}

func TestBonusPointsMatrix(t *testing.T) {
	cases := []struct {
		tok, ee models.CoreGrade
		want    int
	}{
		{"A", "A", 3}, // 5+5-6=4 clamped to 3
		{"A", "B", 3}, // 5+4-6=3
		{"B", "B", 2}, // 4+4-6
		{"B", "C", 1},
		{"C", "C", 0}, // 3+3-6
		{"A", "E", 0}, // 5+1-6
		{"E", "E", 0}, // negative clamped
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BonusPoints(BonusStrategyMatrix, tc.tok, tc.ee), "matrix %s/%s", tc.tok, tc.ee)
	}
}

func TestBonusPointsStrategiesDiverge(t *testing.T) {
	// B/B is the classic divergence: 3 under the letter map, 2 under the
	// matrix. Both formulas stay available because of it.
	assert.NotEqual(t,
		BonusPoints(BonusStrategySimple, "B", "B"),
		BonusPoints(BonusStrategyMatrix, "B", "B"))
}

func TestBonusPointsUnsetGrades(t *testing.T) {
	assert.Equal(t, 0, BonusPoints(BonusStrategyMatrix, "", "A"))
	assert.Equal(t, 0, BonusPoints(BonusStrategySimple, "A", ""))
}
