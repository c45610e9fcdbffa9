package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrongerHandScoresLower(t *testing.T) {
	e := New()
	board := []string{"Ah", "Kh", "Qh", "2c", "7d"}

	royal, err := e.Score([]string{"Jh", "Th"}, board)
	require.NoError(t, err)

	topPair, err := e.Score([]string{"As", "3d"}, board)
	require.NoError(t, err)

	assert.Less(t, royal, topPair, "royal flush must outrank top pair")
}

func TestExactTieOnBoardPlay(t *testing.T) {
	e := New()
	// Board makes a broadway straight; both players play the board.
	board := []string{"Ts", "Jh", "Qd", "Kc", "As"}

	a, err := e.Score([]string{"2c", "3d"}, board)
	require.NoError(t, err)
	b, err := e.Score([]string{"4h", "5s"}, board)
	require.NoError(t, err)

	assert.Equal(t, a, b, "identical best-5 hands must tie exactly")
}

func TestKickerBreaksTie(t *testing.T) {
	e := New()
	board := []string{"Ah", "8c", "5d", "3s", "2h"}

	aceKing, err := e.Score([]string{"As", "Kd"}, board)
	require.NoError(t, err)
	aceQueen, err := e.Score([]string{"Ac", "Qd"}, board)
	require.NoError(t, err)

	assert.Less(t, aceKing, aceQueen)
}

func TestScoreValidation(t *testing.T) {
	e := New()

	_, err := e.Score([]string{"Ah"}, []string{"Ks", "Qs", "Js", "Ts", "9s"})
	assert.Error(t, err, "one hole card")

	_, err = e.Score([]string{"Ah", "Ad"}, []string{"Ks", "Qs", "Js"})
	assert.Error(t, err, "three board cards")

	_, err = e.Score([]string{"Ah", "XX"}, []string{"Ks", "Qs", "Js", "Ts", "9s"})
	assert.Error(t, err, "malformed card code")
}
