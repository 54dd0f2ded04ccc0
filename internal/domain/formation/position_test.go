package formation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePosition(t *testing.T) {
	tests := []struct {
		input    string
		expected Position
	}{
		// aliases
		{"RCB", PositionCB},
		{"LCB", PositionCB},
		{"Goalkeeper", PositionGK},
		{"goal keeper", PositionGK},
		{"CAM", PositionAM},
		{"striker", PositionST},
		{"STRIKER", PositionST},
		{"RDM", PositionDM},
		{"lcm", PositionCM},
		{"LF", PositionLW},
		{"RF", PositionRW},
		// combo labels keep the first alternative
		{"CM/AM", PositionCM},
		{"lcm / cam", PositionCM},
		{"ST/CF", PositionST},
		// canonical passthrough
		{"GK", PositionGK},
		{"gk", PositionGK},
		{"  r w b ", PositionRWB},
		{"SW", PositionSW},
		{"SS", PositionSS},
		{"LM", PositionLM},
		// fallback
		{"", PositionCM},
		{"   ", PositionCM},
		{"/ST", PositionCM},
		{"winger", PositionCM},
		{"Keeper", PositionCM},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePosition(tt.input))
		})
	}
}

func TestNormalizePosition_AlwaysReturnsKnownToken(t *testing.T) {
	inputs := []string{"", "x", "123", "GK/CB", "çm", "\t\n", "RB/", "/", "AMF", "cf "}
	for _, in := range inputs {
		pos := NormalizePosition(in)
		if pos != PositionGK && !isKnownOutfield(pos) {
			t.Fatalf("NormalizePosition(%q) returned unknown token %q", in, pos)
		}
	}
}

func TestLineOf(t *testing.T) {
	tests := []struct {
		pos      Position
		expected Line
	}{
		{PositionGK, LineGoalkeeper},
		{PositionRB, LineDefense},
		{PositionLWB, LineDefense},
		{PositionSW, LineDefense},
		{PositionDM, LineMidfield},
		{PositionRM, LineMidfield},
		{PositionRW, LineAttack},
		{PositionST, LineAttack},
		{Position("XX"), LineMidfield},
		{Position(""), LineMidfield},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LineOf(tt.pos), "LineOf(%q)", tt.pos)
	}
}

func TestRank(t *testing.T) {
	assert.Equal(t, 1, Rank(PositionRB))
	assert.Equal(t, 3, Rank(PositionCB))
	assert.Equal(t, 2, Rank(PositionDM))
	assert.Equal(t, 5, Rank(PositionLW))
	assert.Equal(t, unrankedPosition, Rank(PositionGK))
	assert.Equal(t, unrankedPosition, Rank(Position("XX")))
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		spec     string
		expected Shape
	}{
		{"4-3-3", Shape{Defense: 4, Midfield: 3, Attack: 3}},
		{"4-2-3-1", Shape{Defense: 4, DefensiveMidfield: 2, Midfield: 3, Attack: 1}},
		{"3-5-2", Shape{Defense: 3, Midfield: 5, Attack: 2}},
		{" 4 - 4 - 2 ", Shape{Defense: 4, Midfield: 4, Attack: 2}},
		{"5-4", Shape{Defense: 5, Midfield: 4, Attack: 3}},
		{"", DefaultShape()},
		{"4", DefaultShape()},
		{"a-b-c", DefaultShape()},
		{"4-3-x", DefaultShape()},
		{"-1-3-3", DefaultShape()},
		{"4-1-2-1-2", DefaultShape()},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseShape(tt.spec))
		})
	}
}

func TestParsePolicy(t *testing.T) {
	p, ok := ParsePolicy(" Natural ")
	assert.True(t, ok)
	assert.Equal(t, PolicyNatural, p)

	p, ok = ParsePolicy("TARGET")
	assert.True(t, ok)
	assert.Equal(t, PolicyTargetFormation, p)

	_, ok = ParsePolicy("greedy")
	assert.False(t, ok)
}
