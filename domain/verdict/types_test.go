package verdict

import (
	"testing"

	"agebounds/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestBoundInterval_CheckIsStrict(t *testing.T) {
	b := NewBoundInterval(0.55, 0.60, 1000)

	tests := []struct {
		name  string
		value float64
		want  BoundSide
	}{
		{"inside", 575, SideNone},
		{"equal to lower", 550, SideLower},
		{"equal to upper", 600, SideUpper},
		{"below", 100, SideLower},
		{"above", 900, SideUpper},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Check(tt.value))
		})
	}
}

func TestVerdict_Err(t *testing.T) {
	pass := Verdict{Status: StatusPass}
	assert.NoError(t, pass.Err())

	fail := Verdict{Status: StatusFail, Message: "too low"}
	err := fail.Err()
	assert.ErrorIs(t, err, core.ErrBoundViolated)
	assert.Contains(t, err.Error(), "too low")
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("fixed_count")
	assert.NoError(t, err)
	assert.Equal(t, ModeFixedCount, m)

	_, err = ParseMode("median")
	assert.Error(t, err)
}
