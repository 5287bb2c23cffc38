package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkillNames(t *testing.T) {
	got := NormalizeSkillNames([]string{"  Baking ", "baking", "", "   ", "Video  Editing", "BAKING", "Mahjong"})
	assert.Equal(t, []string{"Baking", "Video Editing", "Mahjong"}, got)
}

func TestNormalizeSkillNames_Empty(t *testing.T) {
	assert.Empty(t, NormalizeSkillNames(nil))
}

func TestSkillKind_Valid(t *testing.T) {
	assert.True(t, SkillKindTeach.Valid())
	assert.True(t, SkillKindLearn.Valid())
	assert.False(t, SkillKind("offer").Valid())
}
