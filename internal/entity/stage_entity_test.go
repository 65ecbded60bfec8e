package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStage(t *testing.T) {
	tests := []struct {
		raw  string
		want Stage
	}{
		{"COMPLETE", StageRelease},
		{"complete", StageRelease},
		{" RELEASE ", StageRelease},
		{"review", StageReview},
		{"REJECTED", StageRejected},
		{"SOMETHING", Stage("SOMETHING")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStage(tt.raw))
		})
	}
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage("Complete")
	assert.NoError(t, err)
	assert.Equal(t, StageRelease, s)

	_, err = ParseStage("")
	assert.Error(t, err)

	_, err = ParseStage("DONE")
	assert.Error(t, err)
}

func TestActiveStagesExcludeTerminal(t *testing.T) {
	active := ActiveStages()
	assert.NotContains(t, active, StageRelease)
	assert.NotContains(t, active, StageRejected)
	assert.Len(t, AllStages(), 6)
}

func TestActorHasRole(t *testing.T) {
	a := Actor{UserId: "u1", Role: "exec"}
	assert.True(t, a.HasRole(RoleAdmin, RoleExec))
	assert.False(t, a.HasRole(RoleSales))
	assert.Nil(t, Actor{}.UserIdPtr())
	assert.Equal(t, "u1", *a.UserIdPtr())
}
