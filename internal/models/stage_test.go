package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStageStatus(t *testing.T) {
	cases := map[string]StageStatus{
		"Pendente":     StagePending,
		"Em Andamento": StageInProgress,
		"Em_Andamento": StageInProgress,
		"Concluída":    StageCompleted,
		"Concluida":    StageCompleted,
		"Cancelada":    StageStatus("Cancelada"),
		"":             StageStatus(""),
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseStageStatus(in), "input %q", in)
	}
}

func TestStageStatusRoundTrip(t *testing.T) {
	for _, s := range []StageStatus{StagePending, StageInProgress, StageCompleted} {
		assert.Equal(t, s, ParseStageStatus(s.Label()))
		assert.True(t, s.Valid())
	}
	assert.Equal(t, "Em Andamento", StageInProgress.Label())
	assert.Equal(t, "Concluída", StageCompleted.Label())
	assert.Equal(t, "qualquer", StageStatus("qualquer").Label())
	assert.False(t, StageStatus("qualquer").Valid())
}

func TestStageStatusNext(t *testing.T) {
	next, ok := StagePending.Next()
	assert.True(t, ok)
	assert.Equal(t, StageInProgress, next)

	next, ok = StageInProgress.Next()
	assert.True(t, ok)
	assert.Equal(t, StageCompleted, next)

	_, ok = StageCompleted.Next()
	assert.False(t, ok)
	_, ok = StageStatus("Cancelada").Next()
	assert.False(t, ok)
}

func TestParseAccessLevel(t *testing.T) {
	assert.Equal(t, LevelAdmin, ParseAccessLevel("1 - Admin"))
	assert.Equal(t, LevelEngineer, ParseAccessLevel("2 - Engenheiro"))
	assert.Equal(t, LevelOperator, ParseAccessLevel(" Operador "))
	assert.False(t, ParseAccessLevel("Gerente").Valid())
}
