package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusCompleted, NormalizeStatus("COMPLETADO"))
	assert.Equal(t, StatusCompleted, NormalizeStatus("completado"))
	assert.Equal(t, StatusInProgress, NormalizeStatus("EN_PROCESO"))
	assert.Equal(t, StatusInProgress, NormalizeStatus(""))
	assert.Equal(t, StatusInProgress, NormalizeStatus("pendiente"))
}

func TestToxicologyResultsEntriesKeepDeclaredOrder(t *testing.T) {
	r := ToxicologyResults{
		Amphetamines: OutcomePositive,
		Cocaine:      OutcomeNegative,
		Marijuana:    OutcomePositive,
	}
	entries := r.Entries()
	assert.Equal(t, []ResultEntry{
		{"COCAINA", OutcomeNegative},
		{"MARIHUANA", OutcomePositive},
		{"ANFETAMINAS", OutcomePositive},
	}, entries)
}

func TestToxicologyResultsEntriesEmptyScreen(t *testing.T) {
	assert.Empty(t, ToxicologyResults{}.Entries())
}

func TestEmployeeDisplayName(t *testing.T) {
	assert.Equal(t, "Ana Salas", (&Employee{FirstName: "Ana", LastName: "Salas"}).DisplayName())
	assert.Equal(t, "Ana", (&Employee{FirstName: "Ana"}).DisplayName())
	assert.Equal(t, "", (*Employee)(nil).DisplayName())
}
