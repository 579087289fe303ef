package differ

import (
	"testing"
	"time"

	"bambawatch/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batch(store string, items ...models.Item) models.RunBatch {
	return models.RunBatch{models.NewObservation(store, time.Now(), items)}
}

func TestChangeDetector_BecameUnavailable(t *testing.T) {
	detector := NewChangeDetector(zerolog.Nop())

	previous := batch("A", models.NewItem("X|25g", "$2.50", true))
	current := batch("A", models.NewItem("X|25g", "$2.50", false))

	changes := detector.Detect(current, previous)
	require.Len(t, changes, 1)
	assert.Equal(t, "X|25g", changes[0].ItemName)
	assert.Equal(t, models.ChangeBecameUnavailable, changes[0].Kind)
	assert.False(t, changes[0].Available)
}

func TestChangeDetector_EmptyPrevious(t *testing.T) {
	detector := NewChangeDetector(zerolog.Nop())

	current := batch("A",
		models.NewItem("Y|100g", "$5.00", true),
		models.NewItem("Z|25g", "$2.50", false),
	)

	changes := detector.Detect(current, nil)
	require.Len(t, changes, 2)
	assert.Equal(t, models.ChangeNewAvailable, changes[0].Kind)
	assert.Equal(t, models.ChangeNewUnavailable, changes[1].Kind)
}

func TestChangeDetector_UnchangedOmitted(t *testing.T) {
	detector := NewChangeDetector(zerolog.Nop())

	previous := batch("A",
		models.NewItem("X|25g", "$2.50", true),
		models.NewItem("Y|100g", "$5.00", false),
	)
	current := batch("A",
		models.NewItem("X|25g", "$2.60", true), // price moved, availability did not
		models.NewItem("Y|100g", "$5.00", true),
	)

	changes := detector.Detect(current, previous)
	require.Len(t, changes, 1)
	assert.Equal(t, "Y|100g", changes[0].ItemName)
	assert.Equal(t, models.ChangeBecameAvailable, changes[0].Kind)
}

func TestChangeDetector_Idempotent(t *testing.T) {
	detector := NewChangeDetector(zerolog.Nop())

	previous := batch("A", models.NewItem("X|25g", "$2.50", true))
	current := batch("A",
		models.NewItem("X|25g", "$2.50", false),
		models.NewItem("New Thing", "$1.00", true),
	)

	first := detector.Detect(current, previous)
	second := detector.Detect(current, previous)
	assert.Equal(t, first, second)
}

func TestChangeDetector_RenameLooksLikeNewItem(t *testing.T) {
	detector := NewChangeDetector(zerolog.Nop())

	previous := batch("A", models.NewItem("Bamba | 25g", "$2.50", true))
	current := batch("A", models.NewItem("Bamba Snack | 25g", "$2.50", true))

	// Identity is the full display name, so a rename is a new item.
	changes := detector.Detect(current, previous)
	require.Len(t, changes, 1)
	assert.Equal(t, "Bamba Snack | 25g", changes[0].ItemName)
	assert.Equal(t, models.ChangeNewAvailable, changes[0].Kind)
}

func TestChangeDetector_StoresAreIndependent(t *testing.T) {
	detector := NewChangeDetector(zerolog.Nop())

	previous := models.RunBatch{
		models.NewObservation("A", time.Now(), []models.Item{models.NewItem("X|25g", "$2.50", true)}),
	}
	current := models.RunBatch{
		models.NewObservation("A", time.Now(), []models.Item{models.NewItem("X|25g", "$2.50", true)}),
		models.NewObservation("B", time.Now(), []models.Item{models.NewItem("X|25g", "$2.50", true)}),
	}

	changes := detector.Detect(current, previous)
	require.Len(t, changes, 1)
	assert.Equal(t, "B", changes[0].Store)
	assert.Equal(t, models.ChangeNewAvailable, changes[0].Kind)
}
