package model_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/lockuplabs/token-lockup-service/internal/db/model"
	"github.com/lockuplabs/token-lockup-service/internal/lockup"
	"github.com/lockuplabs/token-lockup-service/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLockupDocument(t *testing.T) {
	var principals struct {
		Admin string
		Owner string
	}
	err := gofakeit.Struct(&principals)
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	schedule := []lockup.Unlock{
		{Time: 1_700_000_100, Percent: 5000},
		{Time: 1_700_000_200, Percent: 10000},
	}

	doc := model.NewLockupDocument(
		"lockup-1", types.VariantTimeWatermarked,
		principals.Admin, principals.Owner, schedule,
		now, 7*24*time.Hour,
	)

	assert.Equal(t, "lockup-1", doc.ID)
	assert.Equal(t, principals.Admin, doc.Admin)
	assert.Equal(t, principals.Owner, doc.Owner)
	assert.Equal(t, now, doc.CreatedAt)
	assert.Equal(t, now.Add(7*24*time.Hour), doc.ExpiresAt)

	// the stored entries convert back into the same schedule
	assert.Equal(t, schedule, doc.Schedule())
}

func TestClaimWatermarkID(t *testing.T) {
	assert.Equal(t, "lockup-1:usdl", model.ClaimWatermarkID("lockup-1", "usdl"))
}
