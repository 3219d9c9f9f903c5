package lockup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchedule() []Unlock {
	return []Unlock{
		{Time: 100, Percent: 5000},
		{Time: 200, Percent: 2500},
		{Time: 500, Percent: 10000},
	}
}

func TestValidateSchedule(t *testing.T) {
	t.Run("first time", func(t *testing.T) {
		err := ValidateSchedule(validSchedule(), nil, 0)
		require.NoError(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		err := ValidateSchedule(nil, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("over max unlocks", func(t *testing.T) {
		schedule := make([]Unlock, MaxUnlocks+1)
		for i := range schedule {
			schedule[i] = Unlock{Time: uint64(i+1) * 100, Percent: 100}
		}
		schedule[len(schedule)-1].Percent = FullPercent
		err := ValidateSchedule(schedule, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("exactly max unlocks", func(t *testing.T) {
		schedule := make([]Unlock, MaxUnlocks)
		for i := range schedule {
			schedule[i] = Unlock{Time: uint64(i+1) * 100, Percent: 100}
		}
		schedule[len(schedule)-1].Percent = FullPercent
		err := ValidateSchedule(schedule, nil, 0)
		require.NoError(t, err)
	})

	t.Run("does not end with 100 percent", func(t *testing.T) {
		schedule := validSchedule()
		schedule[2].Percent = FullPercent - 1
		err := ValidateSchedule(schedule, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("percent over 10000", func(t *testing.T) {
		schedule := validSchedule()
		schedule[1].Percent = FullPercent + 1
		err := ValidateSchedule(schedule, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("zero percent", func(t *testing.T) {
		schedule := validSchedule()
		schedule[0].Percent = 0
		err := ValidateSchedule(schedule, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("out of order", func(t *testing.T) {
		schedule := []Unlock{
			{Time: 100, Percent: 5000},
			{Time: 200, Percent: 2500},
			{Time: 195, Percent: 100},
			{Time: 500, Percent: 10000},
		}
		err := ValidateSchedule(schedule, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("duplicate unlock time", func(t *testing.T) {
		schedule := []Unlock{
			{Time: 100, Percent: 5000},
			{Time: 200, Percent: 2500},
			{Time: 200, Percent: 100},
			{Time: 500, Percent: 10000},
		}
		err := ValidateSchedule(schedule, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})
}

func TestValidateScheduleReplacement(t *testing.T) {
	t.Run("keeps past unlocks", func(t *testing.T) {
		previous := validSchedule()
		candidate := []Unlock{
			{Time: 100, Percent: 5000},
			{Time: 200, Percent: 2500},
			{Time: 250, Percent: 2500},
			{Time: 800, Percent: 10000},
		}
		err := ValidateSchedule(candidate, previous, 300)
		require.NoError(t, err)
	})

	t.Run("changes past unlock", func(t *testing.T) {
		previous := validSchedule()
		candidate := []Unlock{
			{Time: 100, Percent: 5000},
			{Time: 350, Percent: 2500},
			{Time: 800, Percent: 10000},
		}
		err := ValidateSchedule(candidate, previous, 300)
		assert.ErrorIs(t, err, ErrAlreadyUnlocked)
	})

	t.Run("previous fully unlocked", func(t *testing.T) {
		previous := validSchedule()
		candidate := append(validSchedule(), Unlock{Time: 800, Percent: 10000})
		err := ValidateSchedule(candidate, previous, 500)
		assert.ErrorIs(t, err, ErrAlreadyUnlocked)
	})
}

func TestValidatePercent(t *testing.T) {
	require.NoError(t, ValidatePercent(0))
	require.NoError(t, ValidatePercent(FullPercent))
	assert.ErrorIs(t, ValidatePercent(FullPercent+1), ErrInvalidSchedule)
}
