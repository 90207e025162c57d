package opening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabachok/dropclient/internal/domain"
)

func TestBuildSequence_GeometryAndPool(t *testing.T) {
	pool := []domain.RewardItem{
		{ID: 1, Name: "Carrot"},
		{ID: 2, Name: "Tomato"},
		{ID: 3, Name: "Cucumber"},
	}
	reward := domain.RewardItem{ID: 9, Name: "Golden Zucchini"}

	// Deterministic draw cycling through the pool.
	i := 0
	rnd := func() float64 {
		v := float64(i%3) / 3.0
		i++
		return v
	}

	seq := buildSequence(pool, reward, rnd)
	require.Len(t, seq, SequenceLength)
	assert.Equal(t, reward, seq[RevealIndex])

	known := map[int]bool{1: true, 2: true, 3: true}
	for idx, item := range seq {
		if idx == RevealIndex {
			continue
		}
		assert.True(t, known[item.ID], "decoy at %d must come from the case pool", idx)
	}
}

func TestBuildSequence_EmptyPoolFallsBackToReward(t *testing.T) {
	reward := domain.RewardItem{ID: 9, Name: "Golden Zucchini"}
	seq := buildSequence(nil, reward, func() float64 { return 0.5 })

	require.Len(t, seq, SequenceLength)
	for _, item := range seq {
		assert.Equal(t, reward, item)
	}
}
