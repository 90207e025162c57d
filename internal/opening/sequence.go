package opening

import "github.com/kabachok/dropclient/internal/domain"

// buildSequence assembles the reveal strip: SequenceLength slots of decoys
// drawn uniformly from the case's reward pool, with the authoritative reward
// fixed at RevealIndex. The strip is pure presentation; the reward was decided
// by the server before the first frame renders.
func buildSequence(pool []domain.RewardItem, reward domain.RewardItem, rnd func() float64) []domain.RewardItem {
	seq := make([]domain.RewardItem, SequenceLength)
	for i := range seq {
		if i == RevealIndex {
			seq[i] = reward
			continue
		}
		if len(pool) == 0 {
			seq[i] = reward
			continue
		}
		seq[i] = pool[int(rnd()*float64(len(pool)))%len(pool)]
	}
	return seq
}
