// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq

import (
	"context"
	"fmt"
)

// Stats is a point-in-time snapshot of a queue's four monotonic
// counters (spec §4.7). Readers see at-least-their-value (monotonicity)
// but no total-order guarantee relative to other queue state — these
// counters are advisory, never load-bearing for protocol correctness.
type Stats struct {
	ProducedMessages int64
	ProducedBytes    int64
	ConsumedMessages int64
	ConsumedBytes    int64
}

// Stats reads the current value of all four counters. Counters default
// to 0 if never incremented (the backing store reports an absent key as
// 0 for this purpose, matching INCR's auto-initialization semantics).
func (q *Queue) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	var err error

	if s.ProducedMessages, err = q.readCounter(ctx, q.keys.statsProducedMessages); err != nil {
		return Stats{}, err
	}
	if s.ProducedBytes, err = q.readCounter(ctx, q.keys.statsProducedBytes); err != nil {
		return Stats{}, err
	}
	if s.ConsumedMessages, err = q.readCounter(ctx, q.keys.statsConsumedMessages); err != nil {
		return Stats{}, err
	}
	if s.ConsumedBytes, err = q.readCounter(ctx, q.keys.statsConsumedBytes); err != nil {
		return Stats{}, err
	}
	return s, nil
}

func (q *Queue) readCounter(ctx context.Context, key string) (int64, error) {
	n, ok, err := q.drv.getInt(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("pressureq: stats %s: read %s: %w", q.keys.queue, key, err)
	}
	if !ok {
		return 0, nil
	}
	return int64(n), nil
}
