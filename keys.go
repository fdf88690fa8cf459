// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq

// keySet holds the fully-derived backing store keys for one queue
// identity (prefix, name). Keys are derived once, at Open, and never
// change for the lifetime of a handle.
type keySet struct {
	queue    string
	bound    string
	producer string
	consumer string

	producerFree string
	consumerFree string

	statsProducedMessages string
	statsProducedBytes    string
	statsConsumedMessages string
	statsConsumedBytes    string

	notFull string
	closed  string
}

// deriveKey joins prefix, name, and an optional suffix with ":".
//
// The caller guarantees neither prefix nor name contains ":"; this
// function does no escaping and does not validate that guarantee —
// violating it is a caller bug, not something this package detects.
func deriveKey(prefix, name, suffix string) string {
	if suffix == "" {
		return prefix + ":" + name
	}
	return prefix + ":" + name + ":" + suffix
}

func newKeySet(prefix, name string) keySet {
	return keySet{
		queue:    deriveKey(prefix, name, ""),
		bound:    deriveKey(prefix, name, "bound"),
		producer: deriveKey(prefix, name, "producer"),
		consumer: deriveKey(prefix, name, "consumer"),

		producerFree: deriveKey(prefix, name, "producer_free"),
		consumerFree: deriveKey(prefix, name, "consumer_free"),

		statsProducedMessages: deriveKey(prefix, name, "stats:produced_messages"),
		statsProducedBytes:    deriveKey(prefix, name, "stats:produced_bytes"),
		statsConsumedMessages: deriveKey(prefix, name, "stats:consumed_messages"),
		statsConsumedBytes:    deriveKey(prefix, name, "stats:consumed_bytes"),

		notFull: deriveKey(prefix, name, "not_full"),
		closed:  deriveKey(prefix, name, "closed"),
	}
}

// bookkeeping returns the stats counters, the not_full/closed flags, and
// the queue list itself — the keys Delete removes in its final sweep,
// after the bound key and the producer/consumer tag keys have already
// been removed (see lifecycle.go).
func (k keySet) bookkeeping() []string {
	return []string{
		k.statsProducedMessages,
		k.statsProducedBytes,
		k.statsConsumedMessages,
		k.statsConsumedBytes,
		k.notFull,
		k.closed,
		k.queue,
	}
}
