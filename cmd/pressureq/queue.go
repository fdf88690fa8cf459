// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	"code.hybscloud.com/pressureq"
)

// openQueue loads configuration, applies any CLI overrides, connects,
// and ensures the named queue exists — creating it with the configured
// bound if this is the first client to touch it, same as both put.c and
// get.c do before their respective loops.
func openQueue(ctx context.Context, name string) (*pressureq.Queue, error) {
	cfg, err := pressureq.LoadConfig()
	if err != nil {
		return nil, err
	}
	if redisAddr != "" {
		cfg.RedisAddr = redisAddr
	}
	if prefix != "" {
		cfg.Prefix = prefix
	}

	client := pressureq.NewRedisClient(cfg)
	q, err := pressureq.Open(ctx, client, cfg.Prefix, name)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}

	switch err := q.Create(ctx, bound); {
	case pressureq.IsUnexpectedFailure(err):
		return nil, fmt.Errorf("unexpected failure: %w", err)
	case pressureq.IsQueueAlreadyExists(err), err == nil:
		// fine — either we just created it, or another client beat us to it.
	default:
		return nil, err
	}

	if debug {
		fmt.Fprint(os.Stderr, q.String())
	}
	return q, nil
}
