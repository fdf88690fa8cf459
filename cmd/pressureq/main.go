// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command pressureq is a thin CLI front-end over the pressureq
// package, mirroring the reference C client's put/get executables as
// subcommands of one binary instead of two separate ones.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	redisAddr string
	prefix    string
	bound     int
	debug     bool
)

func main() {
	root := &cobra.Command{
		Use:   "pressureq",
		Short: "Put and get messages on a distributed pressure queue",
	}

	root.PersistentFlags().StringVar(&redisAddr, "redis-addr", "", "redis address (overrides PRESSUREQ_REDIS_ADDR)")
	root.PersistentFlags().StringVar(&prefix, "prefix", "", "queue key prefix (overrides PRESSUREQ_PREFIX)")
	root.PersistentFlags().IntVar(&bound, "bound", 0, "bound to create the queue with if it does not already exist (0 = unbounded)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "print the queue handle's diagnostic dump to stderr before running")

	root.AddCommand(newPutCmd())
	root.AddCommand(newGetCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
