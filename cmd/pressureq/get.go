// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	"code.hybscloud.com/pressureq"
	"github.com/spf13/cobra"
)

// newGetCmd mirrors the reference C get.c: loop calling Get, printing
// each message to stdout, until the queue is closed and drained.
func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <queue_name>",
		Short: "Print messages from the queue to stdout until it is closed and drained",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			q, err := openQueue(ctx, args[0])
			if err != nil {
				return err
			}
			defer q.Disconnect()

			for {
				message, err := q.Get(ctx)
				if pressureq.IsQueueClosed(err) {
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(message))
			}
		},
	}
}
