// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"code.hybscloud.com/pressureq"
	"github.com/spf13/cobra"
)

// newPutCmd mirrors the reference C put.c: read lines from stdin,
// Put each one, stop reading on ErrQueueDoesNotExist/ErrQueueClosed,
// and Close the queue when stdin is exhausted.
func newPutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <queue_name>",
		Short: "Read lines from stdin and put each one onto the queue",
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

			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := scanner.Bytes()
				switch err := q.Put(ctx, line); {
				case pressureq.IsQueueDoesNotExist(err), pressureq.IsQueueClosed(err):
					return nil
				case err != nil:
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			switch err := q.Close(ctx); {
			case pressureq.IsQueueDoesNotExist(err):
				fmt.Fprintln(os.Stderr, "queue does not exist!")
			case pressureq.IsQueueClosed(err):
				fmt.Fprintln(os.Stderr, "queue closed already!")
			case err != nil:
				return err
			}
			return nil
		},
	}
}
