// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq

import (
	"os"
	"strconv"
)

// clientIdentity returns a string uniquely identifying this process
// within the federation of clients touching one backing store: the
// local hostname joined with the OS process ID, as "<hostname>_pid<pid>".
//
// This mirrors the C reference client's pressure_uid(), which resolves
// a canonical hostname via getaddrinfo and formats "%s_pid%d". Protocol
// correctness never depends on this value's uniqueness — it is written
// to the producer/consumer tag keys purely for observability — so a
// hostname lookup failure falls back to "unknown" rather than erroring.
func clientIdentity() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return host + "_pid" + strconv.Itoa(os.Getpid())
}
