package cryptofacilities

import (
	"strconv"
	"sync/atomic"
	"time"
)

// Nonce allocates the strictly increasing counter the exchange requires on
// authenticated requests. It is seeded from the wall clock in microseconds
// so restarts of the same process keep moving forward, and advances by
// exactly 1 per request.
//
// The counter is atomic, so goroutines sharing one Client cannot corrupt
// it. Processes sharing one APIKey must still serialize allocation among
// themselves or the exchange will reject out-of-order nonces.
type Nonce struct {
	next atomic.Int64
}

// NewNonce creates a counter seeded from the current wall clock.
func NewNonce() *Nonce {
	n := &Nonce{}
	n.next.Store(time.Now().UnixMicro())
	return n
}

// Next consumes and returns the next nonce as a decimal string.
func (n *Nonce) Next() string {
	v := n.next.Add(1) - 1
	return strconv.FormatInt(v, 10)
}
