// Package channel provides Channel, the unbounded blocking FIFO that
// connects pipeline stages.
//
// Unlike a Go chan, a Channel never blocks a producer: Put always succeeds
// and only Get waits. Stages of a farm share one Channel on each side, so a
// Channel serialises any number of concurrent producers and consumers.
// Values put by a single producer are received in that producer's order.
package channel
