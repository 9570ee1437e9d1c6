package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

var commitSeq uint64

// nextSeq numbers shapes in creation order.
func nextSeq() uint64 {
	return atomic.AddUint64(&commitSeq, 1)
}

func newShapeID() string {
	return uuid.NewString()
}
