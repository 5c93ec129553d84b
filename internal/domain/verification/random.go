package verification

import (
	"math/rand"
	"sync"
)

type lockedRandom struct {
	mutex sync.Mutex
	inner *rand.Rand
}

func NewRandom(source rand.Source) *lockedRandom {
	return &lockedRandom{inner: rand.New(source)}
}

func (r *lockedRandom) Float64() float64 {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.inner.Float64()
}
