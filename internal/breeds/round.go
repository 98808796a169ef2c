package breeds

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	mrand "math/rand"
	"sync"
	"time"
)

// RoundSize is the number of questions in one round.
const RoundSize = 6

// ErrInsufficientCatalogSize is returned when a catalog cannot fill a round.
var ErrInsufficientCatalogSize = errors.New("breeds: catalog smaller than round size")

var (
	rngOnce sync.Once
	procRng *mrand.Rand
	rngMu   sync.Mutex
)

// processRand returns the process-wide source, seeded once per run.
func processRand() *mrand.Rand {
	rngOnce.Do(func() {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			procRng = mrand.New(mrand.NewSource(time.Now().UnixNano()))
			return
		}
		procRng = mrand.New(mrand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
	})
	return procRng
}

// NewRand returns a generator seeded from the process-wide source. Rounds in
// the same process draw from it, so they differ from each other.
func NewRand() *mrand.Rand {
	rngMu.Lock()
	defer rngMu.Unlock()
	return mrand.New(mrand.NewSource(processRand().Int63()))
}

// SelectRound picks RoundSize distinct breeds uniformly at random.
// A nil rng uses a generator derived from the process-wide source.
func SelectRound(catalog []Breed, rng *mrand.Rand) ([]Breed, error) {
	if len(catalog) < RoundSize {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientCatalogSize, len(catalog), RoundSize)
	}
	if rng == nil {
		rng = NewRand()
	}
	idx := rng.Perm(len(catalog))[:RoundSize]
	out := make([]Breed, RoundSize)
	for i, j := range idx {
		out[i] = catalog[j]
	}
	return out, nil
}

// RandomTrait returns one of b's traits.
func RandomTrait(b Breed, rng *mrand.Rand) string {
	if len(b.Traits) == 0 {
		return ""
	}
	if rng == nil {
		rng = NewRand()
	}
	return b.Traits[rng.Intn(len(b.Traits))]
}
