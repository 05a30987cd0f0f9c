package random

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// Seeded implements Random with a deterministic PRNG. Two Seeded values
// created with the same seed produce the same sequence.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a Seeded source
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a pseudo-random int in [0, n)
func (s *Seeded) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Float64 returns a pseudo-random float in [0.0, 1.0)
func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// String generates a pseudo-random string from the given alphabet
func (s *Seeded) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := range result {
		result[i] = alphabet[s.Intn(len(alphabet))]
	}
	return string(result)
}

// UUID returns a UUID built from the PRNG stream
func (s *Seeded) UUID() string {
	var b [16]byte
	s.mu.Lock()
	_, _ = s.rng.Read(b[:])
	s.mu.Unlock()

	id, err := uuid.FromBytes(b[:])
	if err != nil {
		return uuid.NewString()
	}
	// Stamp version 4 / RFC 4122 variant bits
	id[6] = (id[6] & 0x0f) | 0x40
	id[8] = (id[8] & 0x3f) | 0x80
	return id.String()
}
