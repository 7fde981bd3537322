// Package dice provides the random-number source used by the combat
// resolver. Unlike a typical dice-game library, every combat roll here is
// drawn from a single deterministic stream, seeded once when the battle's
// roller is built, so replays of an identical input sequence from the
// same seed draw identical rolls (spec.md §4.3, §8 property #7). The
// resolver does not reseed the stream per resolution.
package dice

import (
	cryptorand "crypto/rand"
	"fmt"
	"math/big"
	mathrand "math/rand"
)

// Roller is the interface for random number generation used throughout
// the combat resolver. CryptoRoller is safe for concurrent use;
// DeterministicRoller is not.
//
//go:generate mockgen -destination=mock/mock_roller.go -package=mock_dice github.com/pfassina/grimdark/dice Roller
type Roller interface {
	// Roll returns a random integer in [1, size].
	Roll(size int) (int, error)

	// RollN rolls count dice of the given size, returning each result.
	RollN(count, size int) ([]int, error)
}

// CryptoRoller implements Roller using crypto/rand. It is suitable for
// one-off, non-reproducible rolls (previews, flavor text) but must never
// back a resolution the simulation needs to replay deterministically.
type CryptoRoller struct{}

// Roll returns a cryptographically secure random integer in [1, size].
func (c *CryptoRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("dice: invalid die size %d", size)
	}
	n, err := cryptorand.Int(cryptorand.Reader, big.NewInt(int64(size)))
	if err != nil {
		return 0, fmt.Errorf("dice: crypto/rand error: %w", err)
	}
	return int(n.Int64()) + 1, nil
}

// RollN rolls count dice of the given size using crypto/rand.
func (c *CryptoRoller) RollN(count, size int) ([]int, error) {
	if size <= 0 {
		return nil, fmt.Errorf("dice: invalid die size %d", size)
	}
	if count < 0 {
		return nil, fmt.Errorf("dice: invalid die count %d", count)
	}
	results := make([]int, count)
	for i := 0; i < count; i++ {
		roll, err := c.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = roll
	}
	return results, nil
}

// DeterministicRoller draws from a single seeded math/rand stream. The
// combat resolver draws every roll of a battle from one such roller and
// never reseeds it, so the same seed and the same sequence of resolutions
// reproduce identical damage across runs (spec.md §4.3 step 3, §9
// "Global mutable RNG"). It is not safe for concurrent use.
type DeterministicRoller struct {
	src *mathrand.Rand
}

// NewDeterministicRoller creates a roller seeded with the given value.
func NewDeterministicRoller(seed int64) *DeterministicRoller {
	return &DeterministicRoller{src: mathrand.New(mathrand.NewSource(seed))}
}

// Reseed replaces the underlying stream with one seeded from seed, for
// example a value from Seed. The combat resolver does not call it.
func (d *DeterministicRoller) Reseed(seed int64) {
	d.src = mathrand.New(mathrand.NewSource(seed))
}

// Roll returns a deterministic integer in [1, size].
func (d *DeterministicRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("dice: invalid die size %d", size)
	}
	return d.src.Intn(size) + 1, nil
}

// RollN rolls count dice of the given size from the deterministic stream.
func (d *DeterministicRoller) RollN(count, size int) ([]int, error) {
	if size <= 0 {
		return nil, fmt.Errorf("dice: invalid die size %d", size)
	}
	if count < 0 {
		return nil, fmt.Errorf("dice: invalid die count %d", count)
	}
	results := make([]int, count)
	for i := 0; i < count; i++ {
		roll, err := d.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = roll
	}
	return results, nil
}

// DefaultRoller is the package-level default, used where callers don't
// need reproducibility (e.g. flavor rolls). The combat package always
// injects its own DeterministicRoller rather than relying on this.
var DefaultRoller Roller = &CryptoRoller{}

// SetDefaultRoller swaps the package default. Not safe for concurrent use
// with other dice operations; intended for tests.
func SetDefaultRoller(r Roller) {
	DefaultRoller = r
}

// Seed combines the four values spec.md §4.3 names into a single seed for
// NewDeterministicRoller or DeterministicRoller.Reseed: attacker id,
// defender id, a tick, and a sequence counter.
func Seed(attackerID, defenderID string, now int64, seq uint64) int64 {
	h := fnv1a(attackerID)
	h = fnv1aAppend(h, defenderID)
	h ^= uint64(now) * 1099511628211
	h ^= seq * 1099511628211
	return int64(h)
}

func fnv1a(s string) uint64 {
	const offset = 14695981039346656037
	const prime = 1099511628211
	h := uint64(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}

func fnv1aAppend(h uint64, s string) uint64 {
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}
