package dice

import (
	"crypto/rand"
	"math/big"
)

// CryptoSourceTag names NewCryptoSource in a RollResult's rng.source field.
const CryptoSourceTag = "crypto/rand"

type cryptoSource struct{}

// NewCryptoSource returns the production Source. Its draws cannot be replayed,
// so a roll is audited by its recorded rolls and nonce rather than by a seed.
func NewCryptoSource() Source {
	return cryptoSource{}
}

// Intn panics when n <= 0 or when the system entropy source fails; neither
// can happen for a request that passed Parse.
func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	face, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: reading crypto/rand: " + err.Error())
	}
	return int(face.Int64())
}

// rollDie draws one face in [1, sides] from src.
func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}
