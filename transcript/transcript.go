// Package transcript constructs the Fiat-Shamir transcript both parties
// derive their challenges from. The transcript chains challenges, so a value
// bound to an earlier challenge influences every later one.
package transcript

import (
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
	"golang.org/x/crypto/sha3"
)

// Challenge identifiers, in derivation order. Beta through Zeta drive the
// core protocol; Theta, Delta and Epsilon drive the lookup argument.
const (
	Beta    = "beta"
	Gamma   = "gamma"
	Alpha   = "alpha"
	Zeta    = "zeta"
	Theta   = "theta"
	Delta   = "delta"
	Epsilon = "epsilon"
)

// schedule is the fixed challenge derivation order.
var schedule = []string{Beta, Gamma, Alpha, Zeta, Theta, Delta, Epsilon}

// New returns a transcript over Keccak-256 with the protocol's challenge
// schedule. Two parties seeding equal public data into fresh transcripts
// derive identical challenges.
func New() *fiatshamir.Transcript {
	return fiatshamir.NewTranscript(sha3.NewLegacyKeccak256(), schedule...)
}
