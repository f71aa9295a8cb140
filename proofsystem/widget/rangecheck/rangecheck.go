// Package rangecheck holds the key fragments for the range gate.
package rangecheck

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/plonkup/plonkup/polynomial"
)

// VerifierKey holds the commitment to the range gate selector.
type VerifierKey struct {
	QRange *kzg.Digest
}

// ProverKey holds the range gate selector and its coset evaluations.
type ProverKey struct {
	QRange *polynomial.Pair
}
