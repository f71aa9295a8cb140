// Package widget composes the per-gate key fragments into the circuit-wide
// proving and verifying keys, seeds the Fiat-Shamir transcript from a
// verifying key, and defines the byte codec both parties exchange keys with.
package widget

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
	"golang.org/x/sync/errgroup"

	"github.com/plonkup/plonkup/logger"
	"github.com/plonkup/plonkup/polynomial"
	"github.com/plonkup/plonkup/proofsystem/widget/arithmetic"
	"github.com/plonkup/plonkup/proofsystem/widget/curveadd"
	"github.com/plonkup/plonkup/proofsystem/widget/fixedbase"
	"github.com/plonkup/plonkup/proofsystem/widget/logic"
	"github.com/plonkup/plonkup/proofsystem/widget/permutation"
	"github.com/plonkup/plonkup/proofsystem/widget/rangecheck"
)

// NbCircuitCommitments is the number of distinct selector and sigma
// commitments a verifying key carries.
const NbCircuitCommitments = 15

// circuitLabels fixes the order in which the selector and sigma commitments
// enter both the transcript and the byte encoding. Reordering or relabeling
// breaks verification against other parties, even with unchanged values.
var circuitLabels = [NbCircuitCommitments]string{
	"q_m",
	"q_l",
	"q_r",
	"q_o",
	"q_c",
	"q_4",
	"q_arith",
	"q_range",
	"q_logic",
	"q_variable_group_add",
	"q_fixed_group_add",
	"left_sigma",
	"right_sigma",
	"out_sigma",
	"fourth_sigma",
}

// VerifierKey is the circuit description a verifying party holds: the gate
// count and the KZG commitments to every selector and sigma polynomial,
// partitioned into the per-gate fragments. Fragments sharing a selector
// point at the same commitment.
//
// A VerifierKey is immutable after construction and safe for concurrent use.
type VerifierKey struct {
	// Size is the circuit gate count, before padding to a power of two.
	Size uint64

	Arithmetic   arithmetic.VerifierKey
	Logic        logic.VerifierKey
	Range        rangecheck.VerifierKey
	FixedBase    fixedbase.VerifierKey
	VariableBase curveadd.VerifierKey
	Permutation  permutation.VerifierKey
}

// NewVerifierKey partitions the commitments, given in the canonical
// transcript order, into the widget fragments. Shared selectors (q_l, q_r,
// q_c) are aliased into every fragment using them. The constructor is total:
// malformed circuits are rejected during circuit compilation, not here.
func NewVerifierKey(
	n uint64,
	qM, qL, qR, qO, qC, q4, qArith,
	qRange, qLogic,
	qVariableGroupAdd, qFixedGroupAdd,
	leftSigma, rightSigma, outSigma, fourthSigma kzg.Digest,
) *VerifierKey {
	vk := &VerifierKey{Size: n}

	vk.Arithmetic = arithmetic.VerifierKey{
		Qm:     &qM,
		Ql:     &qL,
		Qr:     &qR,
		Qo:     &qO,
		Q4:     &q4,
		Qc:     &qC,
		QArith: &qArith,
	}
	vk.Logic = logic.VerifierKey{
		QLogic: &qLogic,
		Qc:     &qC,
	}
	vk.Range = rangecheck.VerifierKey{
		QRange: &qRange,
	}
	vk.FixedBase = fixedbase.VerifierKey{
		QFixedGroupAdd: &qFixedGroupAdd,
		Ql:             &qL,
		Qr:             &qR,
	}
	vk.VariableBase = curveadd.VerifierKey{
		QVariableGroupAdd: &qVariableGroupAdd,
	}
	vk.Permutation = permutation.VerifierKey{
		LeftSigma:   &leftSigma,
		RightSigma:  &rightSigma,
		OutSigma:    &outSigma,
		FourthSigma: &fourthSigma,
	}

	return vk
}

// commitments returns the key's commitments in the canonical label order.
func (vk *VerifierKey) commitments() [NbCircuitCommitments]*kzg.Digest {
	return [NbCircuitCommitments]*kzg.Digest{
		vk.Arithmetic.Qm,
		vk.Arithmetic.Ql,
		vk.Arithmetic.Qr,
		vk.Arithmetic.Qo,
		vk.Arithmetic.Qc,
		vk.Arithmetic.Q4,
		vk.Arithmetic.QArith,
		vk.Range.QRange,
		vk.Logic.QLogic,
		vk.VariableBase.QVariableGroupAdd,
		vk.FixedBase.QFixedGroupAdd,
		vk.Permutation.LeftSigma,
		vk.Permutation.RightSigma,
		vk.Permutation.OutSigma,
		vk.Permutation.FourthSigma,
	}
}

// SeedTranscript binds the full circuit description to the given challenge
// of fs: every commitment under its label, in the canonical order, followed
// by the circuit size. Since the transcript chains challenges, binding the
// first challenge of the schedule commits every later one.
func (vk *VerifierKey) SeedTranscript(fs *fiatshamir.Transcript, challenge string) error {
	cc := vk.commitments()
	for i, c := range cc {
		if err := fs.Bind(challenge, []byte(circuitLabels[i])); err != nil {
			return err
		}
		if err := fs.Bind(challenge, c.Marshal()); err != nil {
			return err
		}
	}

	// domain separation with the circuit size
	var size [8]byte
	binary.BigEndian.PutUint64(size[:], vk.Size)
	return fs.Bind(challenge, size[:])
}

// ProverKey is the circuit description a proving party holds: every selector
// and sigma polynomial in coefficient form paired with its evaluations over
// the 4n coset, plus the vanishing polynomial precomputed on that coset so
// the quotient combination never needs an inverse FFT.
//
// A ProverKey is immutable after construction and safe for concurrent use.
type ProverKey struct {
	// Size is the circuit gate count, before padding to a power of two.
	Size uint64

	Arithmetic   arithmetic.ProverKey
	Logic        logic.ProverKey
	Range        rangecheck.ProverKey
	FixedBase    fixedbase.ProverKey
	VariableBase curveadd.ProverKey
	Permutation  permutation.ProverKey

	// VHCoset4n holds the evaluations of X^n - 1 over the 4n coset.
	VHCoset4n polynomial.Evaluations
}

// NewProverKey partitions the polynomial pairs, given in the canonical
// order, into the widget fragments, aliasing shared selectors by pointer.
// linearEvaluations and vHCoset4n are the two evaluation-only blocks of the
// key; all evaluation blocks must come from the same 4n domain, which is not
// checked here.
func NewProverKey(
	n uint64,
	qM, qL, qR, qO, qC, q4, qArith,
	qRange, qLogic,
	qVariableGroupAdd, qFixedGroupAdd,
	leftSigma, rightSigma, outSigma, fourthSigma *polynomial.Pair,
	linearEvaluations, vHCoset4n polynomial.Evaluations,
) *ProverKey {
	pk := &ProverKey{Size: n, VHCoset4n: vHCoset4n}

	pk.Arithmetic = arithmetic.ProverKey{
		Qm:     qM,
		Ql:     qL,
		Qr:     qR,
		Qo:     qO,
		Q4:     q4,
		Qc:     qC,
		QArith: qArith,
	}
	pk.Logic = logic.ProverKey{
		QLogic: qLogic,
		Qc:     qC,
	}
	pk.Range = rangecheck.ProverKey{
		QRange: qRange,
	}
	pk.FixedBase = fixedbase.ProverKey{
		QFixedGroupAdd: qFixedGroupAdd,
		Ql:             qL,
		Qr:             qR,
		Qc:             qC,
	}
	pk.VariableBase = curveadd.ProverKey{
		QVariableGroupAdd: qVariableGroupAdd,
	}
	pk.Permutation = permutation.ProverKey{
		LeftSigma:         leftSigma,
		RightSigma:        rightSigma,
		OutSigma:          outSigma,
		FourthSigma:       fourthSigma,
		LinearEvaluations: linearEvaluations,
	}

	return pk
}

// pairs returns the key's polynomial pairs in the canonical label order.
func (pk *ProverKey) pairs() [NbCircuitCommitments]*polynomial.Pair {
	return [NbCircuitCommitments]*polynomial.Pair{
		pk.Arithmetic.Qm,
		pk.Arithmetic.Ql,
		pk.Arithmetic.Qr,
		pk.Arithmetic.Qo,
		pk.Arithmetic.Qc,
		pk.Arithmetic.Q4,
		pk.Arithmetic.QArith,
		pk.Range.QRange,
		pk.Logic.QLogic,
		pk.VariableBase.QVariableGroupAdd,
		pk.FixedBase.QFixedGroupAdd,
		pk.Permutation.LeftSigma,
		pk.Permutation.RightSigma,
		pk.Permutation.OutSigma,
		pk.Permutation.FourthSigma,
	}
}

// DeriveVerifierKey commits to every selector and sigma polynomial of pk
// with the provided SRS and assembles the resulting VerifierKey. This is how
// a proving party produces the key it hands to verifiers.
func (pk *ProverKey) DeriveVerifierKey(srs *kzg.SRS) (*VerifierKey, error) {
	log := logger.Logger().With().Str("backend", "plonkup").Uint64("n", pk.Size).Logger()
	start := time.Now()

	var digests [NbCircuitCommitments]kzg.Digest
	pp := pk.pairs()

	var g errgroup.Group
	for i := range pp {
		g.Go(func() error {
			d, err := kzg.Commit(pp[i].Poly, srs.Pk)
			if err != nil {
				return fmt.Errorf("committing to %s: %w", circuitLabels[i], err)
			}
			digests[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Dur("took", time.Since(start)).Msg("committed circuit polynomials")

	return NewVerifierKey(pk.Size,
		digests[0], digests[1], digests[2], digests[3], digests[4],
		digests[5], digests[6], digests[7], digests[8], digests[9],
		digests[10], digests[11], digests[12], digests[13], digests[14],
	), nil
}
