package widget

import (
	"encoding/binary"
	"fmt"
	"io"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"

	"github.com/plonkup/plonkup/internal/ioutils"
	"github.com/plonkup/plonkup/polynomial"
)

// SizeOfVerifierKey is the exact byte length of a serialized VerifierKey:
// the circuit size followed by the 15 compressed commitments.
const SizeOfVerifierKey = 8 + NbCircuitCommitments*curve.SizeOfG1AffineCompressed

// nbEvaluationBlocks counts the evaluation blocks of a serialized ProverKey:
// one per polynomial pair, plus the permutation linear evaluations and the
// vanishing coset evaluations.
const nbEvaluationBlocks = NbCircuitCommitments + 2

// WriteTo serializes vk into w: the circuit size as a big-endian uint64,
// then the commitments, compressed, in the canonical label order. The
// encoding has no version tag; format changes are breaking.
func (vk *VerifierKey) WriteTo(w io.Writer) (int64, error) {
	cw := ioutils.WriterCounter{W: w}

	var size [8]byte
	binary.BigEndian.PutUint64(size[:], vk.Size)
	if _, err := cw.Write(size[:]); err != nil {
		return cw.N, err
	}

	for i, c := range vk.commitments() {
		b := c.Bytes()
		if _, err := cw.Write(b[:]); err != nil {
			return cw.N, fmt.Errorf("writing %s: %w", circuitLabels[i], err)
		}
	}

	return cw.N, nil
}

// ReadFrom deserializes vk from r, mirroring WriteTo. The key is rebuilt
// through NewVerifierKey so selector aliasing across fragments is restored
// structurally. It returns an error, never panics, on truncated input or a
// commitment that is not a valid curve point.
func (vk *VerifierKey) ReadFrom(r io.Reader) (int64, error) {
	cr := ioutils.ReaderCounter{R: r}

	var size [8]byte
	if _, err := io.ReadFull(&cr, size[:]); err != nil {
		return cr.N, fmt.Errorf("reading circuit size: %w", err)
	}
	n := binary.BigEndian.Uint64(size[:])

	var digests [NbCircuitCommitments]kzg.Digest
	var buf [curve.SizeOfG1AffineCompressed]byte
	for i := range digests {
		if _, err := io.ReadFull(&cr, buf[:]); err != nil {
			return cr.N, fmt.Errorf("reading %s: %w", circuitLabels[i], err)
		}
		if _, err := digests[i].SetBytes(buf[:]); err != nil {
			return cr.N, fmt.Errorf("decoding %s: %w", circuitLabels[i], err)
		}
	}

	*vk = *NewVerifierKey(n,
		digests[0], digests[1], digests[2], digests[3], digests[4],
		digests[5], digests[6], digests[7], digests[8], digests[9],
		digests[10], digests[11], digests[12], digests[13], digests[14],
	)
	return cr.N, nil
}

// evaluationsSize returns the uniform byte length of the key's evaluation
// blocks.
func (pk *ProverKey) evaluationsSize() uint64 {
	return uint64(len(pk.VHCoset4n)) * fr.Bytes
}

// EncodedSize returns the exact byte length WriteTo will produce. Lengths
// are computed up front so callers can preallocate, and so the layout stays
// consistent when polynomial degrees vary per selector while the evaluation
// block length is uniform.
func (pk *ProverKey) EncodedSize() int {
	// circuit size + evaluations-block length, then one uniform evaluation
	// block per polynomial pair plus the two bare blocks
	size := 2*8 + nbEvaluationBlocks*int(pk.evaluationsSize())
	for _, p := range pk.pairs() {
		size += 8 + len(p.Poly)*fr.Bytes
	}
	return size
}

// WriteTo serializes pk into w. Layout, all integers big-endian uint64:
// the circuit size, the evaluations-block byte length (uniform within one
// key, written once), then for each polynomial pair in the canonical label
// order its coefficient count, raw coefficients and raw evaluations, then
// the permutation linear evaluations and the vanishing coset evaluations as
// two bare evaluation blocks.
func (pk *ProverKey) WriteTo(w io.Writer) (int64, error) {
	cw := ioutils.WriterCounter{W: w}

	var u64 [8]byte
	writeUint64 := func(v uint64) error {
		binary.BigEndian.PutUint64(u64[:], v)
		_, err := cw.Write(u64[:])
		return err
	}
	writeScalars := func(s []fr.Element) error {
		for i := range s {
			b := s[i].Bytes()
			if _, err := cw.Write(b[:]); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeUint64(pk.Size); err != nil {
		return cw.N, err
	}
	if err := writeUint64(pk.evaluationsSize()); err != nil {
		return cw.N, err
	}

	for i, p := range pk.pairs() {
		if err := writeUint64(uint64(len(p.Poly))); err != nil {
			return cw.N, fmt.Errorf("writing %s: %w", circuitLabels[i], err)
		}
		if err := writeScalars(p.Poly); err != nil {
			return cw.N, fmt.Errorf("writing %s: %w", circuitLabels[i], err)
		}
		if err := writeScalars(p.Evals); err != nil {
			return cw.N, fmt.Errorf("writing %s evaluations: %w", circuitLabels[i], err)
		}
	}

	if err := writeScalars(pk.Permutation.LinearEvaluations); err != nil {
		return cw.N, fmt.Errorf("writing linear evaluations: %w", err)
	}
	if err := writeScalars(pk.VHCoset4n); err != nil {
		return cw.N, fmt.Errorf("writing vanishing evaluations: %w", err)
	}

	return cw.N, nil
}

// ReadFrom deserializes pk from r, mirroring WriteTo. A zero coefficient
// count is a valid, explicit case: the polynomial is empty and only its
// evaluation block follows. Truncated input and non-canonical scalars
// return errors, never panic. The declared evaluations-block length is
// trusted; domain consistency is the caller's concern.
func (pk *ProverKey) ReadFrom(r io.Reader) (int64, error) {
	cr := ioutils.ReaderCounter{R: r}

	var u64 [8]byte
	readUint64 := func() (uint64, error) {
		if _, err := io.ReadFull(&cr, u64[:]); err != nil {
			return 0, err
		}
		return binary.BigEndian.Uint64(u64[:]), nil
	}
	// readScalars grows the result as bytes actually arrive, so an
	// adversarial declared length cannot force a huge allocation or an
	// out-of-range make before the short read surfaces.
	readScalars := func(nb uint64) ([]fr.Element, error) {
		s := make([]fr.Element, 0, min(nb, 1024))
		var buf [fr.Bytes]byte
		for i := uint64(0); i < nb; i++ {
			if _, err := io.ReadFull(&cr, buf[:]); err != nil {
				return nil, err
			}
			var e fr.Element
			if err := e.SetBytesCanonical(buf[:]); err != nil {
				return nil, err
			}
			s = append(s, e)
		}
		return s, nil
	}

	n, err := readUint64()
	if err != nil {
		return cr.N, fmt.Errorf("reading circuit size: %w", err)
	}
	evalsSize, err := readUint64()
	if err != nil {
		return cr.N, fmt.Errorf("reading evaluations size: %w", err)
	}
	if evalsSize%fr.Bytes != 0 {
		return cr.N, fmt.Errorf("evaluations size %d is not a multiple of the scalar size", evalsSize)
	}
	nbEvals := evalsSize / fr.Bytes

	var pairs [NbCircuitCommitments]*polynomial.Pair
	for i := range pairs {
		nbCoeffs, err := readUint64()
		if err != nil {
			return cr.N, fmt.Errorf("reading %s length: %w", circuitLabels[i], err)
		}
		poly, err := readScalars(nbCoeffs)
		if err != nil {
			return cr.N, fmt.Errorf("reading %s: %w", circuitLabels[i], err)
		}
		evals, err := readScalars(nbEvals)
		if err != nil {
			return cr.N, fmt.Errorf("reading %s evaluations: %w", circuitLabels[i], err)
		}
		pairs[i] = &polynomial.Pair{Poly: poly, Evals: evals}
	}

	linearEvaluations, err := readScalars(nbEvals)
	if err != nil {
		return cr.N, fmt.Errorf("reading linear evaluations: %w", err)
	}

	vHCoset4n, err := readScalars(nbEvals)
	if err != nil {
		return cr.N, fmt.Errorf("reading vanishing evaluations: %w", err)
	}

	*pk = *NewProverKey(n,
		pairs[0], pairs[1], pairs[2], pairs[3], pairs[4],
		pairs[5], pairs[6], pairs[7], pairs[8], pairs[9],
		pairs[10], pairs[11], pairs[12], pairs[13], pairs[14],
		linearEvaluations, vHCoset4n,
	)
	return cr.N, nil
}
