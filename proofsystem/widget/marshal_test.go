package widget_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/big"
	"testing"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plonkup/plonkup/polynomial"
	"github.com/plonkup/plonkup/proofsystem/widget"
)

var keyCmpOpts = []cmp.Option{
	cmp.Comparer(func(a, b fr.Element) bool { return a.Equal(&b) }),
	cmpopts.EquateEmpty(),
}

func randScalars(t *testing.T, n int) []fr.Element {
	t.Helper()
	s := make([]fr.Element, n)
	for i := range s {
		_, err := s[i].SetRandom()
		require.NoError(t, err)
	}
	return s
}

func randPair(t *testing.T, n int) *polynomial.Pair {
	t.Helper()
	return &polynomial.Pair{
		Poly:  randScalars(t, n),
		Evals: randScalars(t, 4*n),
	}
}

func randProverKey(t *testing.T, n int) *widget.ProverKey {
	t.Helper()
	var pairs [widget.NbCircuitCommitments]*polynomial.Pair
	for i := range pairs {
		pairs[i] = randPair(t, n)
	}
	return widget.NewProverKey(uint64(n),
		pairs[0], pairs[1], pairs[2], pairs[3], pairs[4],
		pairs[5], pairs[6], pairs[7], pairs[8], pairs[9],
		pairs[10], pairs[11], pairs[12], pairs[13], pairs[14],
		randScalars(t, 4*n), randScalars(t, 4*n),
	)
}

func generatorVerifierKey(n uint64) *widget.VerifierKey {
	_, _, g1, _ := curve.Generators()
	g := kzg.Digest(g1)
	return widget.NewVerifierKey(n,
		g, g, g, g, g, g, g, g, g, g, g, g, g, g, g)
}

func TestVerifierKeyRoundTrip(t *testing.T) {
	vk := generatorVerifierKey(32)

	var buf bytes.Buffer
	written, err := vk.WriteTo(&buf)
	require.NoError(t, err)
	require.EqualValues(t, widget.SizeOfVerifierKey, written)
	require.Equal(t, widget.SizeOfVerifierKey, buf.Len())

	// the circuit size leads the encoding
	require.EqualValues(t, 32, binary.BigEndian.Uint64(buf.Bytes()[:8]))

	var got widget.VerifierKey
	read, err := got.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.EqualValues(t, widget.SizeOfVerifierKey, read)

	require.Empty(t, cmp.Diff(vk, &got, keyCmpOpts...))
}

func TestVerifierKeyEncodeDeterministic(t *testing.T) {
	vk := generatorVerifierKey(16)

	var a, b bytes.Buffer
	_, err := vk.WriteTo(&a)
	require.NoError(t, err)
	_, err = vk.WriteTo(&b)
	require.NoError(t, err)
	require.Equal(t, a.Bytes(), b.Bytes())
}

func TestVerifierKeyAliasing(t *testing.T) {
	vk := generatorVerifierKey(8)

	var buf bytes.Buffer
	_, err := vk.WriteTo(&buf)
	require.NoError(t, err)

	var got widget.VerifierKey
	_, err = got.ReadFrom(&buf)
	require.NoError(t, err)

	// shared selectors are one commitment, not value-equal copies
	assert.Same(t, got.Arithmetic.Ql, got.FixedBase.Ql)
	assert.Same(t, got.Arithmetic.Qr, got.FixedBase.Qr)
	assert.Same(t, got.Arithmetic.Qc, got.Logic.Qc)

	require.Equal(t, got.Arithmetic.Ql.Bytes(), got.FixedBase.Ql.Bytes())
}

func TestVerifierKeyTruncated(t *testing.T) {
	vk := generatorVerifierKey(32)

	var buf bytes.Buffer
	_, err := vk.WriteTo(&buf)
	require.NoError(t, err)

	for _, n := range []int{0, 4, 8, 8 + curve.SizeOfG1AffineCompressed - 1, widget.SizeOfVerifierKey - 1} {
		var got widget.VerifierKey
		_, err := got.ReadFrom(bytes.NewReader(buf.Bytes()[:n]))
		require.Errorf(t, err, "decoding %d bytes must fail", n)
	}
}

func TestVerifierKeyInvalidPoint(t *testing.T) {
	vk := generatorVerifierKey(32)

	var buf bytes.Buffer
	_, err := vk.WriteTo(&buf)
	require.NoError(t, err)

	// clobber the q_m commitment
	raw := buf.Bytes()
	for i := 8; i < 8+curve.SizeOfG1AffineCompressed; i++ {
		raw[i] = 0xff
	}

	var got widget.VerifierKey
	_, err = got.ReadFrom(bytes.NewReader(raw))
	require.Error(t, err)
	require.ErrorContains(t, err, "q_m")
}

func TestProverKeyRoundTrip(t *testing.T) {
	n := 1 << 11
	pk := randProverKey(t, n)

	var buf bytes.Buffer
	written, err := pk.WriteTo(&buf)
	require.NoError(t, err)
	require.EqualValues(t, pk.EncodedSize(), written)

	// 2 header integers, 15 length-prefixed polynomials, 17 uniform
	// evaluation blocks
	expected := 2*8 + 15*(8+n*fr.Bytes) + 17*4*n*fr.Bytes
	require.Equal(t, expected, buf.Len())

	var got widget.ProverKey
	read, err := got.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.EqualValues(t, written, read)

	require.Empty(t, cmp.Diff(pk, &got, keyCmpOpts...))
}

func TestProverKeyAliasing(t *testing.T) {
	pk := randProverKey(t, 8)

	var buf bytes.Buffer
	_, err := pk.WriteTo(&buf)
	require.NoError(t, err)

	var got widget.ProverKey
	_, err = got.ReadFrom(&buf)
	require.NoError(t, err)

	assert.Same(t, got.Arithmetic.Ql, got.FixedBase.Ql)
	assert.Same(t, got.Arithmetic.Qr, got.FixedBase.Qr)
	assert.Same(t, got.Arithmetic.Qc, got.Logic.Qc)
	assert.Same(t, got.Arithmetic.Qc, got.FixedBase.Qc)
}

func TestProverKeyEmptyPolynomial(t *testing.T) {
	n := 4
	pk := randProverKey(t, n)
	// an empty polynomial is written as a zero count with no coefficient
	// bytes; its evaluation block keeps the uniform length
	pk.Range.QRange.Poly = polynomial.Polynomial{}

	var buf bytes.Buffer
	written, err := pk.WriteTo(&buf)
	require.NoError(t, err)
	require.EqualValues(t, pk.EncodedSize(), written)

	var got widget.ProverKey
	_, err = got.ReadFrom(&buf)
	require.NoError(t, err)

	require.Len(t, got.Range.QRange.Poly, 0)
	require.Len(t, got.Range.QRange.Evals, 4*n)
	require.Empty(t, cmp.Diff(pk, &got, keyCmpOpts...))
}

func TestProverKeyTruncated(t *testing.T) {
	pk := randProverKey(t, 8)

	var buf bytes.Buffer
	_, err := pk.WriteTo(&buf)
	require.NoError(t, err)

	for _, n := range []int{0, 8, 15, 16, 24, 24 + 3*fr.Bytes, buf.Len() / 2, buf.Len() - 1} {
		var got widget.ProverKey
		_, err := got.ReadFrom(bytes.NewReader(buf.Bytes()[:n]))
		require.Errorf(t, err, "decoding %d bytes must fail", n)
	}
}

func TestProverKeyDeclaredLengthExceedsBuffer(t *testing.T) {
	pk := randProverKey(t, 8)

	var buf bytes.Buffer
	_, err := pk.WriteTo(&buf)
	require.NoError(t, err)

	// inflate the declared q_m coefficient count past the buffer end
	raw := buf.Bytes()
	binary.BigEndian.PutUint64(raw[16:24], uint64(buf.Len()))

	var got widget.ProverKey
	_, err = got.ReadFrom(bytes.NewReader(raw))
	require.Error(t, err)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestProverKeyAdversarialDeclaredLengths(t *testing.T) {
	pk := randProverKey(t, 4)

	var buf bytes.Buffer
	_, err := pk.WriteTo(&buf)
	require.NoError(t, err)

	// declared lengths are attacker-controlled; decoding must fail with an
	// error, never trap or allocate the declared size up front
	t.Run("coefficient count", func(t *testing.T) {
		raw := bytes.Clone(buf.Bytes())
		binary.BigEndian.PutUint64(raw[16:24], 1<<61)

		var got widget.ProverKey
		_, err := got.ReadFrom(bytes.NewReader(raw))
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("evaluations size", func(t *testing.T) {
		raw := bytes.Clone(buf.Bytes())
		binary.BigEndian.PutUint64(raw[8:16], 1<<62)

		var got widget.ProverKey
		_, err := got.ReadFrom(bytes.NewReader(raw))
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestProverKeyNonCanonicalScalar(t *testing.T) {
	pk := randProverKey(t, 8)

	var buf bytes.Buffer
	_, err := pk.WriteTo(&buf)
	require.NoError(t, err)

	// overwrite the first q_m coefficient with a value >= r
	raw := buf.Bytes()
	for i := 24; i < 24+fr.Bytes; i++ {
		raw[i] = 0xff
	}

	var got widget.ProverKey
	_, err = got.ReadFrom(bytes.NewReader(raw))
	require.Error(t, err)
	require.ErrorContains(t, err, "q_m")
}

func TestKeyRoundTripProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10
	properties := gopter.NewProperties(parameters)

	_, _, g1, _ := curve.Generators()

	properties.Property("verifier key round-trips", prop.ForAll(
		func(n uint64, scalars []uint64) bool {
			var digests [widget.NbCircuitCommitments]kzg.Digest
			for i := range digests {
				digests[i].ScalarMultiplication(&g1, new(big.Int).SetUint64(scalars[i]+1))
			}
			vk := widget.NewVerifierKey(n,
				digests[0], digests[1], digests[2], digests[3], digests[4],
				digests[5], digests[6], digests[7], digests[8], digests[9],
				digests[10], digests[11], digests[12], digests[13], digests[14],
			)

			var buf bytes.Buffer
			if _, err := vk.WriteTo(&buf); err != nil {
				return false
			}
			var got widget.VerifierKey
			if _, err := got.ReadFrom(&buf); err != nil {
				return false
			}
			return cmp.Diff(vk, &got, keyCmpOpts...) == ""
		},
		gen.UInt64Range(1, 1<<20),
		gen.SliceOfN(widget.NbCircuitCommitments, gen.UInt64()),
	))

	properties.Property("prover key round-trips", prop.ForAll(
		func(n uint8) bool {
			size := int(n%16) + 1
			pk := randProverKey(t, size)

			var buf bytes.Buffer
			if _, err := pk.WriteTo(&buf); err != nil {
				return false
			}
			if buf.Len() != pk.EncodedSize() {
				return false
			}
			var got widget.ProverKey
			if _, err := got.ReadFrom(&buf); err != nil {
				return false
			}
			return cmp.Diff(pk, &got, keyCmpOpts...) == ""
		},
		gen.UInt8(),
	))

	properties.TestingRun(t)
}
