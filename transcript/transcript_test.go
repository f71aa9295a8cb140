package transcript_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plonkup/plonkup/transcript"
)

func TestChallengesDeterministic(t *testing.T) {
	a := transcript.New()
	b := transcript.New()

	require.NoError(t, a.Bind(transcript.Beta, []byte("public data")))
	require.NoError(t, b.Bind(transcript.Beta, []byte("public data")))

	ca, err := a.ComputeChallenge(transcript.Beta)
	require.NoError(t, err)
	cb, err := b.ComputeChallenge(transcript.Beta)
	require.NoError(t, err)
	require.Equal(t, ca, cb)
}

func TestChallengesBindInput(t *testing.T) {
	a := transcript.New()
	b := transcript.New()

	require.NoError(t, a.Bind(transcript.Beta, []byte("public data")))
	require.NoError(t, b.Bind(transcript.Beta, []byte("other data")))

	ca, err := a.ComputeChallenge(transcript.Beta)
	require.NoError(t, err)
	cb, err := b.ComputeChallenge(transcript.Beta)
	require.NoError(t, err)
	require.NotEqual(t, ca, cb)
}

func TestChallengesChain(t *testing.T) {
	// later challenges depend on data bound to earlier ones
	a := transcript.New()
	b := transcript.New()

	require.NoError(t, a.Bind(transcript.Beta, []byte("seed a")))
	require.NoError(t, b.Bind(transcript.Beta, []byte("seed b")))

	_, err := a.ComputeChallenge(transcript.Beta)
	require.NoError(t, err)
	_, err = b.ComputeChallenge(transcript.Beta)
	require.NoError(t, err)

	ga, err := a.ComputeChallenge(transcript.Gamma)
	require.NoError(t, err)
	gb, err := b.ComputeChallenge(transcript.Gamma)
	require.NoError(t, err)
	require.NotEqual(t, ga, gb)
}
