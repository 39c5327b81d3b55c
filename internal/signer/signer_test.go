package signer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrylov/go-data-vault/models"
)

const testMnemonic = "legal winner thank year wave sausage worth useful legal winner thank yellow"

func TestNewMnemonicSigner_Deterministic(t *testing.T) {
	s1, err := NewMnemonicSigner(testMnemonic, "")
	require.NoError(t, err)
	s2, err := NewMnemonicSigner(testMnemonic, "")
	require.NoError(t, err)

	sig1, err := s1.Sign([]byte("vault-master-v1:space1"))
	require.NoError(t, err)
	sig2, err := s2.Sign([]byte("vault-master-v1:space1"))
	require.NoError(t, err)

	assert.Equal(t, sig1, sig2)
	assert.Equal(t, s1.Principal(), s2.Principal())
}

func TestNewMnemonicSigner_PassphraseChangesIdentity(t *testing.T) {
	s1, err := NewMnemonicSigner(testMnemonic, "")
	require.NoError(t, err)
	s2, err := NewMnemonicSigner(testMnemonic, "trezor")
	require.NoError(t, err)

	assert.NotEqual(t, s1.Principal(), s2.Principal())
}

func TestNewMnemonicSigner_InvalidMnemonic(t *testing.T) {
	_, err := NewMnemonicSigner("not a real mnemonic at all", "")
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestMnemonicSigner_PrincipalParses(t *testing.T) {
	s, err := NewMnemonicSigner(testMnemonic, "")
	require.NoError(t, err)

	p, err := models.ParsePrincipal(s.Principal().DID())
	require.NoError(t, err)
	assert.Equal(t, models.PrincipalMethod, p.Method)
}

func TestHMACSigner_DeterministicAndSeparated(t *testing.T) {
	a := NewHMACSigner([]byte("alice"))
	b := NewHMACSigner([]byte("bob"))

	sigA1, err := a.Sign([]byte("message"))
	require.NoError(t, err)
	sigA2, err := a.Sign([]byte("message"))
	require.NoError(t, err)
	sigB, err := b.Sign([]byte("message"))
	require.NoError(t, err)

	assert.Equal(t, sigA1, sigA2)
	assert.NotEqual(t, sigA1, sigB)
	assert.NotEqual(t, a.Principal(), b.Principal())
}

func TestSigners_RejectEmptyMessage(t *testing.T) {
	m, err := NewMnemonicSigner(testMnemonic, "")
	require.NoError(t, err)

	_, err = m.Sign(nil)
	require.Error(t, err)

	_, err = NewHMACSigner([]byte("x")).Sign(nil)
	require.Error(t, err)
}
