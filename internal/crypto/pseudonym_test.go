package crypto

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

func TestNewPseudonymizer_KeyLength(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		wantErr bool
	}{
		{"empty", nil, true},
		{"one byte", []byte("k"), false},
		{"max", []byte(strings.Repeat("k", MaxKeySize)), false},
		{"too long", []byte(strings.Repeat("k", MaxKeySize+1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPseudonymizer(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

// Псевдоним совпадает с ключевым BLAKE2b-256 и стабилен между вызовами.
func TestPseudonym_MatchesKeyedBlake2b(t *testing.T) {
	key := []byte("site-secret")
	p, err := NewPseudonymizer(key)
	require.NoError(t, err)

	h, err := blake2b.New256(key)
	require.NoError(t, err)
	h.Write([]byte("PAT-001"))
	want := hex.EncodeToString(h.Sum(nil))

	assert.Equal(t, want[:16], p.Pseudonym("PAT-001", 16))
	assert.Equal(t, p.Pseudonym("PAT-001", 16), p.Pseudonym("PAT-001", 16))
	assert.Equal(t, want, p.Pseudonym("PAT-001", 0))
	assert.Equal(t, want, p.Pseudonym("PAT-001", 1000))
}

func TestPseudonym_KeyAndValueMatter(t *testing.T) {
	a, _ := NewPseudonymizer([]byte("a"))
	b, _ := NewPseudonymizer([]byte("b"))

	assert.NotEqual(t, a.Pseudonym("PAT-001", 32), b.Pseudonym("PAT-001", 32))
	assert.NotEqual(t, a.Pseudonym("PAT-001", 32), a.Pseudonym("PAT-002", 32))
}

func TestNewPseudonymizer_CopiesKey(t *testing.T) {
	key := []byte("mutable")
	p, err := NewPseudonymizer(key)
	require.NoError(t, err)
	before := p.Pseudonym("x", 32)

	key[0] = 'X'

	assert.Equal(t, before, p.Pseudonym("x", 32))
}
