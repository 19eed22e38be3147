package rhythm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsBadSignatures(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("4/4", 4, 4))

	testCases := []struct {
		id        string
		groups    int
		divisions int
		expected  error
	}{
		{"", 1, 1, ErrInvalidSignature},
		{"0/4", 0, 4, ErrInvalidSignature},
		{"4/0", 4, 0, ErrInvalidSignature},
		{"4/4", 2, 2, ErrDuplicateSignature},
	}

	for _, testCase := range testCases {
		err := r.Register(testCase.id, testCase.groups, testCase.divisions)
		require.Error(t, err)

		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.True(t, errors.Is(err, testCase.expected), "%s: %v", testCase.id, err)
	}
	assert.Equal(t, 1, r.Len())
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("6/8", 2, 3))
	require.NoError(t, r.Register("4/4", 4, 4))
	require.NoError(t, r.Register("3/4", 3, 4))

	ids := []string{}
	for _, s := range r.List() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"6/8", "4/4", "3/4"}, ids)
	assert.Equal(t, 1, r.IndexOf("4/4"))
	assert.Equal(t, -1, r.IndexOf("7/8"))

	def, ok := r.Default("")
	require.True(t, ok)
	assert.Equal(t, "6/8", def.ID)

	def, ok = r.Default("3/4")
	require.True(t, ok)
	assert.Equal(t, "3/4", def.ID)
	assert.Equal(t, 12, def.Total())

	_, ok = NewRegistry().Default("4/4")
	assert.False(t, ok)
}
