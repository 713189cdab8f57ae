package version

import (
	"testing"

	"github.com/glorpus-work/storysync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want Ordering
	}{
		{name: "equal", a: "1.2.3", b: "1.2.3", want: Equal},
		{name: "missing trailing segment is zero", a: "1.2", b: "1.2.0", want: Equal},
		{name: "greater across segment boundary", a: "2.0.0", b: "1.9.9", want: Greater},
		{name: "less", a: "6.9", b: "7.0", want: Less},
		{name: "numeric not lexicographic", a: "10.0", b: "9.0", want: Greater},
		{name: "v prefix stripped", a: "v7.1", b: "7.1", want: Equal},
		{name: "single segment", a: "7", b: "7.0.0", want: Equal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare_Antisymmetric(t *testing.T) {
	pairs := [][2]string{
		{"1.0", "2.0"},
		{"1.2", "1.2.0"},
		{"7.0", "7.1"},
		{"0.0.1", "0.0.1"},
		{"3.10", "3.9"},
	}
	for _, p := range pairs {
		ab, err := Compare(p[0], p[1])
		require.NoError(t, err)
		ba, err := Compare(p[1], p[0])
		require.NoError(t, err)
		assert.Equal(t, -int(ab), int(ba), "compare(%s,%s) must negate compare(%s,%s)", p[0], p[1], p[1], p[0])
	}
}

func TestCompare_Invalid(t *testing.T) {
	_, err := Compare("not-a-version", "1.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrParse)

	_, err = Compare("1.0", "")
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		local  string
		remote string
		want   Classification
	}{
		{name: "no local version means new", local: "", remote: "7.0", want: New},
		{name: "same version", local: "7.0", remote: "7.0", want: Same},
		{name: "same with padding", local: "7.0", remote: "7.0.0", want: Same},
		{name: "upgrade", local: "7.0", remote: "7.1", want: Upgrade},
		{name: "downgrade", local: "7.1", remote: "7.0", want: Downgrade},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.local, tt.remote)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrdering_String(t *testing.T) {
	assert.Equal(t, "less", Less.String())
	assert.Equal(t, "equal", Equal.String())
	assert.Equal(t, "greater", Greater.String())
}
