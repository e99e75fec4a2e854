package op

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamesComplete(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for tag := Tag(0); tag < NumTags; tag++ {
		name := tag.String()
		assert.NotEmpty(t, name, "tag %d has no name", tag)
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true

		parsed, ok := Parse(name)
		assert.True(t, ok)
		assert.Equal(t, tag, parsed)
	}
	assert.Equal(t, "invalid", NumTags.String())
}

func TestClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  Tag
		want Class
	}{
		{Add, ClassBinary},
		{AShr, ClassBinary},
		{Join, ClassBinary},
		{Eq, ClassCompare},
		{Uge, ClassCompare},
		{ZFit, ClassCast},
		{FAdd, ClassFloat},
		{Concat, ClassMemory},
		{Free, ClassMemory},
		{Lift, ClassSpecial},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tag.Class(), tt.tag.String())
	}
}

func TestSwapNegate(t *testing.T) {
	t.Parallel()

	for tag := Eq; tag <= Uge; tag++ {
		assert.Equal(t, tag, tag.Swap().Swap(), tag.String())
		assert.Equal(t, tag, tag.Negate().Negate(), tag.String())
	}
	assert.Equal(t, Sgt, Slt.Swap())
	assert.Equal(t, Sge, Slt.Negate())
	assert.Equal(t, Sle, Ule.Signed())
}
