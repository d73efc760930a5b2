package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	assert := assert.New(t)

	s := New[string]()
	assert.Equal(0, s.Len(), "New set should be empty")

	s.Add("banana")
	s.Add("apple")
	s.Add("apple") // duplicate, should not affect size

	assert.Equal(2, s.Len())
	assert.True(s.Contains("apple"))
	assert.False(s.Contains("orange"))
	assert.ElementsMatch([]string{"apple", "banana"}, s.Values())
	assert.Equal([]string{"apple", "banana"}, Sorted(s))
}

func TestSet_Nil(t *testing.T) {
	assert := assert.New(t)

	var s *Set[string]
	assert.Equal(0, s.Len())
	assert.False(s.Contains("x"))
	assert.Empty(s.Values())
	assert.Empty(Sorted(s))
}
