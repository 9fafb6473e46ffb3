package hashutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashStrings(t *testing.T) {
	assert.Equal(t, HashStrings("a", "b"), HashStrings("a", "b"))
	assert.NotEqual(t, HashStrings("a", "b"), HashStrings("ab"))
	assert.NotEqual(t, HashStrings("a", "b"), HashStrings("b", "a"))
	assert.Len(t, HashStrings("x"), 64)
}
