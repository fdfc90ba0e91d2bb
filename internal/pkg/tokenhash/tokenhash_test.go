package tokenhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	h := Hash("some-refresh-token")

	assert.Len(t, h, 64)
	assert.Equal(t, h, Hash("some-refresh-token"))
	assert.NotEqual(t, h, Hash("another-refresh-token"))
	assert.NotEqual(t, "some-refresh-token", h)
}
