package backends

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var _ Backend = Discard{}

func TestDiscard(t *testing.T) {
	d := NewDiscard()
	n, err := d.Write([]byte("gone\n"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.NoError(t, d.Flush())
	assert.NoError(t, d.Close())
}
