package backends

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Backend = (*Memory)(nil)

func TestMemoryCapturesLines(t *testing.T) {
	m := NewMemory()
	_, err := m.Write([]byte("[INFO] one\n"))
	require.NoError(t, err)
	_, err = m.Write([]byte("[WARNING] two\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"[INFO] one", "[WARNING] two"}, m.Lines())
	assert.Equal(t, "[INFO] one\n[WARNING] two\n", string(m.Contents()))
}

func TestMemoryEmpty(t *testing.T) {
	m := NewMemory()
	assert.Nil(t, m.Lines())
	assert.Empty(t, m.Contents())
	assert.NoError(t, m.Flush())
	assert.NoError(t, m.Close())
}

func TestMemoryReset(t *testing.T) {
	m := NewMemory()
	_, _ = m.Write([]byte("gone\n"))
	m.Reset()
	assert.Nil(t, m.Lines())
}

func TestMemoryConcurrentReads(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_, _ = m.Write([]byte("line\n"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = m.Lines()
		}
	}()
	wg.Wait()
	assert.Len(t, m.Lines(), 500)
}
