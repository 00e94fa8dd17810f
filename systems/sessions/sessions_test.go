package sessions

import (
	"sync"
	"testing"

	"github.com/fastlab-io/server/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests sessions lifecycle.
func TestSessions(t *testing.T) {
	r := NewSessionsProvider(mocks.FakeNewLogger(nil))

	id1 := r.Open("127.0.0.1:5000")
	id2 := r.Open("127.0.0.1:5001")
	assert.NotEqual(t, id1, id2)
	_, err := uuid.Parse(id1)
	assert.NoError(t, err)

	require.Equal(t, 2, r.Count())
	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, id1, list[0].ID)
	assert.Equal(t, "127.0.0.1:5000", list[0].Remote)

	r.Close(id1)
	assert.Equal(t, 1, r.Count())
	assert.Equal(t, id2, r.List()[0].ID)

	r.Close(id1)
	r.Close(id2)
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.List())
}

// Tests concurrent access.
func TestSessionsConcurrent(t *testing.T) {
	r := NewSessionsProvider(mocks.FakeNewLogger(nil))

	wg := sync.WaitGroup{}
	for ii := 0; ii < 50; ii++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Close(r.Open("remote"))
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, r.Count())
}
