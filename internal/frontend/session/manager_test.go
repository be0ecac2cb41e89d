package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestManager_Open(t *testing.T) {
	m := NewManager()
	sess := m.Open("127.0.0.1:5000")
	_, err := uuid.Parse(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5000", sess.RemoteAddr)
	require.NotNil(t, sess.View)
	assert.Equal(t, 1, m.Count())
}

func TestManager_Close(t *testing.T) {
	m := NewManager()
	sess := m.Open("a")
	require.NoError(t, m.Close(sess.ID))
	assert.Equal(t, 0, m.Count())

	err := m.Close(sess.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestManager_ViewsAreIndependent(t *testing.T) {
	m := NewManager()
	a := m.Open("a")
	b := m.Open("b")
	a.View.Select(superfeline())
	assert.Nil(t, b.View.Selected())
}

func TestManager_OpenStampsConnectedAt(t *testing.T) {
	m := NewManager()
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return at }
	assert.Equal(t, at, m.Open("a").ConnectedAt)
}

func TestManager_ConcurrentOpenClose(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := m.Open(fmt.Sprintf("client-%d", i))
			if i%2 == 0 {
				_ = m.Close(s.ID)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 25, m.Count())
}

func TestPropertyOpenedSessionsHaveUniqueIDs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewManager()
		n := rapid.IntRange(1, 40).Draw(t, "n")
		seen := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			s := m.Open("x")
			if seen[s.ID] {
				t.Fatalf("duplicate session id %q", s.ID)
			}
			seen[s.ID] = true
		}
		if m.Count() != n {
			t.Fatalf("count %d, want %d", m.Count(), n)
		}
	})
}
