package movement

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movistock/internal/core/apperror"
	"movistock/internal/core/id"
)

func TestManager_OpenGetClose(t *testing.T) {
	m := NewManager(0)

	sess := m.Open(NewForm(time.Now()))
	assert.Equal(t, 1, m.Count())

	got, err := m.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	require.NoError(t, m.Close(sess.ID))
	assert.Equal(t, 0, m.Count())

	_, err = m.Get(sess.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, apperror.IsNotFound(m.Close(sess.ID)))
}

func TestManager_GetUnknownSession(t *testing.T) {
	m := NewManager(0)

	_, err := m.Get(id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestSession_DoSerializesMutations(t *testing.T) {
	m := NewManager(0)
	sess := m.Open(NewForm(time.Now()))

	const workers = 16
	const perWorker = 25

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_ = sess.Do(func(f *MovementForm) error {
					f.AddItem()
					return nil
				})
			}
		}()
	}
	wg.Wait()

	err := sess.Do(func(f *MovementForm) error {
		assert.Equal(t, 1+workers*perWorker, f.Items.Count())
		items := f.Items.Items()
		for i, item := range items {
			assert.Equal(t, i+1, item.Position)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestManager_SweepClosesIdleSessions(t *testing.T) {
	m := NewManager(time.Minute)

	idle := m.Open(NewForm(time.Now()))
	idle.mu.Lock()
	idle.lastSeen = time.Now().Add(-2 * time.Minute)
	idle.mu.Unlock()

	active := m.Open(NewForm(time.Now()))

	closed := m.sweep(time.Now())

	assert.Equal(t, 1, closed)
	assert.Equal(t, 1, m.Count())
	_, err := m.Get(idle.ID)
	assert.True(t, apperror.IsNotFound(err))
	_, err = m.Get(active.ID)
	assert.NoError(t, err)
}
