package selection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreOverwrite(t *testing.T) {
	s := New()
	_, _, ok := s.Last()
	assert.False(t, ok)

	s.Set(AlertID, "a-1")
	s.Set(AlertID, "a-2")
	s.Set(TaskID, "")

	v, ok := s.Get(AlertID)
	assert.True(t, ok)
	assert.Equal(t, "a-2", v)
	_, ok = s.Get(TaskID)
	assert.False(t, ok)

	key, val, ok := s.Last()
	assert.True(t, ok)
	assert.Equal(t, AlertID, key)
	assert.Equal(t, "a-2", val)
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	s := New()
	s.Set(TaskID, "t-1")
	s.Set(AlertID, "a-1")
	snap := s.Snapshot()
	snap[TaskID] = "changed"

	v, _ := s.Get(TaskID)
	assert.Equal(t, "t-1", v)
	assert.Equal(t, []string{AlertID, TaskID}, s.Keys())
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set(AlertID, "a-1")
			_, _ = s.Get(AlertID)
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
	v, _ := s.Get(AlertID)
	assert.Equal(t, "a-1", v)
}
