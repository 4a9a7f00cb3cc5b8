package chancore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWaiterListInsertFindRemove(t *testing.T) {
	var w waiterList
	require.Equal(t, 0, w.count())

	s1 := newSelSync()
	s2 := newSelSync()

	n1 := w.insert(s1)
	w.insert(s2)
	require.Equal(t, 2, w.count())

	found := w.find(s1)
	require.NotNil(t, found)
	require.Equal(t, n1, found)

	w.remove(found)
	require.Equal(t, 1, w.count())
	require.Nil(t, w.find(s1))
	require.NotNil(t, w.find(s2))
}

func TestWaiterListFindByIdentityNotValue(t *testing.T) {
	var w waiterList
	a := newSelSync()
	b := newSelSync() // distinct identity, same zero-value shape as a
	w.insert(a)
	require.Nil(t, w.find(b))
	require.NotNil(t, w.find(a))
}

func TestWaiterListWakeAllSignalsEveryWaiter(t *testing.T) {
	var w waiterList
	s1 := newSelSync()
	s2 := newSelSync()
	w.insert(s1)
	w.insert(s2)

	woke := make(chan int, 2)
	locked := make(chan struct{}, 2)
	for i, s := range []*selSync{s1, s2} {
		i, s := i, s
		go func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			locked <- struct{}{}
			s.cond.Wait()
			woke <- i
		}()
	}
	<-locked
	<-locked
	// Each goroutine's only statement between signaling "locked" and
	// calling cond.Wait() is that call itself, so wakeAll's s.wake() —
	// which must itself acquire s.mu before Signal()-ing — cannot race
	// ahead of it: wake() simply blocks on the lock until Wait()
	// atomically releases it.
	w.wakeAll()

	got := map[int]bool{}
	got[<-woke] = true
	got[<-woke] = true
	require.True(t, got[0])
	require.True(t, got[1])
}
