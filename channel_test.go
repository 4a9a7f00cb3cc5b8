package channel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	channel "github.com/Yousef-Rabiah/concurrency-in-go"
)

func TestTypedSendReceiveFIFO(t *testing.T) {
	c := channel.New[string](2)
	require.Equal(t, channel.Success, c.Send("first"))
	require.Equal(t, channel.Success, c.Send("second"))

	v, status := c.Receive()
	require.Equal(t, channel.Success, status)
	require.Equal(t, "first", v)

	v, status = c.Receive()
	require.Equal(t, channel.Success, status)
	require.Equal(t, "second", v)
}

func TestTypedPingPong(t *testing.T) {
	c := channel.New[int](1)
	var g errgroup.Group
	g.Go(func() error {
		if status := c.Send(7); status != channel.Success {
			return errStatus(status)
		}
		return nil
	})
	var got int
	g.Go(func() error {
		v, status := c.Receive()
		got = v
		if status != channel.Success {
			return errStatus(status)
		}
		return nil
	})
	require.NoError(t, g.Wait())
	require.Equal(t, 7, got)
}

func TestTypedNonBlockingFull(t *testing.T) {
	c := channel.New[int](2)
	require.Equal(t, channel.Success, c.TrySend(1))
	require.Equal(t, channel.Success, c.TrySend(2))
	require.Equal(t, channel.ChannelFull, c.TrySend(3))

	v, status := c.Receive()
	require.Equal(t, channel.Success, status)
	require.Equal(t, 1, v)
	require.Equal(t, channel.Success, c.TrySend(3))
}

func TestTypedCloseWakesBlockedReceiver(t *testing.T) {
	c := channel.New[int](4)
	done := make(chan channel.Status, 1)
	go func() {
		_, status := c.Receive()
		done <- status
	}()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, channel.Success, c.Close())

	select {
	case status := <-done:
		require.Equal(t, channel.Closed, status)
	case <-time.After(time.Second):
		t.Fatal("close did not wake blocked receiver")
	}
}

func TestTypedDestroyLifecycle(t *testing.T) {
	c := channel.New[int](1)
	require.Equal(t, channel.DestroyError, c.Destroy())
	require.Equal(t, channel.Success, c.Close())
	require.Equal(t, channel.Success, c.Destroy())
}

type statusErr channel.Status

func (e statusErr) Error() string { return channel.Status(e).String() }

func errStatus(s channel.Status) error { return statusErr(s) }
