package mobile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartStopStart(t *testing.T) {
	t.Cleanup(StopServer)

	StartServer("", "0")
	require.True(t, running())

	StopServer()
	require.False(t, running())

	// 暂停后马上恢复：新的服务不能被旧 goroutine 清掉
	StartServer("", "0")
	time.Sleep(200 * time.Millisecond)
	require.True(t, running())

	StopServer()
	require.False(t, running())
	StopServer()
}

func TestStartServerListenFailureClearsState(t *testing.T) {
	t.Cleanup(StopServer)

	StartServer("", "not-a-port")
	require.Eventually(t, func() bool { return !running() }, 2*time.Second, 10*time.Millisecond)
}
