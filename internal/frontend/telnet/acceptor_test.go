package telnet

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/nyanko/internal/config"
)

// echoHandler is a test SessionHandler that echoes lines back to the client.
type echoHandler struct {
	sessionCount atomic.Int32
}

func (h *echoHandler) HandleSession(_ context.Context, conn *Conn) error {
	h.sessionCount.Add(1)
	for {
		line, err := conn.ReadLine()
		if err != nil {
			return err
		}
		if line == "quit" {
			_ = conn.WriteLine("bye")
			return nil
		}
		_ = conn.WriteLine("echo: " + line)
	}
}

func testTelnetConfig(maxSessions int) config.TelnetConfig {
	return config.TelnetConfig{
		Host:         "127.0.0.1",
		Port:         0, // random port
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		MaxSessions:  maxSessions,
	}
}

// startAcceptor runs acc in the background and waits until it is listening.
func startAcceptor(t *testing.T, acc *Acceptor) <-chan error {
	t.Helper()
	errCh := make(chan error, 1)
	go func() {
		errCh <- acc.ListenAndServe()
	}()

	deadline := time.After(2 * time.Second)
	for {
		if acc.IsRunning() && acc.Addr() != "" {
			return errCh
		}
		select {
		case <-deadline:
			t.Fatal("acceptor did not start in time")
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// dial connects to addr and drains the initial negotiation bytes.
func dial(t *testing.T, addr string) net.Conn {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	buf := make([]byte, 256)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _ = conn.Read(buf)
	return conn
}

func TestAcceptorStartAndStop(t *testing.T) {
	handler := &echoHandler{}
	acc := NewAcceptor(testTelnetConfig(0), handler, zaptest.NewLogger(t))
	errCh := startAcceptor(t, acc)

	conn := dial(t, acc.Addr())
	buf := make([]byte, 256)

	_, err := conn.Write([]byte("hello\r\n"))
	require.NoError(t, err)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "echo: hello")

	_, _ = conn.Write([]byte("quit\r\n"))
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _ = conn.Read(buf)
	assert.Contains(t, string(buf[:n]), "bye")

	conn.Close()
	acc.Stop()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("acceptor did not stop in time")
	}

	assert.Equal(t, int32(1), handler.sessionCount.Load())
	assert.False(t, acc.IsRunning())
}

func TestAcceptorMultipleClients(t *testing.T) {
	handler := &echoHandler{}
	acc := NewAcceptor(testTelnetConfig(0), handler, zaptest.NewLogger(t))
	startAcceptor(t, acc)

	const numClients = 3
	conns := make([]net.Conn, numClients)
	for i := 0; i < numClients; i++ {
		conns[i] = dial(t, acc.Addr())
	}

	for _, conn := range conns {
		_, _ = conn.Write([]byte("quit\r\n"))
		buf := make([]byte, 256)
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, _ = conn.Read(buf)
		conn.Close()
	}

	// Give sessions time to complete
	time.Sleep(100 * time.Millisecond)

	acc.Stop()
	assert.Equal(t, int32(numClients), handler.sessionCount.Load())
}

func TestAcceptorRejectsBeyondMaxSessions(t *testing.T) {
	handler := &echoHandler{}
	acc := NewAcceptor(testTelnetConfig(1), handler, zaptest.NewLogger(t))
	startAcceptor(t, acc)
	defer acc.Stop()

	first := dial(t, acc.Addr())
	defer first.Close()

	// Make sure the first session is being served before the second dials.
	_, err := first.Write([]byte("ping\r\n"))
	require.NoError(t, err)
	buf := make([]byte, 256)
	_ = first.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := first.Read(buf)
	require.NoError(t, err)
	require.Contains(t, string(buf[:n]), "echo: ping")
	assert.Equal(t, 1, acc.ActiveSessions())

	second, err := net.DialTimeout("tcp", acc.Addr(), 2*time.Second)
	require.NoError(t, err)
	defer second.Close()

	var got []byte
	_ = second.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		n, err := second.Read(buf)
		got = append(got, buf[:n]...)
		if err != nil {
			break
		}
	}
	assert.Contains(t, string(got), ServerFullMessage)
	assert.Equal(t, int32(1), handler.sessionCount.Load())

	_, _ = first.Write([]byte("quit\r\n"))
}
