package testutil

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnWithDeadline_ReadTimesOut(t *testing.T) {
	client, _ := PipeConn(t)
	conn := NewConnWithDeadline(client, 20*time.Millisecond)

	_, err := conn.Read(make([]byte, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrDeadlineExceeded)
}

func TestConnWithDeadline_PassesData(t *testing.T) {
	client, server := PipeConn(t)
	conn := NewConnWithDeadline(server, time.Second)

	go func() {
		_, _ = client.Write([]byte("ping"))
	}()

	buf := make([]byte, 4)
	_, err := io.ReadFull(conn, buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf))

	// запись без читателя упирается в дедлайн
	slow := NewConnWithDeadline(server, 20*time.Millisecond)
	_, err = slow.Write([]byte("pong"))
	assert.ErrorIs(t, err, os.ErrDeadlineExceeded)
}
