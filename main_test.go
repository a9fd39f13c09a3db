package main

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFailsWhenPortIsTaken(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	port := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)

	code := run([]string{"--no-install", "--host", "127.0.0.1", "--port", port})
	assert.Equal(t, 1, code)
}

func TestRunExitCodes(t *testing.T) {
	assert.Equal(t, 0, run([]string{"--help"}))
	assert.Equal(t, 2, run([]string{"--bogus"}))
	// rejected before any browser is needed
	assert.Equal(t, 1, run([]string{"--no-install", "resolve", "naruto", "one", "1"}))
}
