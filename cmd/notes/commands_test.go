package main

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes"
)

func TestRootCommandRegistersServe(t *testing.T) {
	root := newRootCommand()

	serveCmd, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serveCmd.Name())

	flag := serveCmd.Flags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
	assert.Empty(t, flag.DefValue)
}

func TestServeRejectsArguments(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"serve", "extra"})

	assert.Error(t, root.Execute())
}

func TestServeFailsOnMissingConfigFile(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"serve", "--config", t.TempDir() + "/absent.yaml"})

	err := root.Execute()
	require.Error(t, err)
	assert.ErrorContains(t, err, ErrLoadConfig)
}

func TestServeReturnsListenError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })

	t.Setenv("NOTES_HTTP_HOST", "127.0.0.1")
	t.Setenv("NOTES_HTTP_PORT", strconv.Itoa(busy.Addr().(*net.TCPAddr).Port))
	t.Setenv("NOTES_GRACEFUL_SHUTDOWN_TIMEOUT", "1")

	err = serve(context.Background(), "")
	require.Error(t, err)
	assert.ErrorContains(t, err, notes.ErrStartHTTP)
}

func TestBootstrapLogger(t *testing.T) {
	t.Setenv(EnvLoggerMode, "DEVELOPMENT")
	t.Setenv(EnvLoggerLevel, "debug")

	log, env, err := bootstrapLogger()
	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.Equal(t, "development", string(env))
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(errors.New(ErrSyncStderr)))
	assert.True(t, isIgnorableSyncError(errors.New("wrapped: "+ErrSyncStdout)))
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
}
