package console

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaitForKeyReturnsForNonTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	done := make(chan error, 1)
	go func() { done <- WaitForKey(r) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("WaitForKey blocked on a pipe")
	}
}
