package auth

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListener(t *testing.T, state string) *CallbackListener {
	t.Helper()
	l, err := NewCallbackListener(0, DefaultCallbackPath, state, nil)
	require.NoError(t, err)
	t.Cleanup(l.Close)
	return l
}

func TestCallbackListenerSuccess(t *testing.T) {
	l := newTestListener(t, "s3cret")

	resp, err := http.Get(l.RedirectURL() + "?code=ok&state=s3cret")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Authorization received")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	code, err := l.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", code)
}

func TestCallbackListenerBadRequestsDoNotConsume(t *testing.T) {
	l := newTestListener(t, "s3cret")

	// Wrong path: 404, listener stays up.
	resp, err := http.Get("http://" + l.Addr() + "/favicon.ico")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Missing code: 400, listener stays up.
	resp, err = http.Get(l.RedirectURL())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Wrong state: 400, listener stays up.
	resp, err = http.Get(l.RedirectURL() + "?code=ok&state=wrong")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The real redirect still succeeds after all the probes.
	resp, err = http.Get(l.RedirectURL() + "?code=real&state=s3cret")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	code, err := l.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "real", code)
}

func TestCallbackListenerOneShot(t *testing.T) {
	l := newTestListener(t, "s3cret")

	resp, err := http.Get(l.RedirectURL() + "?code=first&state=s3cret")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = l.Wait(ctx)
	require.NoError(t, err)

	// After the single exchange the listener shuts down; subsequent
	// requests either fail to connect or are rejected.
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(l.RedirectURL() + "?code=second&state=s3cret")
		if err != nil {
			break // connection refused: listener is gone
		}
		status := resp.StatusCode
		resp.Body.Close()
		if status == http.StatusConflict {
			break // shutdown still in flight but the code was not consumed twice
		}
		if time.Now().After(deadline) {
			t.Fatalf("listener still serving %d after one-shot exchange", status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCallbackListenerWaitCancelled(t *testing.T) {
	l := newTestListener(t, "s")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCallbackListenerPortBusy(t *testing.T) {
	first := newTestListener(t, "s")

	// Binding the same port again must fail with the typed busy error.
	port := first.ln.Addr().(*net.TCPAddr).Port
	_, err := NewCallbackListener(port, DefaultCallbackPath, "s", nil)
	require.Error(t, err)

	var busy *ListenerBusyError
	assert.ErrorAs(t, err, &busy)
	assert.Equal(t, port, busy.Port)
}
