package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{name: "with custom writer", writer: &bytes.Buffer{}},
		{name: "with nil writer", writer: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			require.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestHandleInterrupts_SignalCancels(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	ctx, stop := handler.HandleInterrupts(context.Background())
	defer stop()
	require.Same(t, handler, FromContext(ctx))
	FromContext(ctx).SetNote("Records saved so far are kept.")

	select {
	case <-ctx.Done():
		t.Fatal("context canceled before any signal")
	default:
	}

	handler.sigChan <- syscall.SIGTERM

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled after signal")
	}

	assert.Eventually(t, handler.WasInterrupted, time.Second, 10*time.Millisecond)
	out := output.String()
	assert.Equal(t, 1, strings.Count(out, "Interrupted, shutting down..."))
	assert.Contains(t, out, "Records saved so far are kept.")
}

func TestHandleInterrupts_StopWithoutSignal(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	ctx, stop := handler.HandleInterrupts(context.Background())
	stop()

	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestFromContext_WithoutHandler(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
}

func TestShowInterruptMessage(t *testing.T) {
	tests := []struct {
		name        string
		note        string
		notExpected string
	}{
		{name: "with note", note: "Run the command again to continue."},
		{name: "without note", notExpected: "Run the command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			handler := &InterruptHandler{writer: &output, note: tt.note}

			handler.showInterruptMessage()

			out := output.String()
			assert.Contains(t, out, "Interrupted, shutting down...")
			if tt.note != "" {
				assert.Contains(t, out, tt.note)
			}
			if tt.notExpected != "" {
				assert.NotContains(t, out, tt.notExpected)
			}
		})
	}
}
