package speech

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/joyal-jij0/pragati/internal/message"
)

var (
	ErrRecording    = errors.New("recorder already recording")
	ErrNotRecording = errors.New("recorder not recording")
)

// Recorder accumulates an audio input stream into a single AudioPayload.
//
// StartRecording acquires the stream and drains it in the background; Stop
// releases the stream, waits for the drain to finish and returns the audio.
// The stream is always closed by Stop, including after a read error.
type Recorder struct {
	mu     sync.Mutex
	stream io.ReadCloser
	codec  string
	done   chan struct{}

	stopping atomic.Bool
	buf      bytes.Buffer
	readErr  error
}

// NewRecorder returns an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// StartRecording opens the input stream and starts collecting chunks tagged
// with codec (DefaultCodec when empty).
func (r *Recorder) StartRecording(open func() (io.ReadCloser, error), codec string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stream != nil {
		return ErrRecording
	}
	stream, err := open()
	if err != nil {
		return fmt.Errorf("opening audio input: %w", err)
	}
	if codec == "" {
		codec = DefaultCodec
	}

	r.stream = stream
	r.codec = codec
	r.done = make(chan struct{})
	r.buf.Reset()
	r.readErr = nil
	r.stopping.Store(false)

	go r.drain(stream, r.done)
	return nil
}

func (r *Recorder) drain(stream io.Reader, done chan struct{}) {
	defer close(done)
	chunk := make([]byte, 32*1024)
	for {
		n, err := stream.Read(chunk)
		if n > 0 {
			r.buf.Write(chunk[:n])
		}
		if err == nil {
			continue
		}
		// Errors caused by Stop closing the stream are not read failures.
		if !errors.Is(err, io.EOF) && !r.stopping.Load() {
			r.readErr = err
		}
		return
	}
}

// Recording reports whether a stream is currently held.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stream != nil
}

// Done is closed when the input stream ends on its own or is released by
// Stop. It is nil while idle.
func (r *Recorder) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stream == nil {
		return nil
	}
	return r.done
}

// Stop releases the input stream and returns everything recorded so far as
// one payload. A read error that ended recording early is returned together
// with the audio collected before it.
func (r *Recorder) Stop() (message.AudioPayload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stream == nil {
		return message.AudioPayload{}, ErrNotRecording
	}

	r.stopping.Store(true)
	closeErr := r.stream.Close()
	<-r.done
	r.stream = nil

	payload := message.AudioPayload{
		Data:        bytes.Clone(r.buf.Bytes()),
		ContentType: r.codec,
	}
	slog.Debug("recording stopped", "codec", r.codec, "bytes", len(payload.Data))

	if r.readErr != nil {
		return payload, fmt.Errorf("reading audio input: %w", r.readErr)
	}
	if closeErr != nil {
		return payload, fmt.Errorf("closing audio input: %w", closeErr)
	}
	return payload, nil
}
