// Package streaming decodes Server-Sent-Events byte streams into typed
// StreamEvents.
//
// The decoder is incremental: chunks may split frames anywhere, including
// mid-line or mid-UTF8-codepoint, and the decoded events come out identical
// regardless of how the bytes were chunked. A Stream is single-use; build a
// new one per request.
package streaming

import (
	"bytes"
	"io"

	"github.com/rs/zerolog"

	"github.com/metadata-ai/metadata-ai-go/pkg/types"
)

// frameDelim separates SSE frames.
var frameDelim = []byte("\n\n")

const readChunkSize = 4096

// Stream lazily decodes StreamEvents from a byte stream. Use it like a
// database row iterator:
//
//	stream, err := agent.Stream(ctx, "...")
//	defer stream.Close()
//	for stream.Next() {
//		ev := stream.Event()
//		...
//	}
//	if err := stream.Err(); err != nil { ... }
type Stream struct {
	r       io.ReadCloser
	logger  zerolog.Logger
	buf     []byte
	pending []types.StreamEvent
	cur     types.StreamEvent
	done    bool
	err     error
}

// New wraps r in a Stream. The caller owns closing the stream.
func New(r io.ReadCloser) *Stream {
	return NewWithLogger(r, nil)
}

// NewWithLogger is New with debug logging attached.
func NewWithLogger(r io.ReadCloser, logger *zerolog.Logger) *Stream {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Stream{r: r, logger: l}
}

// Next advances to the next event. It returns false when the stream is
// exhausted or reading failed; check Err afterwards.
func (s *Stream) Next() bool {
	for {
		if len(s.pending) > 0 {
			s.cur = s.pending[0]
			s.pending = s.pending[1:]
			return true
		}
		if s.done {
			return false
		}

		chunk := make([]byte, readChunkSize)
		n, err := s.r.Read(chunk)
		if n > 0 {
			s.buf = append(s.buf, chunk[:n]...)
			s.extractFrames()
		}
		if err != nil {
			s.done = true
			if err != io.EOF {
				s.err = err
				return false
			}
			// A stream that omits the final blank line must not drop its
			// last event.
			s.flushTrailing()
		}
	}
}

// Event returns the event produced by the last successful Next call.
func (s *Stream) Event() types.StreamEvent { return s.cur }

// Err returns the first read error encountered, if any. Malformed frames
// are never errors: they degrade to content events or are dropped.
func (s *Stream) Err() error { return s.err }

// Close releases the underlying response body. Idempotent.
func (s *Stream) Close() error {
	s.done = true
	if s.r == nil {
		return nil
	}
	r := s.r
	s.r = nil
	return r.Close()
}

// extractFrames moves every complete frame out of the buffer, leaving a
// trailing partial frame (if any) for the next chunk.
func (s *Stream) extractFrames() {
	for {
		i := bytes.Index(s.buf, frameDelim)
		if i < 0 {
			return
		}
		frame := string(s.buf[:i])
		s.buf = s.buf[i+len(frameDelim):]
		if ev, ok := parseFrame(frame); ok {
			s.logger.Debug().Str("type", string(ev.Type)).Msg("stream event")
			s.pending = append(s.pending, ev)
		}
	}
}

func (s *Stream) flushTrailing() {
	if len(bytes.TrimSpace(s.buf)) == 0 {
		return
	}
	frame := string(s.buf)
	s.buf = nil
	if ev, ok := parseFrame(frame); ok {
		s.logger.Debug().Str("type", string(ev.Type)).Msg("trailing stream event")
		s.pending = append(s.pending, ev)
	}
}
