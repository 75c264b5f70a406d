// Package jsonl is a platform adapter speaking JSON lines: inbound events are
// read one per line, outbound commands are written one per line.
package jsonl

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain/event"
	"afk-sentinel/errors"
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

const maxLineSize = 1024 * 1024

var _ contract.EventSource = (*Source)(nil)

// Envelope is one inbound line. Exactly one payload matches Type.
// At is an offset from the start of a scenario, only the replay tool reads it.
type Envelope struct {
	Type     string                 `json:"type"`
	At       string                 `json:"at,omitempty"`
	Presence *event.PresenceChanged `json:"presence,omitempty"`
	Message  *event.MessageReceived `json:"message,omitempty"`
	Command  *event.CommandInvoked  `json:"command,omitempty"`
}

// Offset parses At. A missing offset is zero.
func (e Envelope) Offset() (time.Duration, error) {
	if e.At == "" {
		return 0, nil
	}
	offset, err := time.ParseDuration(e.At)
	if err != nil {
		return 0, fmt.Errorf("%w: at %q: %v", errors.ErrInvalidPayload, e.At, err)
	}
	return offset, nil
}

// Event converts the envelope, stamping it with createdAt.
func (e Envelope) Event(createdAt time.Time) (event.Event, error) {
	var evt event.Event
	switch strings.ToLower(e.Type) {
	case "presence", strings.ToLower(string(event.PresenceChangedType)):
		if e.Presence == nil {
			return evt, fmt.Errorf("%w: missing presence payload", errors.ErrInvalidPayload)
		}
		evt = event.NewPresenceChanged(*e.Presence)
	case "message", strings.ToLower(string(event.MessageReceivedType)):
		if e.Message == nil {
			return evt, fmt.Errorf("%w: missing message payload", errors.ErrInvalidPayload)
		}
		evt = event.NewMessageReceived(*e.Message)
	case "command", strings.ToLower(string(event.CommandInvokedType)):
		if e.Command == nil {
			return evt, fmt.Errorf("%w: missing command payload", errors.ErrInvalidPayload)
		}
		evt = event.NewCommandInvoked(*e.Command)
	default:
		return evt, fmt.Errorf("%w: %q", errors.ErrUnknownEvent, e.Type)
	}
	evt.CreatedAt = createdAt
	return evt, nil
}

// Decode parses one line into an envelope.
func Decode(line []byte) (Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal(line, &envelope); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return envelope, nil
}

// Source reads events from a stream of JSON lines. Blank lines and lines
// starting with '#' are skipped, so are lines that fail to decode and lines
// longer than maxLineSize.
type Source struct {
	log     *slog.Logger
	reader  *bufio.Reader
	now     func() time.Time
	line    int
	maxSize int
}

func NewSource(log *slog.Logger, r io.Reader, clock contract.Clock) *Source {
	return &Source{log: log, reader: bufio.NewReaderSize(r, 64*1024), now: clock.Now, maxSize: maxLineSize}
}

func (s *Source) Next(ctx context.Context) (event.Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return event.Event{}, err
		}
		envelope, ok, err := s.nextEnvelope()
		if err != nil || !ok {
			return event.Event{}, err
		}
		evt, err := envelope.Event(s.now())
		if err != nil {
			s.log.Warn("Skipping invalid event", "line", s.line, "error", err)
			continue
		}
		return evt, nil
	}
}

// NextEnvelope returns the next decodable envelope, io.EOF at the end.
func (s *Source) NextEnvelope() (Envelope, error) {
	envelope, ok, err := s.nextEnvelope()
	if err != nil {
		return Envelope{}, err
	}
	if !ok {
		return Envelope{}, io.EOF
	}
	return envelope, nil
}

func (s *Source) nextEnvelope() (Envelope, bool, error) {
	for {
		raw, tooLong, err := s.readLine()
		if err != nil {
			return Envelope{}, false, err
		}
		s.line++
		if tooLong {
			s.log.Warn("Skipping oversized line", "line", s.line, "max_bytes", s.maxSize)
			continue
		}
		line := strings.TrimSpace(string(raw))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		envelope, err := Decode([]byte(line))
		if err != nil {
			s.log.Warn("Skipping invalid line", "line", s.line, "error", err)
			continue
		}
		return envelope, true, nil
	}
}

// readLine returns the next line without its terminator. The content of a
// line longer than maxSize is discarded up to its end and tooLong is set.
// io.EOF is returned only once no partial line is left.
func (s *Source) readLine() (line []byte, tooLong bool, err error) {
	read := false
	for {
		chunk, isPrefix, readErr := s.reader.ReadLine()
		if readErr != nil {
			if readErr == io.EOF && read {
				return line, tooLong, nil
			}
			return nil, false, readErr
		}
		read = true
		if !tooLong {
			if len(line)+len(chunk) > s.maxSize {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

// Line is the number of the last line read.
func (s *Source) Line() int {
	return s.line
}
