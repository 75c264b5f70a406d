package repositories

import (
	"afk-sentinel/domain"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Records are stored with the protobuf wire format, written by hand with
// protowire. Field numbers are part of the on-disk format: never reuse one.
// Zero times are encoded by omitting the field.

type ActivityCodec struct{}

const (
	activityParticipantField protowire.Number = 1
	activityNameField        protowire.Number = 2
	activitySinceField       protowire.Number = 3
	activityLocationField    protowire.Number = 4
)

func (ActivityCodec) Marshal(r domain.ActivityRecord) ([]byte, error) {
	var b []byte
	b = appendString(b, activityParticipantField, string(r.ParticipantID))
	b = appendString(b, activityNameField, r.DisplayName)
	b = appendTime(b, activitySinceField, r.AwaySince)
	if r.OriginalLocationID != nil {
		b = protowire.AppendTag(b, activityLocationField, protowire.BytesType)
		b = protowire.AppendString(b, string(*r.OriginalLocationID))
	}
	return b, nil
}

func (ActivityCodec) Unmarshal(data []byte) (domain.ActivityRecord, error) {
	var r domain.ActivityRecord
	err := consumeFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == activityParticipantField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			r.ParticipantID = domain.ParticipantID(v)
			return n
		case num == activityNameField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			r.DisplayName = v
			return n
		case num == activitySinceField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			r.AwaySince = fromNanos(v)
			return n
		case num == activityLocationField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			location := domain.LocationID(v)
			r.OriginalLocationID = &location
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, b)
		}
	})
	return r, err
}

type RateWindowCodec struct{}

const (
	windowTimestampField protowire.Number = 1
	windowWarnedField    protowire.Number = 2
)

func (RateWindowCodec) Marshal(w domain.RateWindow) ([]byte, error) {
	var b []byte
	for _, t := range w.Timestamps {
		b = protowire.AppendTag(b, windowTimestampField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(t.UnixNano()))
	}
	b = appendTime(b, windowWarnedField, w.LastWarnedAt)
	return b, nil
}

func (RateWindowCodec) Unmarshal(data []byte) (domain.RateWindow, error) {
	var w domain.RateWindow
	err := consumeFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == windowTimestampField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			w.Timestamps = append(w.Timestamps, fromNanos(v))
			return n
		case num == windowWarnedField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			w.LastWarnedAt = fromNanos(v)
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, b)
		}
	})
	return w, err
}

type SuspensionCodec struct{}

const (
	suspensionParticipantField protowire.Number = 1
	suspensionExpiresField     protowire.Number = 2
)

func (SuspensionCodec) Marshal(s domain.SuspensionRecord) ([]byte, error) {
	var b []byte
	b = appendString(b, suspensionParticipantField, string(s.ParticipantID))
	b = appendTime(b, suspensionExpiresField, s.ExpiresAt)
	return b, nil
}

func (SuspensionCodec) Unmarshal(data []byte) (domain.SuspensionRecord, error) {
	var s domain.SuspensionRecord
	err := consumeFields(data, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == suspensionParticipantField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			s.ParticipantID = domain.ParticipantID(v)
			return n
		case num == suspensionExpiresField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			s.ExpiresAt = fromNanos(v)
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, b)
		}
	})
	return s, err
}

// consumeFields walks every field of a message. fn returns the number of
// bytes it consumed, or a negative protowire error code.
func consumeFields(data []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) int) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		m := fn(num, typ, data)
		if m < 0 {
			return protowire.ParseError(m)
		}
		data = data[m:]
	}
	return nil
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(t.UnixNano()))
}

func fromNanos(v uint64) time.Time {
	return time.Unix(0, int64(v)).UTC()
}
