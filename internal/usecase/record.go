package usecase

import (
	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is a flat key/value row that keeps its key order when encoded.
type Record []Field

func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) Keys() []string {
	out := make([]string, 0, len(r))
	for _, f := range r {
		out = append(out, f.Key)
	}
	return out
}

func (r Record) MarshalJSON() ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_ = buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		key, err := sonic.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := sonic.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		_, _ = buf.Write(key)
		_ = buf.WriteByte(':')
		_, _ = buf.Write(value)
	}
	_ = buf.WriteByte('}')

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}
