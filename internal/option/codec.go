package option

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Source record field names mapped onto Option identity fields.
const (
	FieldID     = "id"
	FieldSymbol = "symbol"
)

var (
	// ErrInvalidJSON is returned when the payload is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrNotArray is returned when the payload is not a JSON array.
	ErrNotArray = errors.New("option list is not a JSON array")

	// ErrInvalidOption is returned when an element cannot be mapped to an Option.
	ErrInvalidOption = errors.New("invalid option")
)

// DecodeCoinList parses a JSON array of {id, symbol, ...} records.
// Each record maps to Option{Label: id, Value: symbol} and every other
// field becomes an extra attribute. The payload is rejected as a whole if
// any element is malformed, so callers never see a partial list.
func DecodeCoinList(data []byte) ([]Option, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, ErrNotArray
	}

	opts := make([]Option, 0, int(root.Get("#").Int()))
	var decodeErr error
	root.ForEach(func(idx, elem gjson.Result) bool {
		opt, err := decodeRecord(elem)
		if err != nil {
			decodeErr = fmt.Errorf("element %d: %w", len(opts), err)
			return false
		}
		opts = append(opts, opt)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return opts, nil
}

func decodeRecord(elem gjson.Result) (Option, error) {
	if !elem.IsObject() {
		return Option{}, fmt.Errorf("%w: not an object", ErrInvalidOption)
	}

	id := elem.Get(escapePath(FieldID))
	if id.Type != gjson.String {
		return Option{}, fmt.Errorf("%w: missing string %q", ErrInvalidOption, FieldID)
	}
	symbol := elem.Get(escapePath(FieldSymbol))
	if symbol.Type != gjson.String {
		return Option{}, fmt.Errorf("%w: missing string %q", ErrInvalidOption, FieldSymbol)
	}

	opt := Option{Label: id.String(), Value: symbol.String()}
	elem.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if name == FieldID || name == FieldSymbol {
			return true
		}
		if opt.extra == nil {
			opt.extra = make(map[string]any)
		}
		opt.extra[name] = value.Value()
		return true
	})
	return opt, nil
}

// EncodeList renders options back into the source record shape.
// Extras are written in sorted key order.
func EncodeList(opts []Option) ([]byte, error) {
	out := []byte("[]")
	for i, o := range opts {
		record, err := Encode(o)
		if err != nil {
			return nil, fmt.Errorf("encoding option %d: %w", i, err)
		}
		out, err = sjson.SetRawBytes(out, "-1", record)
		if err != nil {
			return nil, fmt.Errorf("appending option %d: %w", i, err)
		}
	}
	return out, nil
}

// Encode renders a single option as a JSON object.
func Encode(o Option) ([]byte, error) {
	record := []byte("{}")
	var err error
	if record, err = sjson.SetBytes(record, FieldID, o.Label); err != nil {
		return nil, err
	}
	if record, err = sjson.SetBytes(record, FieldSymbol, o.Value); err != nil {
		return nil, err
	}
	for _, key := range o.ExtraKeys() {
		if key == FieldID || key == FieldSymbol {
			continue
		}
		if record, err = appendField(record, key, o.extra[key]); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
	}
	return record, nil
}

// appendField adds "key": value to the JSON object record. The key is
// written as a literal member name, not a path, so empty keys and keys
// containing path syntax come back unchanged from DecodeCoinList.
func appendField(record []byte, key string, value any) ([]byte, error) {
	scratch, err := sjson.SetBytes([]byte(`{}`), "k", key)
	if err != nil {
		return nil, err
	}
	if scratch, err = sjson.SetBytes(scratch, "v", value); err != nil {
		return nil, err
	}
	name := gjson.GetBytes(scratch, "k").Raw
	raw := gjson.GetBytes(scratch, "v").Raw

	body := bytes.TrimRight(bytes.TrimSpace(record), "}")
	out := make([]byte, 0, len(body)+len(name)+len(raw)+3)
	out = append(out, body...)
	if !bytes.HasSuffix(bytes.TrimSpace(body), []byte("{")) {
		out = append(out, ',')
	}
	out = append(out, name...)
	out = append(out, ':')
	out = append(out, raw...)
	return append(out, '}'), nil
}

// escapePath escapes the characters gjson and sjson treat as path syntax.
func escapePath(key string) string {
	if !strings.ContainsAny(key, `.*?|#@\!:`) {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
