package main

import (
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/multipick/internal/option"
)

// encodeResult renders {"selected": [...], "remaining": [...]} followed by
// a newline. remaining is omitted when nil.
func encodeResult(selected, remaining []option.Option, indent bool) ([]byte, error) {
	out := []byte(`{}`)

	list, err := option.EncodeList(selected)
	if err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, "selected", list); err != nil {
		return nil, err
	}

	if remaining != nil {
		if list, err = option.EncodeList(remaining); err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "remaining", list); err != nil {
			return nil, err
		}
	}

	if indent {
		return pretty.Pretty(out), nil
	}
	return append(out, '\n'), nil
}
