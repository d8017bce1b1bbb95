package network

import (
	"github.com/GriffinCanCode/pnetwork/internal/envelope"
	"github.com/GriffinCanCode/pnetwork/internal/jsonx"
)

type decodeMode int

const (
	decodeModel decodeMode = iota
	decodeNone
)

// decode fills resp from body. Raw is set before any decoding so it survives
// a parse failure.
func decode[T any](resp *Response[T], body []byte, mode decodeMode) {
	if body == nil {
		resp.Error = ErrNoContent
		return
	}

	resp.Raw = jsonx.Pretty(body)

	if mode == decodeNone {
		return
	}

	data := body
	located, ok := envelope.Extract(body, mapKeys[T]())
	if ok {
		data = located.Data
	}

	if located.IsArray {
		var list []T
		if err := jsonx.Unmarshal(data, &list); err != nil {
			resp.Error = &Error{Kind: KindJSONParsing, Cause: err}
			return
		}
		resp.List = list
		return
	}

	var obj T
	if err := jsonx.Unmarshal(data, &obj); err != nil {
		resp.Error = &Error{Kind: KindJSONParsing, Cause: err}
		return
	}
	resp.Object = &obj
}
