// Package jsonx holds the JSON codec shared by the request pipeline.
//
// It is a frozen sonic configuration with sorted map keys and UseNumber, so
// numbers survive a decode/encode round trip verbatim and encoded objects are
// deterministic.
package jsonx

import (
	"unicode/utf8"

	"github.com/bytedance/sonic"
)

const indent = "  "

var api = sonic.Config{
	SortMapKeys:    true,
	UseNumber:      true,
	CopyString:     true,
	ValidateString: true,
}.Froze()

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// Marshal encodes v without indentation.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// MarshalIndent encodes v with two-space indentation.
func MarshalIndent(v any) ([]byte, error) {
	return api.MarshalIndent(v, "", indent)
}

// Pretty renders body for humans. JSON is re-indented, anything else is
// returned as text when it is valid UTF-8 and as "" otherwise.
func Pretty(body []byte) string {
	var v any
	if err := api.Unmarshal(body, &v); err == nil {
		out, err := api.MarshalIndent(v, "", indent)
		if err != nil {
			return ""
		}
		return string(out)
	}
	if utf8.Valid(body) {
		return string(body)
	}
	return ""
}
