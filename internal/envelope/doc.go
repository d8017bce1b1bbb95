// Package envelope locates the payload of an API response inside its JSON
// envelope.
//
// A model declares an ordered list of keys. Extract walks those keys from the
// top-level object, descending while the carrier is an object:
//
//	{"data": {"items": [{"id": 1}]}}  +  ["data", "items"]  ->  [{"id": 1}]
//
// Descent is lenient. A missing key leaves the carrier where it is, and once
// the carrier is no longer an object the remaining keys are ignored.
//
// Example Usage:
//
//	res, ok := envelope.Extract(body, []string{"data", "items"})
//	if ok && res.IsArray {
//		// decode res.Data as a slice
//	}
package envelope
