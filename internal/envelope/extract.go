package envelope

import (
	"github.com/GriffinCanCode/pnetwork/internal/jsonx"
)

// Result is the payload located by Extract, re-encoded as JSON.
type Result struct {
	Data    []byte
	IsArray bool
}

// Extract walks keys through body. ok is false when no remapping applies:
// keys is empty, body is not a JSON object, or the located value could not be
// re-encoded. Callers then decode the original body.
func Extract(body []byte, keys []string) (res Result, ok bool) {
	if len(keys) == 0 {
		return Result{}, false
	}

	var root any
	if err := jsonx.Unmarshal(body, &root); err != nil {
		return Result{}, false
	}
	if _, isObject := root.(map[string]any); !isObject {
		return Result{}, false
	}

	value := root
	for _, key := range keys {
		value = descend(value, key)
	}

	data, err := jsonx.Marshal(value)
	if err != nil {
		return Result{}, false
	}

	_, isArray := value.([]any)
	return Result{Data: data, IsArray: isArray}, true
}

// descend steps into key when value is an object holding it.
func descend(value any, key string) any {
	obj, ok := value.(map[string]any)
	if !ok {
		return value
	}
	next, exists := obj[key]
	if !exists {
		return value
	}
	return next
}
