package network

import "reflect"

// Response is delivered to the completion of every request.
//
// When Error is nil exactly one of Object or List is set, except for
// RequestRaw which never decodes. When Error is non-nil both are nil. Raw holds
// the pretty-printed body, or the body as text, whenever a body was received.
type Response[T any] struct {
	StatusCode int
	Object     *T
	List       []T
	Error      error
	Raw        string
}

// NoDecode is the model of RequestRaw responses.
type NoDecode struct{}

// Mapper is implemented by models whose payload sits inside an envelope.
// MapJSON returns the keys leading to it, outermost first. It is called on the
// zero value of the model, or on a fresh element when the model is a pointer.
type Mapper interface {
	MapJSON() []string
}

// mapKeys returns the envelope keys declared by T, if any.
func mapKeys[T any]() []string {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() == reflect.Pointer {
		// A nil *T would panic on value-receiver methods.
		if m, ok := reflect.New(typ.Elem()).Interface().(Mapper); ok {
			return m.MapJSON()
		}
		return nil
	}

	var zero T
	if m, ok := any(zero).(Mapper); ok {
		return m.MapJSON()
	}
	if m, ok := any(&zero).(Mapper); ok {
		return m.MapJSON()
	}
	return nil
}

// classify turns a transport outcome into the initial response. A missing
// status or a transport error is final.
func classify[T any](out Outcome) Response[T] {
	var resp Response[T]

	if out.Status == nil {
		resp.Error = ErrNoResponse
		return resp
	}
	resp.StatusCode = out.Status.Code

	if out.Err != nil {
		resp.Error = ServiceError(out.Err.Error())
		return resp
	}
	return resp
}
