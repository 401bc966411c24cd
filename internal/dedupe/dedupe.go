// Package dedupe collapses concurrent identical reads into one call while
// the other callers wait for its result.
package dedupe

import "golang.org/x/sync/singleflight"

// Group is a typed singleflight group. The zero value is ready to use. Keys
// only dedupe within one Group, so each data source should own its own.
type Group[T any] struct {
	g singleflight.Group
}

// Do runs fn once per key among concurrent callers and hands every caller
// the same result. Shared reports whether the result went to more than one
// caller; callers must treat a shared value as read-only.
func (d *Group[T]) Do(key string, fn func() (T, error)) (v T, shared bool, err error) {
	res, err, shared := d.g.Do(key, func() (interface{}, error) {
		out, err := fn()
		return out, err
	})
	if err != nil {
		return v, shared, err
	}
	return res.(T), shared, nil
}

// Forget drops an in-flight key so the next call runs fn again.
func (d *Group[T]) Forget(key string) {
	d.g.Forget(key)
}
