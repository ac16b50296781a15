package resilience

import "golang.org/x/sync/singleflight"

// SingleFlight is a typed front for singleflight.Group. Only the caller
// whose fn actually ran sees joined=false; everyone who waited on it gets
// joined=true.
type SingleFlight[T any] struct {
	group singleflight.Group
}

func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	ran := false
	v, err, _ := g.group.Do(key, func() (any, error) {
		ran = true
		return fn()
	})
	out, _ := v.(T)
	return out, err, !ran
}

// Forget drops an in-flight key so the next Do starts a fresh call.
func (g *SingleFlight[T]) Forget(key string) {
	g.group.Forget(key)
}
