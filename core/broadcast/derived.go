package broadcast

// StreamFunc adapts a subscribe function to Stream.
type StreamFunc[T any] func(sink Sink[T]) *Subscription

func (f StreamFunc[T]) Subscribe(sink Sink[T]) *Subscription {
	return f(sink)
}

// FilterMap derives a stream that emits fn(v) for every upstream value v for
// which fn reports true. Every subscription to the derived stream is its own
// subscription upstream, so it sees no history and ends with the upstream
// terminal signal.
func FilterMap[In, Out any](source Stream[In], fn func(In) (Out, bool)) Stream[Out] {
	return StreamFunc[Out](func(sink Sink[Out]) *Subscription {
		return source.Subscribe(Sink[In]{
			Next: func(value In) {
				if mapped, ok := fn(value); ok {
					sink.next(mapped)
				}
			},
			Done: sink.done,
		})
	})
}

// Map derives a stream emitting fn(v) for every upstream value.
func Map[In, Out any](source Stream[In], fn func(In) Out) Stream[Out] {
	return FilterMap(source, func(value In) (Out, bool) {
		return fn(value), true
	})
}

// Filter derives a stream emitting the upstream values keep accepts.
func Filter[T any](source Stream[T], keep func(T) bool) Stream[T] {
	return FilterMap(source, func(value T) (T, bool) {
		return value, keep(value)
	})
}

// OfType derives a stream of the upstream values that have dynamic type Out.
func OfType[Out, In any](source Stream[In]) Stream[Out] {
	return FilterMap(source, func(value In) (Out, bool) {
		typed, ok := any(value).(Out)
		return typed, ok
	})
}
