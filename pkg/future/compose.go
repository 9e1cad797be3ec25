package future

// Then returns a future resolved by applying fn to f's value once f
// completes. If f fails, the error passes through and fn is not called.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	out := New[U]()
	go func() {
		v, err := f.Get()
		if err != nil {
			out.Fail(err)
			return
		}
		u, err := fn(v)
		if err != nil {
			out.Fail(err)
			return
		}
		out.Complete(u)
	}()
	return out
}

// Combine returns a future resolved by applying fn to the values of a and b
// once both complete. The first error from either side fails the result.
func Combine[A, B, C any](a *Future[A], b *Future[B], fn func(A, B) (C, error)) *Future[C] {
	out := New[C]()
	go func() {
		av, err := a.Get()
		if err != nil {
			out.Fail(err)
			return
		}
		bv, err := b.Get()
		if err != nil {
			out.Fail(err)
			return
		}
		c, err := fn(av, bv)
		if err != nil {
			out.Fail(err)
			return
		}
		out.Complete(c)
	}()
	return out
}

// Catch returns a future that resolves with f's value when f succeeds, or
// with the result of fn applied to f's error when it fails.
func Catch[T any](f *Future[T], fn func(error) (T, error)) *Future[T] {
	out := New[T]()
	go func() {
		v, err := f.Get()
		if err == nil {
			out.Complete(v)
			return
		}
		recovered, err := fn(err)
		if err != nil {
			out.Fail(err)
			return
		}
		out.Complete(recovered)
	}()
	return out
}

// All returns a future that resolves with the values of all given futures in
// argument order, or fails with the first error encountered.
func All[T any](futures ...*Future[T]) *Future[[]T] {
	out := New[[]T]()
	go func() {
		values := make([]T, len(futures))
		for i, f := range futures {
			v, err := f.Get()
			if err != nil {
				out.Fail(err)
				return
			}
			values[i] = v
		}
		out.Complete(values)
	}()
	return out
}
