package engine

import "sync"

// Disposable releases a registration or resource. Dispose is idempotent.
type Disposable interface {
	Dispose()
}

type disposableFunc struct {
	once sync.Once
	fn   func()
}

// DisposableFunc wraps fn so it runs at most once.
func DisposableFunc(fn func()) Disposable {
	return &disposableFunc{fn: fn}
}

func (d *disposableFunc) Dispose() {
	d.once.Do(func() {
		if d.fn != nil {
			d.fn()
		}
	})
}
