package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type Handler[E any] func(ctx context.Context, event E) error

type subscription[E any] struct {
	id     uint64
	handle Handler[E]
}

// Bus 进程内同步事件总线
// 同一事件类型的处理器按订阅顺序依次执行，处理器 panic 会被转换为错误
type Bus[T comparable, E any] struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[T][]subscription[E]
}

func NewBus[T comparable, E any]() *Bus[T, E] {
	return &Bus[T, E]{subs: make(map[T][]subscription[E])}
}

// Subscribe 返回取消订阅函数，可重复调用
func (b *Bus[T, E]) Subscribe(eventType T, handler Handler[E]) func() {
	if handler == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[eventType] = append(b.subs[eventType], subscription[E]{id: id, handle: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(eventType, id) })
	}
}

func (b *Bus[T, E]) remove(eventType T, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[eventType]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		subs = append(subs[:i:i], subs[i+1:]...)
		break
	}
	if len(subs) == 0 {
		delete(b.subs, eventType)
		return
	}
	b.subs[eventType] = subs
}

// Publish 执行全部处理器，返回合并后的错误
func (b *Bus[T, E]) Publish(ctx context.Context, eventType T, event E) error {
	b.mu.RLock()
	subs := b.subs[eventType]
	b.mu.RUnlock()

	var errs []error
	for _, s := range subs {
		if err := dispatch(ctx, s.handle, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func dispatch[E any](ctx context.Context, handle Handler[E], event E) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panic: %v", r)
		}
	}()
	return handle(ctx, event)
}
