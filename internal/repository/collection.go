package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pkgerrors "digital-supervision/backend/pkg/errors"
	"digital-supervision/backend/pkg/store"
)

// collection 命名空间中的 JSON 列表
type collection[T any] struct {
	st  store.Store
	ns  string
	key func(*T) string
}

func newCollection[T any](st store.Store, ns string, key func(*T) string) collection[T] {
	return collection[T]{st: st, ns: ns, key: key}
}

// all 读取整个集合；命名空间不存在视为空集合
func (c collection[T]) all(ctx context.Context) ([]T, error) {
	raw, err := c.st.Get(ctx, c.ns)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("%w: 读取 %s: %v", pkgerrors.ErrStorageUnavailable, c.ns, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: 解析 %s: %v", pkgerrors.ErrStorageUnavailable, c.ns, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// overwrite 整体写回集合
func (c collection[T]) overwrite(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("序列化 %s 失败: %w", c.ns, err)
	}
	if err := c.st.Set(ctx, c.ns, raw); err != nil {
		return fmt.Errorf("%w: 写入 %s: %v", pkgerrors.ErrStorageUnavailable, c.ns, err)
	}
	return nil
}

func (c collection[T]) find(ctx context.Context, id string) (*T, error) {
	return c.first(ctx, func(v *T) bool { return c.key(v) == id })
}

func (c collection[T]) first(ctx context.Context, match func(*T) bool) (*T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if match(&items[i]) {
			return &items[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

func (c collection[T]) filter(ctx context.Context, match func(*T) bool) ([]T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return items, nil
	}
	out := make([]T, 0, len(items))
	for i := range items {
		if match(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out, nil
}

// insert 追加到集合末尾，保持插入顺序
func (c collection[T]) insert(ctx context.Context, values ...T) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(items)+len(values))
	for i := range items {
		seen[c.key(&items[i])] = struct{}{}
	}
	for i := range values {
		k := c.key(&values[i])
		if _, ok := seen[k]; ok {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateKey, c.ns, k)
		}
		seen[k] = struct{}{}
	}
	return c.overwrite(ctx, append(items, values...))
}

// replace 按主键原位替换
func (c collection[T]) replace(ctx context.Context, value T) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	k := c.key(&value)
	for i := range items {
		if c.key(&items[i]) == k {
			items[i] = value
			return c.overwrite(ctx, items)
		}
	}
	return ErrRecordNotFound
}

func (c collection[T]) remove(ctx context.Context, id string) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if c.key(&items[i]) == id {
			return c.overwrite(ctx, append(items[:i], items[i+1:]...))
		}
	}
	return ErrRecordNotFound
}
