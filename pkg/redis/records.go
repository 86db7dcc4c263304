package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"digital-supervision/backend/pkg/store"
)

// ── 记录存储后端 ──
// *Client 满足 store.Store 接口

const recordPrefix = "dss:records:"

var _ store.Store = (*Client)(nil)

// Get 读取命名空间文档
func (c *Client) Get(ctx context.Context, namespace string) ([]byte, error) {
	v, err := c.rdb.Get(ctx, recordPrefix+namespace).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// Set 覆盖命名空间文档，不过期
func (c *Client) Set(ctx context.Context, namespace string, data []byte) error {
	return c.rdb.Set(ctx, recordPrefix+namespace, data, 0).Err()
}
