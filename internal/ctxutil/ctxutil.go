package ctxutil

import (
	"context"
	"time"
)

// приватные ключи, чтобы исключить коллизии
type key int

const keyRaterID key = iota

// WithRaterID /RaterID — id аутентифицированного оценщика из сессии.
// Только API-слой кладёт его сюда; тело запроса никогда.
func WithRaterID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, keyRaterID, id)
}

func RaterID(ctx context.Context) (int64, bool) {
	v := ctx.Value(keyRaterID)
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

var DefaultDBTimeout = 5 * time.Second

// WithDBTimeout — стандартный таймаут для БД.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		remain := time.Until(dl)
		if remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
