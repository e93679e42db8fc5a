package notifier

import "context"

//go:generate mockgen -source=public.go -destination=mock_notifier.go -package=notifier

// Notifier tells the other instances which cache keys were evicted locally.
type Notifier interface {
	CacheInvalidated(ctx context.Context, keys []string) error
}
