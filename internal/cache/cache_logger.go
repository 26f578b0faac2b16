package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateStudentCache drops every cache entry a student write can
// stale out: the detail row, the list pages, and the shared user row
// keyed by id and email. An email change passes both the prior and the
// new address so neither survives the write.
func InvalidateStudentCache(ctx context.Context, cm *CacheManager, userID int64, emails ...string) {
	SafeDelete(ctx, cm.Student, fmt.Sprintf("id:%d", userID))
	SafeInvalidatePattern(ctx, cm.Student, "list:*")

	userKeys := []string{fmt.Sprintf("id:%d", userID)}
	var existsKeys []string
	for _, email := range emails {
		if email == "" {
			continue
		}
		userKeys = append(userKeys, fmt.Sprintf("email:%s", email))
		existsKeys = append(existsKeys, fmt.Sprintf("email:%s", email))
	}

	SafeDelete(ctx, cm.User, userKeys...)
	if len(existsKeys) > 0 {
		SafeDelete(ctx, cm.Exists, existsKeys...)
	}
}
