package notify

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// HistoryLimit bounds the notification backlog kept per driver.
const HistoryLimit = 50

// History keeps recent notifications per driver in a capped Redis list,
// newest first.
type History struct {
	rdb *goredis.Client
}

func NewHistory(rdb *goredis.Client) *History {
	return &History{rdb: rdb}
}

func historyKey(driverID string) string {
	return "driver:" + driverID + ":notifications"
}

func (h *History) Append(ctx context.Context, n Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	key := historyKey(n.DriverID)
	pipe := h.rdb.Pipeline()
	pipe.LPush(ctx, key, raw)
	pipe.LTrim(ctx, key, 0, HistoryLimit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

func (h *History) Recent(ctx context.Context, driverID string, limit int) ([]Notification, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}

	raws, err := h.rdb.LRange(ctx, historyKey(driverID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read notifications: %w", err)
	}

	notifications := make([]Notification, 0, len(raws))
	for _, raw := range raws {
		var n Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			// A corrupt entry should not hide the rest of the backlog.
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}
