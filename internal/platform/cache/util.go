package cache

import (
	"time"
)

// TimeUntilNext はnowから次のhour時（loc）までの期間を返します。
// locがnilの場合はUTCを使います。
func TimeUntilNext(hour int, loc *time.Location, now time.Time) time.Duration {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)

	// 今日の指定時刻が既に過ぎている場合は翌日を使用
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}

	return next.Sub(now)
}
