package counter

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/stratushq/stratus/internal/pkg/cache"
	"github.com/stratushq/stratus/internal/pkg/database"
)

const (
	aiRequestsKey  = "org:counters:ai_requests"
	widgetSavesKey = "org:counters:widget_saves"
)

// AddAIRequest increments the pending AI-request counter for an organization
// in Redis. Flushed to the organizations table in batches.
func AddAIRequest(orgID uint) error {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(orgID), 10)
	return cache.GetClient().HIncrBy(ctx, aiRequestsKey, field, 1).Err()
}

// AddWidgetSave increments the pending widget-save counter for an organization
func AddWidgetSave(orgID uint) error {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(orgID), 10)
	return cache.GetClient().HIncrBy(ctx, widgetSavesKey, field, 1).Err()
}

// FlushAll flushes pending counters to the database
func FlushAll() error {
	if err := flushHashToTable(aiRequestsKey, "organizations", "ai_requests_used"); err != nil {
		return err
	}
	return flushHashToTable(widgetSavesKey, "organizations", "widget_saves")
}

// flushHashToTable drains a Redis hash atomically and applies batched increments.
// Uses RENAME to a temporary key for atomic drain without losing in-flight increments.
func flushHashToTable(redisKey, table, column string) error {
	ctx := context.Background()
	rdb := cache.GetClient()

	tmpKey := redisKey + ":flush"
	if err := rdb.Do(ctx, "RENAME", redisKey, tmpKey).Err(); err != nil {
		// If key does not exist, nothing to flush
		if strings.Contains(strings.ToLower(err.Error()), "no such key") || err.Error() == "redis: nil" {
			return nil
		}
		return err
	}

	defer rdb.Del(ctx, tmpKey)

	data, err := rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	type pair struct {
		id  uint64
		inc int64
	}
	pairs := make([]pair, 0, len(data))
	for k, v := range data {
		id, perr := strconv.ParseUint(k, 10, 64)
		if perr != nil {
			continue
		}
		inc, ierr := strconv.ParseInt(v, 10, 64)
		if ierr != nil || inc == 0 {
			continue
		}
		pairs = append(pairs, pair{id: id, inc: inc})
	}
	if len(pairs) == 0 {
		return nil
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].id < pairs[j].id })

	// UPDATE <table> SET <column> = <column> + CASE id WHEN ? THEN ? ... END WHERE id IN (...)
	var builder strings.Builder
	args := make([]interface{}, 0, len(pairs)*3)
	builder.WriteString("UPDATE ")
	builder.WriteString(table)
	builder.WriteString(" SET ")
	builder.WriteString(column)
	builder.WriteString(" = ")
	builder.WriteString(column)
	builder.WriteString(" + CASE id ")
	for _, p := range pairs {
		builder.WriteString(" WHEN ? THEN ?")
		args = append(args, p.id, p.inc)
	}
	builder.WriteString(" END WHERE id IN (")
	for i, p := range pairs {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString("?")
		args = append(args, p.id)
	}
	builder.WriteString(")")

	db := database.GetDB()
	if err := db.Exec(builder.String(), args...).Error; err != nil {
		return err
	}
	return nil
}
