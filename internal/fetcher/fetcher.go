// Package fetcher orchestrates menu retrieval: cache lookup, concurrent
// upstream requests for both meals, formatting, and cache storage. It is the
// only layer that converts lower-level faults into the user-facing
// MenuUnavailableError.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"school-menu/internal/cache"
	"school-menu/internal/menu"
	"school-menu/internal/metrics"
	"school-menu/internal/nutrislice"
)

// MealTypes are the meal identifiers requested for every date.
var MealTypes = [2]string{"breakfast", "lunch"}

// Fetcher retrieves and formats the menu for a date. Cache and metrics are
// optional; a nil value disables the concern without changing behavior.
type Fetcher struct {
	client       nutrislice.Client
	cache        *cache.MenuCache
	metricsStore *metrics.Store
	mode         menu.Mode
}

// New creates a Fetcher rendering in the given mode.
func New(client nutrislice.Client, c *cache.MenuCache, m *metrics.Store, mode menu.Mode) *Fetcher {
	return &Fetcher{
		client:       client,
		cache:        c,
		metricsStore: m,
		mode:         mode,
	}
}

// FetchMenu returns the formatted breakfast and lunch for a date (YYYY-MM-DD).
// On a cache miss both meals are requested concurrently; both requests run to
// completion before any result is interpreted, and a failure in either meal
// fails the whole fetch rather than falling back to partial data.
func (f *Fetcher) FetchMenu(ctx context.Context, date string) (menu.FormattedMenu, error) {
	if f.cache != nil {
		if cached, ok := f.cache.Get(date); ok {
			return cached, nil
		}
	}

	var texts [len(MealTypes)]string
	var g errgroup.Group
	for i, mealType := range MealTypes {
		i, mealType := i, mealType
		g.Go(func() error {
			text, err := f.fetchMeal(ctx, mealType, date)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return menu.FormattedMenu{}, &MenuUnavailableError{Err: err}
	}

	result := menu.FormattedMenu{Breakfast: texts[0], Lunch: texts[1]}
	if f.cache != nil {
		f.cache.Put(date, result)
	}
	return result, nil
}

// fetchMeal fetches one meal's week document and formats the requested day.
func (f *Fetcher) fetchMeal(ctx context.Context, mealType, date string) (string, error) {
	start := time.Now()
	body, status, err := f.client.Get(ctx, mealType, date)
	f.record(mealType, status, time.Since(start))

	if err != nil {
		return "", &NetworkError{MealType: mealType, Err: err}
	}
	if status < 200 || status >= 300 {
		return "", &UpstreamError{MealType: mealType, StatusCode: status}
	}

	var week menu.Week
	if err := json.Unmarshal(body, &week); err != nil {
		return "", &DataShapeError{MealType: mealType, Err: err}
	}
	if week.Days == nil {
		return "", &DataShapeError{MealType: mealType, Err: errMissingDays}
	}

	return menu.Format(menu.FindDay(&week, date), f.mode), nil
}

func (f *Fetcher) record(mealType string, status int, latency time.Duration) {
	if f.metricsStore == nil {
		return
	}
	_ = f.metricsStore.Record(metrics.UpstreamMetric{
		MealType:   mealType,
		StatusCode: status,
		LatencyMS:  latency.Milliseconds(),
	})
}

var errMissingDays = errors.New("missing days field")
