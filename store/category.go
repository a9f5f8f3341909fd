package store

import (
	"log"

	"github.com/refill-spot/site/cache"
	"github.com/refill-spot/site/db"
)

var categoryCache *cache.Cache[[]string]

const categoryCacheKey = "all"

// InitCategoryCache creates the category cache. Called during startup.
func InitCategoryCache() error {
	var err error
	categoryCache, err = cache.New[[]string](func(value []string) int64 {
		var cost int64
		for _, v := range value {
			cost += int64(len(v))
		}
		return cost
	}, "Category Cache")
	return err
}

// GetCategories returns all category labels, cached for an hour.
func GetCategories() ([]string, error) {
	if categoryCache != nil {
		if cats, found := categoryCache.Get(categoryCacheKey); found {
			return cats, nil
		}
	}

	rows, err := db.Query(`SELECT name FROM Category ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cats = append(cats, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if categoryCache != nil {
		var cost int64
		for _, c := range cats {
			cost += int64(len(c))
		}
		categoryCache.Set(categoryCacheKey, cats, cost)
	}
	return cats, nil
}

// ClearCategoryCache drops the cached labels (admin edits categories)
func ClearCategoryCache() {
	if categoryCache != nil {
		categoryCache.Clear()
		log.Printf("[store] category cache cleared")
	}
}

// CategoryCacheStats exposes cache metrics for the admin dashboard
func CategoryCacheStats() map[string]interface{} {
	if categoryCache == nil {
		return map[string]interface{}{"cache_type": "Category Cache", "status": "not initialized"}
	}
	return categoryCache.Stats()
}
