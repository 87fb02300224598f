package stats

import (
	"encoding/json"
	"strconv"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	summaryCacheSize      = 512 * 1024
	summaryCacheExpireSec = 5 * 60
)

// SummaryCache keeps weekly summaries per user for a few minutes.
// Workout writes invalidate the owner's entry, so the owner never
// reads their own stale summary.
type SummaryCache struct {
	cache *freecache.Cache
}

func NewSummaryCache() *SummaryCache {
	return &SummaryCache{
		cache: freecache.NewCache(summaryCacheSize),
	}
}

func summaryKey(userID int) []byte {
	return []byte("weekly-summary||" + strconv.Itoa(userID))
}

func (c *SummaryCache) Get(userID int) (*WeeklySummary, bool) {
	raw, err := c.cache.Get(summaryKey(userID))
	if err != nil {
		return nil, false
	}
	var summary WeeklySummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		log.Warnf("unmarshal cached summary for user %d: %s", userID, err)
		return nil, false
	}
	return &summary, true
}

func (c *SummaryCache) Set(userID int, summary *WeeklySummary) {
	raw, err := json.Marshal(summary)
	if err != nil {
		log.Warnf("marshal summary for user %d: %s", userID, err)
		return
	}
	if err := c.cache.Set(summaryKey(userID), raw, summaryCacheExpireSec); err != nil {
		log.Warnf("cache summary for user %d: %s", userID, err)
	}
}

// InvalidateFor drops the user's cached summary after a workout write.
func (c *SummaryCache) InvalidateFor(userID int) {
	c.cache.Del(summaryKey(userID))
}
