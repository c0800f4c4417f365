package ccxp

import (
	"github.com/B16B1RD/cc-xp-kit/internal/strategy"
)

// StrategyOptions returns advisor options carrying the configured threshold
// and keyword tables.
func (c *Client) StrategyOptions(isFirst, hasTests bool) strategy.Options {
	return strategy.Options{
		IsFirstImplementation: isFirst,
		HasExistingTests:      hasTests,
		ShortTextThreshold:    c.config.Strategy.ShortTextThreshold,
		Keywords:              c.keywords,
	}
}

// RecommendStrategy recommends a TDD strategy for description.
func (c *Client) RecommendStrategy(description string, isFirst, hasTests bool) strategy.Recommendation {
	return strategy.Recommend(description, c.StrategyOptions(isFirst, hasTests))
}
