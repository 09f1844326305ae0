package trace

import (
	"fmt"
	"math/rand"
)

// FailureRule describes how a specific "service.action" pair should fail
// when the Failure Injector consults it before dispatch.
type FailureRule struct {
	ErrorType   string  `json:"error_type"`
	Message     string  `json:"message"`
	Probability float64 `json:"probability"`
}

// FailureConfig maps "service.action" keys to FailureRules. It is consulted
// once per node, prior to dispatch.
type FailureConfig struct {
	Rules map[string]FailureRule `json:"rules"`
}

// NewFailureConfig returns an empty FailureConfig ready for rule insertion.
func NewFailureConfig() *FailureConfig {
	return &FailureConfig{Rules: make(map[string]FailureRule)}
}

// Set installs a rule for the given service/action pair.
func (c *FailureConfig) Set(service, action string, rule FailureRule) {
	if c.Rules == nil {
		c.Rules = make(map[string]FailureRule)
	}
	c.Rules[key(service, action)] = rule
}

// ShouldFail draws a uniform variate and compares it against the configured
// rule's probability for the given service/action pair. It returns the rule
// that triggered, or nil if no rule is configured or the draw missed.
func (c *FailureConfig) ShouldFail(rng *rand.Rand, service, action string) *FailureRule {
	if c == nil || c.Rules == nil {
		return nil
	}
	rule, ok := c.Rules[key(service, action)]
	if !ok {
		return nil
	}
	if rng.Float64() < rule.Probability {
		return &rule
	}
	return nil
}

func key(service, action string) string {
	return fmt.Sprintf("%s.%s", service, action)
}
