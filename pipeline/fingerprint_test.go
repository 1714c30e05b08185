package pipeline_test

import (
	"testing"

	"github.com/ham-zax/distill"
	"github.com/ham-zax/distill/pipeline"
	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	t.Parallel()

	cfg := distill.DefaultConfig()

	t.Run("stable for identical input", func(t *testing.T) {
		t.Parallel()
		a := pipeline.Fingerprint("<p>hello</p>", cfg)
		b := pipeline.Fingerprint("<p>hello</p>", cfg)
		assert.Equal(t, a, b)
	})

	t.Run("changes with content", func(t *testing.T) {
		t.Parallel()
		a := pipeline.Fingerprint("<p>hello</p>", cfg)
		b := pipeline.Fingerprint("<p>goodbye</p>", cfg)
		assert.NotEqual(t, a, b)
	})

	t.Run("changes with output-affecting config", func(t *testing.T) {
		t.Parallel()

		other := cfg
		other.RuleSets = []string{distill.RuleSetSafe}
		assert.NotEqual(t,
			pipeline.Fingerprint("<p>hello</p>", cfg),
			pipeline.Fingerprint("<p>hello</p>", other),
		)

		truncating := cfg
		truncating.MaxContentLength = 10
		assert.NotEqual(t,
			pipeline.Fingerprint("<p>hello</p>", cfg),
			pipeline.Fingerprint("<p>hello</p>", truncating),
		)
	})

	t.Run("ignores unrelated config", func(t *testing.T) {
		t.Parallel()

		other := cfg
		other.MaxRetries = 9
		other.DisableCache = true
		assert.Equal(t,
			pipeline.Fingerprint("<p>hello</p>", cfg),
			pipeline.Fingerprint("<p>hello</p>", other),
		)
	})
}
