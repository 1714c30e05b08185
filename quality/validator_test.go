package quality_test

import (
	"strings"
	"testing"

	"github.com/ham-zax/distill"
	"github.com/ham-zax/distill/quality"
	"github.com/ham-zax/distill/xhtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) distill.Node {
	t.Helper()
	root, err := xhtml.Parse(html)
	require.NoError(t, err)
	return root
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	t.Run("counts characters paragraphs and headings", func(t *testing.T) {
		t.Parallel()

		root := parse(t, `<body><article>
<h1>Title</h1>
<p>First paragraph here.</p>
<p>Second paragraph here.</p>
<p>   </p>
</article></body>`)

		v := quality.NewValidator()
		m := v.Metrics(root.Children()[0])

		assert.Equal(t, 3, m.ParagraphCount) // h1 + two non-empty p
		assert.Equal(t, 1, m.HeadingCount)
		assert.Greater(t, m.AvgParagraphLength, 0.0)
		assert.Equal(t, len("Title First paragraph here. Second paragraph here."), m.CharacterCount)
	})

	t.Run("link density is anchor text over total text", func(t *testing.T) {
		t.Parallel()

		root := parse(t, `<body><div><a href="/x">12345</a><span>12345</span></div></body>`)

		v := quality.NewValidator()
		m := v.Metrics(root.Children()[0])

		assert.InDelta(t, 5.0/11.0, m.LinkDensity, 0.01)
	})

	t.Run("signal to noise compares text to serialized size", func(t *testing.T) {
		t.Parallel()

		root := parse(t, `<body><div class="a b c" data-x="1"><p>hi</p></div></body>`)

		v := quality.NewValidator()
		m := v.Metrics(root.Children()[0])

		assert.Greater(t, m.SignalToNoise, 0.0)
		assert.Less(t, m.SignalToNoise, 0.5)
	})

	t.Run("structure score is capped", func(t *testing.T) {
		t.Parallel()

		root := parse(t, `<body><main>`+strings.Repeat("<section><h2>h</h2></section>", 20)+`</main></body>`)

		v := quality.NewValidator()
		m := v.Metrics(root.Children()[0])

		assert.Equal(t, 100, m.StructureScore)
	})

	t.Run("nil candidate yields zeroes", func(t *testing.T) {
		t.Parallel()

		v := quality.NewValidator()
		assert.Equal(t, distill.Metrics{}, v.Metrics(nil))
	})
}

func TestScore_Clamped(t *testing.T) {
	t.Parallel()

	v := quality.NewValidator()

	assert.Equal(t, 20, v.Score(distill.Metrics{})) // inverse link density only
	assert.GreaterOrEqual(t, v.Score(distill.Metrics{LinkDensity: 1}), 0)

	rich := distill.Metrics{
		CharacterCount: 10000,
		ParagraphCount: 50,
		SignalToNoise:  0.95,
		StructureScore: 100,
	}
	assert.LessOrEqual(t, v.Score(rich), 100)
}

func TestGateA(t *testing.T) {
	t.Parallel()

	v := quality.NewValidator()

	t.Run("passes an article-shaped candidate", func(t *testing.T) {
		t.Parallel()

		root := parse(t, `<body><article><h1>Title</h1><p>`+strings.Repeat("x", 600)+`</p></article></body>`)

		r := v.GateA(root.Children()[0])

		assert.True(t, r.Passed)
		assert.GreaterOrEqual(t, r.Score, 60)
		assert.Empty(t, r.FailureReasons)
	})

	t.Run("fails a short candidate with reasons", func(t *testing.T) {
		t.Parallel()

		root := parse(t, `<body><div><p>`+strings.Repeat("x", 200)+`</p></div></body>`)

		r := v.GateA(root.Children()[0])

		assert.False(t, r.Passed)
		assert.NotEmpty(t, r.FailureReasons)
	})

	t.Run("fails on link density", func(t *testing.T) {
		t.Parallel()

		root := parse(t, `<body><article><h1>T</h1><p>`+strings.Repeat("x", 300)+`</p><a href="/x">`+strings.Repeat("y", 400)+`</a></article></body>`)

		r := v.GateA(root.Children()[0])

		assert.False(t, r.Passed)
		found := false
		for _, reason := range r.FailureReasons {
			if strings.Contains(reason, "link density") {
				found = true
			}
		}
		assert.True(t, found, "reasons: %v", r.FailureReasons)
	})
}

func TestGateB(t *testing.T) {
	t.Parallel()

	v := quality.NewValidator()

	t.Run("passes moderate extractor output", func(t *testing.T) {
		t.Parallel()

		root := parse(t, `<body><div><p>`+strings.Repeat("x", 400)+`</p></div></body>`)

		r := v.GateB(root.Children()[0])

		assert.True(t, r.Passed, "reasons: %v", r.FailureReasons)
	})

	t.Run("absent output fails automatically with score zero", func(t *testing.T) {
		t.Parallel()

		r := v.GateB(nil)

		assert.False(t, r.Passed)
		assert.Zero(t, r.Score)
		assert.Contains(t, r.FailureReasons, "no extractor output")
	})

	t.Run("empty output fails automatically", func(t *testing.T) {
		t.Parallel()

		root := parse(t, `<body><div>   </div></body>`)

		r := v.GateB(root.Children()[0])

		assert.False(t, r.Passed)
		assert.Zero(t, r.Score)
	})
}

func TestGateC_AlwaysPasses(t *testing.T) {
	t.Parallel()

	v := quality.NewValidator()

	t.Run("even for nil", func(t *testing.T) {
		t.Parallel()

		r := v.GateC(nil)
		assert.True(t, r.Passed)
	})

	t.Run("even for an empty candidate", func(t *testing.T) {
		t.Parallel()

		root := parse(t, `<body><div></div></body>`)
		r := v.GateC(root.Children()[0])

		assert.True(t, r.Passed)
	})

	t.Run("still reports a diagnostic score", func(t *testing.T) {
		t.Parallel()

		root := parse(t, `<body><article><h1>T</h1><p>`+strings.Repeat("x", 500)+`</p></article></body>`)
		r := v.GateC(root.Children()[0])

		assert.True(t, r.Passed)
		assert.Greater(t, r.Score, 0)
	})
}
