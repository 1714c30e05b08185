package xhtml_test

import (
	"testing"

	"github.com/ham-zax/distill"
	"github.com/ham-zax/distill/xhtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := xhtml.Parse("")

	require.Error(t, err)
	assert.Equal(t, distill.EINVALID, distill.ErrorCode(err))
}

func TestParse_ReturnsBody(t *testing.T) {
	t.Parallel()

	root, err := xhtml.Parse(`<html><body><p>hello</p></body></html>`)

	require.NoError(t, err)
	assert.Equal(t, "body", root.Kind())
}

func TestParse_ToleratesMalformedMarkup(t *testing.T) {
	t.Parallel()

	root, err := xhtml.Parse(`<div><p>unclosed<div><span>mess`)

	require.NoError(t, err)
	assert.Contains(t, root.Text(), "unclosed")
	assert.Contains(t, root.Text(), "mess")
}

func TestNode_KindAndAttrs(t *testing.T) {
	t.Parallel()

	root, err := xhtml.Parse(`<body><article id="main" class="post">x</article></body>`)
	require.NoError(t, err)

	children := root.Children()
	require.Len(t, children, 1)

	article := children[0]
	assert.Equal(t, "article", article.Kind())
	assert.Equal(t, "main", article.Attr("id"))
	assert.Equal(t, "post", article.Attrs()["class"])
	assert.Empty(t, article.Attr("missing"))
}

func TestNode_Text(t *testing.T) {
	t.Parallel()

	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()

		root, err := xhtml.Parse("<body><p>one\n\t two  </p><p>three</p></body>")
		require.NoError(t, err)

		assert.Equal(t, "one two three", root.Text())
	})

	t.Run("skips script and style content", func(t *testing.T) {
		t.Parallel()

		root, err := xhtml.Parse(`<body><p>visible</p><script>var x = 1;</script><style>p{color:red}</style></body>`)
		require.NoError(t, err)

		assert.Equal(t, "visible", root.Text())
	})

	t.Run("skips hidden subtrees", func(t *testing.T) {
		t.Parallel()

		root, err := xhtml.Parse(`<body><p>shown</p><div hidden><p>hidden text</p></div></body>`)
		require.NoError(t, err)

		assert.Equal(t, "shown", root.Text())
	})
}

func TestNode_Visible(t *testing.T) {
	t.Parallel()

	html := `<body>
<div id="plain">a</div>
<div id="attr" hidden>b</div>
<div id="aria" aria-hidden="true">c</div>
<div id="display" style="display: none">d</div>
<div id="vis" style="visibility: hidden">e</div>
<div id="opaque" style="opacity: 0">f</div>
<div id="half" style="opacity: 0.5">g</div>
</body>`

	root, err := xhtml.Parse(html)
	require.NoError(t, err)

	visibility := map[string]bool{}
	for _, c := range root.Children() {
		visibility[c.Attr("id")] = c.Visible()
	}

	assert.True(t, visibility["plain"])
	assert.False(t, visibility["attr"])
	assert.False(t, visibility["aria"])
	assert.False(t, visibility["display"])
	assert.False(t, visibility["vis"])
	assert.False(t, visibility["opaque"])
	assert.True(t, visibility["half"])
}

func TestNode_Matches(t *testing.T) {
	t.Parallel()

	root, err := xhtml.Parse(`<body><nav class="top-menu">m</nav><article>a</article></body>`)
	require.NoError(t, err)

	nav := root.Children()[0]
	article := root.Children()[1]

	assert.True(t, nav.Matches("nav"))
	assert.True(t, nav.Matches(".top-menu"))
	assert.False(t, article.Matches("nav"))
	assert.True(t, article.Matches("article"))

	// Invalid selectors match nothing instead of failing.
	assert.False(t, nav.Matches("[[["))
}

func TestNode_CloneIsolation(t *testing.T) {
	t.Parallel()

	root, err := xhtml.Parse(`<body><article><p>keep</p><aside>noise</aside></article></body>`)
	require.NoError(t, err)

	article := root.Children()[0]
	clone := article.Clone()

	// Mutating the clone leaves the original intact.
	clone.Children()[1].Remove()

	assert.NotContains(t, clone.Text(), "noise")
	assert.Contains(t, article.Text(), "noise")
	require.Len(t, article.Children(), 2)
}

func TestNode_Remove(t *testing.T) {
	t.Parallel()

	root, err := xhtml.Parse(`<body><p>first</p><p>second</p></body>`)
	require.NoError(t, err)

	root.Children()[0].Remove()

	assert.Equal(t, "second", root.Text())
	assert.Len(t, root.Children(), 1)
}

func TestNode_Unwrap(t *testing.T) {
	t.Parallel()

	root, err := xhtml.Parse(`<body><nav><a href="/">Home</a><a href="/about">About</a></nav></body>`)
	require.NoError(t, err)

	root.Children()[0].Unwrap()

	// Children replace the nav in place; the text survives.
	assert.Equal(t, "Home About", root.Text())
	require.Len(t, root.Children(), 2)
	assert.Equal(t, "a", root.Children()[0].Kind())
}

func TestNode_Parent(t *testing.T) {
	t.Parallel()

	root, err := xhtml.Parse(`<body><article><p>x</p></article></body>`)
	require.NoError(t, err)

	p := root.Children()[0].Children()[0]

	require.NotNil(t, p.Parent())
	assert.Equal(t, "article", p.Parent().Kind())
}

func TestNode_HTML(t *testing.T) {
	t.Parallel()

	root, err := xhtml.Parse(`<body><p class="x">hi</p></body>`)
	require.NoError(t, err)

	assert.Equal(t, `<p class="x">hi</p>`, root.Children()[0].HTML())
}

func TestFindAll_DocumentOrder(t *testing.T) {
	t.Parallel()

	root, err := xhtml.Parse(`<body><div id="a"><div id="b"></div></div><div id="c"></div></body>`)
	require.NoError(t, err)

	divs := distill.FindAll(root, "div")

	require.Len(t, divs, 3)
	assert.Equal(t, "a", divs[0].Attr("id"))
	assert.Equal(t, "b", divs[1].Attr("id"))
	assert.Equal(t, "c", divs[2].Attr("id"))
}
