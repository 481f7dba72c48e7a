package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantMeta map[string]any
		wantBody string
		wantErr  bool
	}{
		{
			name:     "no front matter",
			raw:      "# Hello\n\nbody text",
			wantMeta: map[string]any{},
			wantBody: "# Hello\n\nbody text",
		},
		{
			name:     "simple block",
			raw:      "---\ntitle: Example Post\n---\n\n# Hello",
			wantMeta: map[string]any{"title": "Example Post"},
			wantBody: "# Hello",
		},
		{
			name:     "empty block",
			raw:      "---\n---\nbody",
			wantMeta: map[string]any{},
			wantBody: "body",
		},
		{
			name: "typed values",
			raw:  "---\ntitle: Post\ndraft: true\nweight: 3\n---\nbody",
			wantMeta: map[string]any{
				"title":  "Post",
				"draft":  true,
				"weight": 3,
			},
			wantBody: "body",
		},
		{
			name:    "unterminated block",
			raw:     "---\ntitle: Post\n\n# Hello",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			raw:     "---\ntitle: [unclosed\n---\nbody",
			wantErr: true,
		},
		{
			name:     "delimiter later in body is not front matter",
			raw:      "# Hello\n---\nnot: metadata\n---\n",
			wantMeta: map[string]any{},
			wantBody: "# Hello\n---\nnot: metadata\n---\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Split(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMeta, doc.Frontmatter)
			assert.Equal(t, tt.wantBody, doc.Body)
		})
	}
}

func TestSplit_DateValue(t *testing.T) {
	doc, err := Split("---\npublished: 2021-02-13\n---\nbody")
	require.NoError(t, err)

	published, ok := doc.Frontmatter["published"].(time.Time)
	require.True(t, ok, "unquoted date should decode as a timestamp")
	assert.Equal(t, 2021, published.Year())
	assert.Equal(t, time.February, published.Month())
	assert.Equal(t, 13, published.Day())
}

func TestMergeRoundTrip(t *testing.T) {
	meta := map[string]any{"title": "Round Trip", "draft": false}
	body := "# Heading\n\ntext\n"

	raw, err := Merge(meta, body)
	require.NoError(t, err)

	doc, err := Split(raw)
	require.NoError(t, err)
	assert.Equal(t, meta, doc.Frontmatter)
	assert.Equal(t, body, doc.Body)
}

func TestMerge_NoMetadata(t *testing.T) {
	raw, err := Merge(nil, "plain body")
	require.NoError(t, err)
	assert.Equal(t, "plain body", raw)
}
