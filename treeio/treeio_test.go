package treeio_test

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bayestree/builder"
	"github.com/katalvlaran/bayestree/cliquetree"
	"github.com/katalvlaran/bayestree/gaussian"
	"github.com/katalvlaran/bayestree/inference"
	"github.com/katalvlaran/bayestree/treeio"
)

const example = `version: 1
root:
  frontals: [x0]
  dims: [1]
  r: [[2]]
  d: [1]
  children:
    - frontals: [x1]
      parents: [x0]
      dims: [1, 1]
      r: [[1.5]]
      s: [[0.5]]
      d: [0.3]
`

func TestDecode_Example(t *testing.T) {
	t.Parallel()

	root, err := treeio.Unmarshal([]byte(example))
	require.NoError(t, err)
	assert.Equal(t, 2, root.TreeSize())
	assert.Equal(t, []inference.Key{inference.Symbol('x', 0)}, root.Frontals())

	child := root.Children()[0]
	assert.Equal(t, []inference.Key{inference.Symbol('x', 0)}, child.Separator())
	cond := child.Conditional().(*gaussian.Conditional)
	assert.Equal(t, 1.5, cond.R().At(0, 0))
	assert.Equal(t, 0.5, cond.S().At(0, 0))
	assert.Equal(t, 0.3, cond.D().AtVec(0))
}

func TestRoundTrip_GeneratedTrees(t *testing.T) {
	t.Parallel()

	cases := map[string][]builder.BuilderOption{
		"scalar":      {builder.WithSeed(1)},
		"symbol keys": {builder.WithSeed(2), builder.WithSymbolKeys('l'), builder.WithFrontals(2)},
		"multi-dim":   {builder.WithSeed(3), builder.WithDim(3), builder.WithSeparator(2)},
	}
	for name, opts := range cases {
		opts := opts
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			want, err := builder.BuildTree(builder.Random(9), opts...)
			require.NoError(t, err)

			data, err := treeio.Marshal(want.Root())
			require.NoError(t, err)
			root, err := treeio.Unmarshal(data)
			require.NoError(t, err)
			got, err := cliquetree.New(root, gaussian.Eliminate)
			require.NoError(t, err)

			assert.True(t, want.Equals(got, 0), "round trip must be exact")
		})
	}
}

func TestRoundTrip_EmptyRoot(t *testing.T) {
	t.Parallel()

	root := cliquetree.NewClique(nil)
	child, err := builder.Build(builder.Chain(2))
	require.NoError(t, err)
	require.NoError(t, root.AddChild(child))

	data, err := treeio.Marshal(root)
	require.NoError(t, err)
	back, err := treeio.Unmarshal(data)
	require.NoError(t, err)
	assert.Nil(t, back.Conditional())
	assert.Equal(t, 3, back.TreeSize())
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	tree, err := builder.BuildTree(builder.Binary(5), builder.WithSeed(8))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "nested", "tree.yaml")

	require.NoError(t, treeio.Save(path, tree.Root()))
	root, err := treeio.Load(path)
	require.NoError(t, err)
	loaded, err := cliquetree.New(root, gaussian.Eliminate)
	require.NoError(t, err)
	assert.True(t, tree.Equals(loaded, 0))

	_, err = treeio.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "", treeio.ErrMissingRoot},
		{"no root", "version: 1\n", treeio.ErrMissingRoot},
		{"version", strings.Replace(example, "version: 1", "version: 2", 1), treeio.ErrUnsupportedVersion},
		{"ragged", "version: 1\nroot:\n  frontals: [\"0\", \"1\"]\n  dims: [1, 1]\n  r: [[1, 0], [1]]\n  d: [1, 1]\n", treeio.ErrMalformed},
		{"bad key", "version: 1\nroot:\n  frontals: [\"?\"]\n  dims: [1]\n  r: [[1]]\n  d: [1]\n", inference.ErrInvalidKey},
		{"missing d", "version: 1\nroot:\n  frontals: [\"0\"]\n  dims: [1]\n  r: [[1]]\n", treeio.ErrMalformed},
		{"headless child", "version: 1\nroot:\n  frontals: []\n  children:\n    - frontals: []\n", treeio.ErrMalformed},
		{"singular r", "version: 1\nroot:\n  frontals: [\"0\"]\n  dims: [1]\n  r: [[0]]\n  d: [1]\n", gaussian.ErrIndeterminant},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := treeio.Decode(strings.NewReader(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := treeio.Unmarshal([]byte("version: 1\nroot:\n  frontals: [\"0\"]\n  colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

// opaque is a conditional of a foreign type.
type opaque struct{}

func (opaque) Frontals() []inference.Key { return []inference.Key{0} }
func (opaque) Parents() []inference.Key { return nil }
func (opaque) Keys() []inference.Key { return []inference.Key{0} }
func (opaque) ToFactor() inference.Factor { return nil }
func (opaque) Equals(inference.Conditional, float64) bool { return false }
func (opaque) Print(io.Writer, string, inference.KeyFormatter) {}
func (o opaque) Rekey(map[inference.Key]inference.Key) (inference.Conditional, error) {
	return o, nil
}

func TestEncode_Errors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.ErrorIs(t, treeio.Encode(&buf, nil), treeio.ErrMissingRoot)
	assert.ErrorIs(t, treeio.Encode(&buf, cliquetree.NewClique(opaque{})), treeio.ErrUnsupportedConditional)
}

func TestEncode_Layout(t *testing.T) {
	t.Parallel()

	root, err := treeio.Unmarshal([]byte(example))
	require.NoError(t, err)
	data, err := treeio.Marshal(root)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "version: 1\nroot:\n"))
	assert.Contains(t, out, "frontals: [x1]")
	assert.Contains(t, out, "parents: [x0]")
	assert.Contains(t, out, "s: [[0.5]]")
	assert.NotContains(t, out, "parents: []", "empty parents are omitted")
}
