package artifact

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func sampleSchema() *Schema {
	s := New()
	s.Namespaces["urn:w"] = "w"
	body := NewElement()
	body.Children = []string{"w:p", "w:tbl"}
	body.Attributes.Set("w:rsid", Attribute{Type: "w:ST_LongHexNumber", Use: "optional"})
	body.Attributes.Set("r:id", Attribute{Type: ReferencedType, Ref: "r:id"})
	body.Attributes.AnyAttribute = true
	s.Elements["w:body"] = body
	s.Elements["w:p"] = NewElement()
	return s
}

func TestWriteProducesArtifactShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSchema()))

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	body := raw["elements"]["w:body"].(map[string]any)
	attrs := body["attributes"].(map[string]any)
	require.Equal(t, true, attrs[AnyAttributeKey])
	require.Equal(t, map[string]any{"type": "referenced", "ref": "r:id"}, attrs["r:id"])
	require.Equal(t, map[string]any{"type": "w:ST_LongHexNumber", "use": "optional"}, attrs["w:rsid"])

	p := raw["elements"]["w:p"].(map[string]any)
	require.Equal(t, []any{}, p["children"])
	require.Equal(t, map[string]any{}, p["attributes"])
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	want := sampleSchema()
	require.NoError(t, WriteFile(path, want))

	got, err := ReadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Write(&a, sampleSchema()))
	require.NoError(t, Write(&b, sampleSchema()))
	require.Equal(t, a.String(), b.String())
}

func TestReadFillsMissingMaps(t *testing.T) {
	s, err := Read(strings.NewReader(`{"elements":{"w:p":{},"w:r":null}}`))
	require.NoError(t, err)
	require.NotNil(t, s.Namespaces)
	require.Equal(t, []string{}, s.Elements["w:p"].Children)
	require.NotNil(t, s.Elements["w:r"])
}

func TestReadRejectsBadWildcard(t *testing.T) {
	_, err := Read(strings.NewReader(`{"elements":{"w:p":{"attributes":{"@anyAttribute":"yes"}}}}`))
	require.Error(t, err)
}

func TestAttributeMapMerge(t *testing.T) {
	var m AttributeMap
	m.Set("w:val", Attribute{Type: "base"})
	m.AnyAttribute = true

	m.Merge(AttributeMap{Attrs: map[string]Attribute{"w:val": {Type: "derived"}}})
	require.Equal(t, "derived", m.Attrs["w:val"].Type)
	require.True(t, m.AnyAttribute, "merge never clears the wildcard")
	require.Equal(t, 2, m.Len())
	require.Equal(t, []string{"w:val"}, m.Names())
}
