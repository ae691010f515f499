package contentmodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacoelho/ooxmlschema/internal/nsmap"
	"github.com/jacoelho/ooxmlschema/internal/xsdtree"
)

const mainXSD = `<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema"
	xmlns:w="urn:w" xmlns:m="urn:m" targetNamespace="urn:w">
	<xsd:import namespace="urn:m"/>
	<xsd:group name="EG_BlockLevelElts">
		<xsd:choice>
			<xsd:element name="p" type="w:CT_P"/>
			<xsd:element name="tbl" type="w:CT_Tbl"/>
		</xsd:choice>
	</xsd:group>
	<xsd:complexType name="CT_Base">
		<xsd:sequence>
			<xsd:element name="sectPr" type="w:CT_SectPr"/>
		</xsd:sequence>
	</xsd:complexType>
	<xsd:complexType name="CT_Body">
		<xsd:complexContent>
			<xsd:extension base="w:CT_Base">
				<xsd:sequence>
					<xsd:group ref="w:EG_BlockLevelElts" maxOccurs="unbounded"/>
					<xsd:element ref="m:oMathPara"/>
					<xsd:element ref="altChunk"/>
					<xsd:any namespace="##other"/>
				</xsd:sequence>
			</xsd:extension>
		</xsd:complexContent>
	</xsd:complexType>
	<xsd:complexType name="CT_Loop">
		<xsd:complexContent>
			<xsd:extension base="w:CT_Loop"/>
		</xsd:complexContent>
	</xsd:complexType>
	<xsd:complexType name="CT_Text">
		<xsd:simpleContent>
			<xsd:extension base="xsd:string"/>
		</xsd:simpleContent>
	</xsd:complexType>
</xsd:schema>`

const mathXSD = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:m">
	<xs:complexType name="CT_OMathPara">
		<xs:sequence><xs:element name="oMath" type="CT_OMath"/></xs:sequence>
	</xs:complexType>
</xs:schema>`

func newIndex(t *testing.T) (*Index, *xsdtree.Document) {
	t.Helper()
	ix := NewIndex()
	doc, err := xsdtree.Parse([]byte(mainXSD))
	require.NoError(t, err)
	ix.AddDocument("wml.xsd", doc)

	math, err := xsdtree.Parse([]byte(mathXSD))
	require.NoError(t, err)
	ix.AddDocument("math.xsd", math)
	return ix, doc
}

func childNames(t *testing.T, particles []Particle, table *nsmap.Table) []string {
	t.Helper()
	out := make([]string, 0, len(particles))
	for _, p := range particles {
		q, ok := ResolveChildQName(p, table)
		require.True(t, ok)
		out = append(out, q)
	}
	return out
}

func TestExpandFollowsExtensionAndGroups(t *testing.T) {
	ix, doc := newIndex(t)
	table := nsmap.New(map[string]string{"urn:w": "w", "urn:m": "m"})

	body, ok := ix.ResolveType(doc.Root, "w:CT_Body", "urn:w", "wml.xsd")
	require.True(t, ok)

	got := childNames(t, ix.Expand(body), table)
	require.Equal(t, []string{"w:sectPr", "w:p", "w:tbl", "m:oMathPara", "w:altChunk"}, got)
}

func TestExpandStopsOnCycles(t *testing.T) {
	ix, doc := newIndex(t)
	loop, ok := ix.ResolveType(doc.Root, "w:CT_Loop", "urn:w", "wml.xsd")
	require.True(t, ok)
	require.Empty(t, ix.Expand(loop))
}

func TestContentRoot(t *testing.T) {
	ix, doc := newIndex(t)

	text, ok := ix.ResolveType(doc.Root, "w:CT_Text", "urn:w", "wml.xsd")
	require.True(t, ok)
	require.Nil(t, ContentRoot(text.Node))

	base, ok := ix.ResolveType(doc.Root, "w:CT_Base", "urn:w", "wml.xsd")
	require.True(t, ok)
	require.Equal(t, xsdtree.KindSequence, ContentRoot(base.Node).Kind)

	body, ok := ix.ResolveType(doc.Root, "w:CT_Body", "urn:w", "wml.xsd")
	require.True(t, ok)
	require.Equal(t, xsdtree.KindExtension, ContentRoot(body.Node).Kind)
}

func TestResolveType(t *testing.T) {
	ix, doc := newIndex(t)

	_, ok := ix.ResolveType(doc.Root, "xsd:string", "urn:w", "wml.xsd")
	require.False(t, ok, "built-in types have no definition")

	def, ok := ix.ResolveType(doc.Root, "CT_Body", "urn:w", "wml.xsd")
	require.True(t, ok, "unprefixed names resolve in the target namespace")
	require.Equal(t, "urn:w", def.Namespace)

	def, ok = ix.ResolveType(doc.Root, "q:CT_Body", "urn:w", "wml.xsd")
	require.True(t, ok, "unknown prefixes fall back to the file's local types")
	require.Equal(t, "CT_Body", def.Node.Name())

	_, ok = ix.ResolveType(doc.Root, "q:CT_Body", "urn:w", "other.xsd")
	require.False(t, ok)
}

func TestExpandUsesOwningNamespace(t *testing.T) {
	ix, doc := newIndex(t)
	table := nsmap.New(map[string]string{"urn:w": "w"})

	math, ok := ix.ResolveType(doc.Root, "m:CT_OMathPara", "urn:w", "wml.xsd")
	require.True(t, ok)
	require.Equal(t, []string{"g1:oMath"}, childNames(t, ix.Expand(math), table))
}

func TestCollectRefs(t *testing.T) {
	ix, doc := newIndex(t)
	table := nsmap.New(map[string]string{"urn:w": "w", "urn:m": "m"})

	refs := make(map[string]RefOrigin)
	ix.CollectRefs(doc.Root, doc.TargetNamespace, table, refs)

	require.Equal(t, map[string]RefOrigin{
		"m:oMathPara": {Namespace: "urn:m", Prefix: "m"},
		"w:altChunk":  {Namespace: "urn:w", Prefix: "w"},
	}, refs)
}

func TestQName(t *testing.T) {
	require.Equal(t, "w:p", QName("w", "p"))
	require.Equal(t, "p", QName("", "p"))
}

func TestCollectRefsSkipsDeclaredElements(t *testing.T) {
	doc, err := xsdtree.Parse([]byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:w="urn:w" targetNamespace="urn:w">
		<xs:element name="p" type="xs:string"/>
		<xs:complexType name="CT_Body">
			<xs:choice>
				<xs:element ref="w:p"/>
				<xs:element ref="missing"/>
			</xs:choice>
		</xs:complexType>
	</xs:schema>`))
	require.NoError(t, err)
	ix := NewIndex()
	ix.AddDocument("wml.xsd", doc)

	refs := make(map[string]RefOrigin)
	ix.CollectRefs(doc.Root, doc.TargetNamespace, nsmap.New(map[string]string{"urn:w": "w"}), refs)

	require.Equal(t, map[string]RefOrigin{"w:missing": {Namespace: "urn:w", Prefix: "w"}}, refs)
}
