package xsdtree

import "encoding/xml"

// Kind identifies a schema construct independently of the prefix spelling.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindSchema
	KindImport
	KindInclude
	KindElement
	KindComplexType
	KindSimpleType
	KindComplexContent
	KindSimpleContent
	KindExtension
	KindRestriction
	KindSequence
	KindChoice
	KindAll
	KindGroup
	KindAttribute
	KindAttributeGroup
	KindAnyAttribute
	KindAny
)

var kindNames = map[string]Kind{
	"schema":         KindSchema,
	"import":         KindImport,
	"include":        KindInclude,
	"element":        KindElement,
	"complexType":    KindComplexType,
	"simpleType":     KindSimpleType,
	"complexContent": KindComplexContent,
	"simpleContent":  KindSimpleContent,
	"extension":      KindExtension,
	"restriction":    KindRestriction,
	"sequence":       KindSequence,
	"choice":         KindChoice,
	"all":            KindAll,
	"group":          KindGroup,
	"attribute":      KindAttribute,
	"attributeGroup": KindAttributeGroup,
	"anyAttribute":   KindAnyAttribute,
	"any":            KindAny,
}

var kindStrings = [...]string{
	KindUnknown:        "unknown",
	KindSchema:         "schema",
	KindImport:         "import",
	KindInclude:        "include",
	KindElement:        "element",
	KindComplexType:    "complexType",
	KindSimpleType:     "simpleType",
	KindComplexContent: "complexContent",
	KindSimpleContent:  "simpleContent",
	KindExtension:      "extension",
	KindRestriction:    "restriction",
	KindSequence:       "sequence",
	KindChoice:         "choice",
	KindAll:            "all",
	KindGroup:          "group",
	KindAttribute:      "attribute",
	KindAttributeGroup: "attributeGroup",
	KindAnyAttribute:   "anyAttribute",
	KindAny:            "any",
}

func (k Kind) String() string {
	if int(k) < len(kindStrings) {
		return kindStrings[k]
	}
	return "unknown"
}

// IsModelGroup reports whether k is a sequence, choice or all compositor.
func (k Kind) IsModelGroup() bool {
	return k == KindSequence || k == KindChoice || k == KindAll
}

func kindOf(name xml.Name) Kind {
	switch name.Space {
	case XSDNamespace, "xs", "xsd":
	default:
		return KindUnknown
	}
	return kindNames[name.Local]
}
