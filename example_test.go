package ooxmlschema_test

import (
	"fmt"
	"strings"

	"github.com/jacoelho/ooxmlschema"
)

func ExampleSchema_ValidateChildren() {
	schema, err := ooxmlschema.Load(strings.NewReader(`{
		"namespaces": {"http://schemas.openxmlformats.org/wordprocessingml/2006/main": "w"},
		"elements": {
			"w:body": {"children": ["w:p", "w:tbl", "w:sectPr"], "attributes": {}},
			"w:p": {"children": ["w:r"], "attributes": {}}
		}
	}`))
	if err != nil {
		fmt.Println(err)
		return
	}

	result := schema.ValidateChildren("w:body", []string{"w:p", "w:r", "w:tbl"})
	fmt.Println(result.OK, result.Invalid)
	fmt.Println(schema.Classify("w:body", ooxmlschema.DefaultDepth))
	// Output:
	// false [w:r]
	// block
}
