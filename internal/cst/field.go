package cst

// Field gives a child a stable role within its parent. A field may repeat:
// every value of a value list carries FieldValue.
type Field uint8

const (
	NoField Field = iota
	FieldName
	FieldType
	FieldValue
	FieldBody
	FieldPath
	FieldModule
	FieldTag
	FieldKey
	FieldLength
	FieldElement
	FieldImport
	FieldModifier
	FieldDirective
)

var fieldNames = [...]string{
	NoField:        "",
	FieldName:      "name",
	FieldType:      "type",
	FieldValue:     "value",
	FieldBody:      "body",
	FieldPath:      "path",
	FieldModule:    "module",
	FieldTag:       "tag",
	FieldKey:       "key",
	FieldLength:    "length",
	FieldElement:   "element",
	FieldImport:    "import",
	FieldModifier:  "modifier",
	FieldDirective: "directive",
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "field(?)"
}

// ParseField maps a field name back to its constant.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name && i != 0 {
			return Field(i), true
		}
	}
	return NoField, false
}
