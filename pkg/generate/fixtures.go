package generate

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-scaffold/pkg/schema"
)

// defaultFixtureRows is how many placeholder records seed a generated table.
const defaultFixtureRows = 5

// fixtureLiteral renders the TypeScript literal for one field of one seed
// row. Values are pure functions of the row number and field position so
// regeneration is always byte-identical: numeric fields scale with both
// indices, text fields embed the control name and row number.
func fixtureLiteral(field schema.FieldDescriptor, fieldIndex, row int) string {
	if field.Numeric() {
		return strconv.Itoa(row * (fieldIndex + 1) * 10)
	}
	return "'" + field.ControlName + "_val" + strconv.Itoa(row) + "'"
}

// addExpression renders the TypeScript expression the generated add()
// operation uses for one field, keyed off the component's running nextId
// counter with the same convention as the seed rows.
func addExpression(field schema.FieldDescriptor, fieldIndex int) string {
	if field.Numeric() {
		return fmt.Sprintf("this.nextId * %d", (fieldIndex+1)*10)
	}
	return "`" + field.ControlName + "_val${this.nextId}`"
}

// fixtureRow renders the full object literal for one seed record.
func fixtureRow(typeName string, fields schema.Schema, row int) string {
	literal := "Object.assign(new " + typeName + "Model(), { id: " + strconv.Itoa(row)
	for i, field := range fields {
		literal += ", " + field.ControlName + ": " + fixtureLiteral(field, i, row)
	}
	return literal + " })"
}
