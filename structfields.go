package regrid

import (
	"errors"
	"fmt"
	"go/token"
	"reflect"
	"strings"
)

// StructFieldNaming defines how struct fields
// are mapped to property names.
//
// nil is a valid value for *StructFieldNaming
// and is equal to the zero value
// which will use all exported struct fields
// with their field name as property name.
type StructFieldNaming struct {
	// Tag is the struct field tag to be used as property name.
	// If Tag is empty, then every struct field will be treated as untagged.
	Tag string
	// Ignore is the name that excludes a field,
	// like "-" for a field tagged with `pbi:"-"`.
	Ignore string
	// Untagged will be called with the struct field name to
	// return a property name in case the struct field has no tag named Tag.
	// If Untagged is nil, then the struct field name will be used.
	Untagged func(fieldName string) (name string)
}

// String implements the fmt.Stringer interface for StructFieldNaming.
func (n *StructFieldNaming) String() string {
	if n == nil {
		return `StructFieldNaming{Tag: "", Ignore: ""}`
	}
	return fmt.Sprintf("StructFieldNaming{Tag: %#v, Ignore: %#v}", n.Tag, n.Ignore)
}

// StructFieldName returns the property name for a struct field.
func (n *StructFieldNaming) StructFieldName(structField reflect.StructField) string {
	if n == nil {
		return structField.Name
	}
	if n.Tag != "" {
		if tag, ok := structField.Tag.Lookup(n.Tag); ok {
			if i := strings.IndexByte(tag, ','); i != -1 {
				tag = tag[:i]
			}
			if tag != "" {
				return tag
			}
		}
	}
	if n.Untagged == nil {
		return structField.Name
	}
	return n.Untagged(structField.Name)
}

// IsIgnored returns if the struct field is excluded by the naming.
func (n *StructFieldNaming) IsIgnored(structField reflect.StructField) bool {
	return n != nil && n.Ignore != "" && n.StructFieldName(structField) == n.Ignore
}

// StructFieldValue returns the value of the struct field
// with the passed property name or an invalid reflect.Value.
func (n *StructFieldNaming) StructFieldValue(strct reflect.Value, name string) reflect.Value {
	fields := StructFieldTypes(strct.Type())
	values := StructFieldValues(strct)
	for i := range fields {
		if !n.IsIgnored(fields[i]) && n.StructFieldName(fields[i]) == name {
			return values[i]
		}
	}
	return reflect.Value{}
}

// StructFieldMap returns the exported fields of a struct
// or pointer to a struct as map from property name to field value.
func (n *StructFieldNaming) StructFieldMap(strct any) map[string]any {
	v := reflect.ValueOf(strct)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	fields := StructFieldTypes(v.Type())
	values := StructFieldValues(v)
	m := make(map[string]any, len(fields))
	for i := range fields {
		if n.IsIgnored(fields[i]) {
			continue
		}
		m[n.StructFieldName(fields[i])] = values[i].Interface()
	}
	return m
}

// AssignStructFields assigns the values of properties
// to the fields of the struct pointed to by dest
// using SmartAssign for type conversion.
// Properties without a field are ignored.
// Properties that can't be assigned leave their field unchanged
// and their errors are returned joined after
// all other properties have been assigned.
func (n *StructFieldNaming) AssignStructFields(dest any, properties map[string]any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("expected pointer to struct but got %T", dest)
	}
	v = v.Elem()
	var errs []error
	for name, value := range properties {
		field := n.StructFieldValue(v, name)
		if !field.IsValid() {
			continue
		}
		tmp := reflect.New(field.Type()).Elem()
		if err := SmartAssign(tmp, reflect.ValueOf(value)); err != nil {
			errs = append(errs, fmt.Errorf("property %q: %w", name, err))
			continue
		}
		field.Set(tmp)
	}
	return errors.Join(errs...)
}

// StructFieldTypes returns the exported fields of a struct type
// including the inlined fields of any anonymously embedded structs.
func StructFieldTypes(structType reflect.Type) (fields []reflect.StructField) {
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		switch {
		case field.Anonymous:
			fields = append(fields, StructFieldTypes(field.Type)...)
		case token.IsExported(field.Name):
			fields = append(fields, field)
		}
	}
	return fields
}

// StructFieldValues returns the reflect.Value of exported struct fields
// including the inlined fields of any anonymously embedded structs.
func StructFieldValues(structValue reflect.Value) (values []reflect.Value) {
	if structValue.Kind() == reflect.Pointer {
		structValue = structValue.Elem()
	}
	structType := structValue.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		switch {
		case field.Anonymous:
			values = append(values, StructFieldValues(structValue.Field(i))...)
		case token.IsExported(field.Name):
			values = append(values, structValue.Field(i))
		}
	}
	return values
}
