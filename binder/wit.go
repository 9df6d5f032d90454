package binder

import (
	"reflect"
	"strings"
	"unicode"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/overload/signature"
)

// WITType constrains a parameter to values representable as a WIT type.
type WITType struct {
	Type wit.Type
}

// OfWIT returns a constraint for the WIT type t.
func OfWIT(t wit.Type) WITType {
	return WITType{Type: t}
}

func (w WITType) String() string {
	return witString(w.Type)
}

// WIT accepts Go values whose representation is valid for a WIT type
// constraint, using the same mapping as the component model:
//
//	bool          bool
//	u8..u64       uint8..uint64
//	s8..s64       int8..int64
//	f32, f64      float32, float64
//	char          rune (int32) or uint32
//	string        string
//	list<T>       slice of T
//	record        struct (fields matched by wit tag, name or kebab-case)
//	tuple<...>    struct or array of matching arity
//	option<T>     pointer to T, or nil
//	enum          integer below the case count
//	flags         unsigned integer
//	result        struct
//	variant       struct
//	own, borrow   uint32 handle or struct
//
// Union constraints are accepted if any member accepts; plain Go types fall
// back to Exact.
var WIT Binder = witBinder{}

type witBinder struct{}

func (witBinder) String() string { return "wit" }

func (w witBinder) Accepts(value any, c signature.Constraint) bool {
	if signature.IsUniversal(c) {
		return true
	}
	switch c := c.(type) {
	case WITType:
		if c.Type == nil {
			return false
		}
		return matchWIT(c.Type, reflect.ValueOf(value))
	case signature.Union:
		return c.Some(func(m signature.Constraint) bool {
			return w.Accepts(value, m)
		})
	case signature.Type:
		return matchType(value, c.T)
	}
	return false
}

func matchWIT(t wit.Type, v reflect.Value) bool {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			v = reflect.Value{}
			break
		}
		v = v.Elem()
	}

	if !v.IsValid() {
		td, ok := t.(*wit.TypeDef)
		if !ok {
			return false
		}
		_, isOption := td.Kind.(*wit.Option)
		return isOption
	}

	k := v.Kind()
	switch t := t.(type) {
	case wit.Bool:
		return k == reflect.Bool
	case wit.U8:
		return k == reflect.Uint8
	case wit.S8:
		return k == reflect.Int8
	case wit.U16:
		return k == reflect.Uint16
	case wit.S16:
		return k == reflect.Int16
	case wit.U32:
		return k == reflect.Uint32
	case wit.S32:
		return k == reflect.Int32
	case wit.U64:
		return k == reflect.Uint64
	case wit.S64:
		return k == reflect.Int64
	case wit.F32:
		return k == reflect.Float32
	case wit.F64:
		return k == reflect.Float64
	case wit.Char:
		return k == reflect.Int32 || k == reflect.Uint32
	case wit.String:
		return k == reflect.String
	case *wit.TypeDef:
		if t == nil {
			return false
		}
		return matchTypeDef(t, v)
	}
	return false
}

func matchTypeDef(td *wit.TypeDef, v reflect.Value) bool {
	k := v.Kind()
	switch kind := td.Kind.(type) {
	case *wit.Record:
		if k != reflect.Struct {
			return false
		}
		for _, f := range kind.Fields {
			idx, ok := findGoField(v.Type(), f.Name)
			if !ok || !matchWIT(f.Type, v.Field(idx)) {
				return false
			}
		}
		return true
	case *wit.List:
		if k != reflect.Slice {
			return false
		}
		if v.Len() == 0 {
			elem := v.Type().Elem()
			return elem.Kind() == reflect.Interface || matchWIT(kind.Type, reflect.Zero(elem))
		}
		for i := 0; i < v.Len(); i++ {
			if !matchWIT(kind.Type, v.Index(i)) {
				return false
			}
		}
		return true
	case *wit.Tuple:
		switch k {
		case reflect.Struct:
			if v.NumField() != len(kind.Types) {
				return false
			}
			for i, et := range kind.Types {
				if !matchWIT(et, v.Field(i)) {
					return false
				}
			}
			return true
		case reflect.Array:
			if v.Len() != len(kind.Types) {
				return false
			}
			for i, et := range kind.Types {
				if !matchWIT(et, v.Index(i)) {
					return false
				}
			}
			return true
		}
		return false
	case *wit.Option:
		if k != reflect.Ptr {
			return false
		}
		if v.IsNil() {
			return true
		}
		return matchWIT(kind.Type, v.Elem())
	case *wit.Enum:
		switch k {
		case reflect.Uint8, reflect.Uint16, reflect.Uint32:
			return v.Uint() < uint64(len(kind.Cases))
		case reflect.Int8, reflect.Int16, reflect.Int32:
			n := v.Int()
			return n >= 0 && n < int64(len(kind.Cases))
		}
		return false
	case *wit.Flags:
		if len(kind.Flags) > 64 {
			return false
		}
		switch k {
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		}
		return false
	case *wit.Result, *wit.Variant:
		return k == reflect.Struct
	case *wit.Own, *wit.Borrow:
		return k == reflect.Uint32 || k == reflect.Struct
	case wit.Type:
		return matchWIT(kind, v)
	}
	return false
}

// findGoField matches by: 1) wit:"name" tag, 2) case-insensitive, 3) kebab-to-camel.
func findGoField(goType reflect.Type, witName string) (int, bool) {
	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if !field.IsExported() {
			continue
		}
		if tag := field.Tag.Get("wit"); tag != "" {
			if tag == "-" {
				continue
			}
			if tag == witName {
				return i, true
			}
		}
		if strings.EqualFold(field.Name, witName) {
			return i, true
		}
		if toKebabCase(field.Name) == witName {
			return i, true
		}
	}
	return -1, false
}

func toKebabCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteByte('-')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

func witString(t wit.Type) string {
	switch t := t.(type) {
	case nil:
		return "_"
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if t == nil {
			return "_"
		}
		if t.Name != nil {
			return *t.Name
		}
		return typeDefString(t)
	}
	return "unknown"
}

func typeDefString(td *wit.TypeDef) string {
	switch kind := td.Kind.(type) {
	case *wit.List:
		return "list<" + witString(kind.Type) + ">"
	case *wit.Option:
		return "option<" + witString(kind.Type) + ">"
	case *wit.Tuple:
		parts := make([]string, len(kind.Types))
		for i, et := range kind.Types {
			parts[i] = witString(et)
		}
		return "tuple<" + strings.Join(parts, ", ") + ">"
	case *wit.Result:
		switch {
		case kind.OK == nil && kind.Err == nil:
			return "result"
		case kind.Err == nil:
			return "result<" + witString(kind.OK) + ">"
		}
		return "result<" + witString(kind.OK) + ", " + witString(kind.Err) + ">"
	case *wit.Record:
		parts := make([]string, len(kind.Fields))
		for i, f := range kind.Fields {
			parts[i] = f.Name + ": " + witString(f.Type)
		}
		return "record { " + strings.Join(parts, ", ") + " }"
	case *wit.Enum:
		parts := make([]string, len(kind.Cases))
		for i, c := range kind.Cases {
			parts[i] = c.Name
		}
		return "enum { " + strings.Join(parts, ", ") + " }"
	case *wit.Flags:
		parts := make([]string, len(kind.Flags))
		for i, f := range kind.Flags {
			parts[i] = f.Name
		}
		return "flags { " + strings.Join(parts, ", ") + " }"
	case *wit.Variant:
		parts := make([]string, len(kind.Cases))
		for i, c := range kind.Cases {
			if c.Type == nil {
				parts[i] = c.Name
				continue
			}
			parts[i] = c.Name + "(" + witString(c.Type) + ")"
		}
		return "variant { " + strings.Join(parts, ", ") + " }"
	case *wit.Own:
		return "own<" + witString(kind.Type) + ">"
	case *wit.Borrow:
		return "borrow<" + witString(kind.Type) + ">"
	case wit.Type:
		return witString(kind)
	}
	return "unknown"
}
