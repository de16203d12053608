package forms

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/pkg/models"
)

var (
	specificationsType = reflect.TypeOf(models.Specifications(nil))
	int64PtrType       = reflect.TypeOf((*int64)(nil))
	stringPtrType      = reflect.TypeOf((*string)(nil))
	stringSliceType    = reflect.TypeOf([]string(nil))
	int64SliceType     = reflect.TypeOf([]int64(nil))
)

// SplitList splits comma-separated input and trims each entry. Empty entries
// are dropped.
func SplitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SplitIDs splits comma-separated input into ids, dropping entries that are
// not integers.
func SplitIDs(value string) []int64 {
	out := []int64{}
	for _, part := range SplitList(value) {
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// JoinList renders a list the way SplitList reads it.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// JoinIDs renders ids the way SplitIDs reads them.
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}

// Fields lists the settable JSON field names of record type T.
func Fields[T any]() []string {
	var zero T
	t := reflect.TypeOf(zero)
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.IsExported() {
			names = append(names, jsonName(f))
		}
	}
	return names
}

// SetField assigns text input to the field of *target whose JSON name is name.
// Lists are read as comma-separated values; an empty id or optional string
// clears the field.
func SetField(target interface{}, name, value string) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return errors.NewInvalidForm(map[string]string{"_": "target must be a struct pointer"})
	}
	v = v.Elem()

	field, ok := fieldByJSONName(v, name)
	if !ok {
		return errors.NewInvalidForm(map[string]string{name: "is not a field (use one of " + strings.Join(sortedNames(v.Type()), ", ") + ")"})
	}

	switch field.Type() {
	case int64PtrType:
		if strings.TrimSpace(value) == "" {
			field.Set(reflect.Zero(int64PtrType))
			return nil
		}
		id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return errors.NewInvalidForm(map[string]string{name: "must be an integer"})
		}
		field.Set(reflect.ValueOf(&id))
		return nil
	case stringPtrType:
		field.Set(reflect.ValueOf(models.String(value)))
		return nil
	case stringSliceType:
		field.Set(reflect.ValueOf(SplitList(value)))
		return nil
	case int64SliceType:
		field.Set(reflect.ValueOf(SplitIDs(value)))
		return nil
	case specificationsType:
		var specs models.Specifications
		if strings.TrimSpace(value) != "" {
			if err := json.Unmarshal([]byte(value), &specs); err != nil {
				return errors.NewInvalidSpecifications(value, err)
			}
		}
		field.Set(reflect.ValueOf(specs))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64, reflect.Int32:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return errors.NewInvalidForm(map[string]string{name: "must be an integer"})
		}
		field.SetInt(n)
	default:
		return errors.NewInvalidForm(map[string]string{name: "cannot be set from text"})
	}
	return nil
}

func fieldByJSONName(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() && jsonName(f) == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func sortedNames(t reflect.Type) []string {
	var names []string
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.IsExported() {
			names = append(names, jsonName(f))
		}
	}
	sort.Strings(names)
	return names
}
