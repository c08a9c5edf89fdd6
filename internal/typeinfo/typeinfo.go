package typeinfo

import (
	"database/sql"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/canonical/aqueryon/internal/expr"
)

var cacheMutex sync.RWMutex
var cache = make(map[reflect.Type]*Info)

// GetTypeInfo returns the column information of the struct type of value,
// generating and caching it as required. Pointers to structs, including nil
// ones, are followed to the struct type.
func GetTypeInfo(value any) (*Info, error) {
	if value == (any)(nil) {
		return &Info{}, errors.New("cannot reflect nil value")
	}

	t := reflect.TypeOf(value)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	cacheMutex.RLock()
	info, found := cache[t]
	cacheMutex.RUnlock()
	if found {
		return info, nil
	}

	info, err := generate(t)
	if err != nil {
		return &Info{}, err
	}

	cacheMutex.Lock()
	cache[t] = info
	cacheMutex.Unlock()

	return info, nil
}

// generate produces and returns the column information for the input struct
// type.
func generate(typ reflect.Type) (*Info, error) {
	// Column information is only generated for structs.
	if typ.Kind() != reflect.Struct {
		return &Info{}, errors.Errorf("can only reflect struct type, got %s", typ.Kind())
	}

	info := Info{NameToColumn: make(map[string]Column)}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		// Fields without a "db" tag are not columns.
		tag := field.Tag.Get("db")
		if tag == "" {
			continue
		}
		name, nullable, err := parseTag(tag)
		if err != nil {
			return &Info{}, errors.Wrapf(err, "cannot reflect field %s of %s", field.Name, typ.Name())
		}
		if _, ok := info.NameToColumn[name]; ok {
			return &Info{}, errors.Errorf("cannot reflect %s: column %q is tagged twice", typ.Name(), name)
		}
		sqlType, nullableType := sqlTypeOf(field.Type)
		col := Column{
			Name:     name,
			Type:     sqlType,
			Nullable: nullable || nullableType,
		}
		info.Columns = append(info.Columns, col)
		info.NameToColumn[name] = col
	}

	return &info, nil
}

var (
	nullStringType = reflect.TypeOf(sql.NullString{})
	nullInt64Type  = reflect.TypeOf(sql.NullInt64{})
	nullInt32Type  = reflect.TypeOf(sql.NullInt32{})
	nullInt16Type  = reflect.TypeOf(sql.NullInt16{})
	nullByteType   = reflect.TypeOf(sql.NullByte{})
	nullBoolType   = reflect.TypeOf(sql.NullBool{})
)

// sqlTypeOf returns the SQL type of a column stored in a field of type t, and
// whether the field can hold NULL.
func sqlTypeOf(t reflect.Type) (expr.SQLType, bool) {
	nullable := false
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		nullable = true
	}

	switch t {
	case nullStringType:
		return expr.TypeString, true
	case nullInt64Type, nullInt32Type, nullInt16Type:
		return expr.TypeInt, true
	case nullByteType:
		return expr.TypeUint, true
	case nullBoolType:
		return expr.TypeBool, true
	}

	switch t.Kind() {
	case reflect.String:
		return expr.TypeString, nullable
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return expr.TypeInt, nullable
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return expr.TypeUint, nullable
	case reflect.Bool:
		return expr.TypeBool, nullable
	}
	return expr.TypeAny, nullable
}

var validColNameRx = regexp.MustCompile(`^([a-zA-Z_])+([a-zA-Z_0-9])*$`)

// parseTag parses the input tag string and returns its
// name and whether it contains the "nullable" option.
func parseTag(tag string) (string, bool, error) {
	options := strings.Split(tag, ",")

	var nullable bool
	// Refuse to parse if there are more than 2 items.
	if len(options) > 2 {
		return "", false, errors.New("too many options in 'db' tag")
	}
	if len(options) == 2 {
		if strings.ToLower(options[1]) != "nullable" {
			return "", false, errors.Errorf("unexpected tag value %q", options[1])
		}
		nullable = true
	}

	name := options[0]
	if len(name) == 0 {
		return "", false, errors.New("empty db tag")
	}

	if !validColNameRx.MatchString(name) {
		return "", false, errors.New("invalid column name in 'db' tag")
	}

	return name, nullable, nil
}
