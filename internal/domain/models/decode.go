package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/safdamla/pressbook/internal/domain/numeric"
)

var (
	snapshotType = reflect.TypeOf(Snapshot{})
	timeType     = reflect.TypeOf(time.Time{})
)

// DecodeSnapshotJSON decodes a snapshot document leniently: every field the
// schema types as numeric passes through numeric.Coerce first, so a legacy
// export carrying "150" or null where a number belongs degrades to the
// coerced value instead of failing the whole read.
func DecodeSnapshotJSON(data []byte) (Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot document: %w", err)
	}

	buf, err := json.Marshal(NormalizeDocument(raw))
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to re-encode snapshot document: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(buf, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot document: %w", err)
	}
	return snap, nil
}

// NormalizeDocument rewrites a decoded snapshot document in place so that
// every field the Snapshot schema declares as float64 holds a coerced
// number. It accepts both JSON shapes (map[string]any, []any) and BSON
// shapes (bson.M, primitive.A); keys the schema does not know are left
// untouched.
func NormalizeDocument(doc map[string]any) map[string]any {
	normalized, _ := coerceValue(doc, snapshotType).(map[string]any)
	return normalized
}

func coerceValue(value any, t reflect.Type) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return value
	}

	switch t.Kind() {
	case reflect.Float64:
		return numeric.Coerce(value)
	case reflect.Struct:
		doc, ok := asDocument(value)
		if !ok {
			return value
		}
		fields := fieldTypes(t)
		for key, v := range doc {
			if ft, ok := fields[key]; ok {
				doc[key] = coerceValue(v, ft)
			}
		}
		return value
	case reflect.Slice:
		arr, ok := asArray(value)
		if !ok {
			return value
		}
		for i, v := range arr {
			arr[i] = coerceValue(v, t.Elem())
		}
		return value
	default:
		return value
	}
}

func asDocument(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case bson.M:
		return m, true
	default:
		return nil, false
	}
}

func asArray(value any) ([]any, bool) {
	switch s := value.(type) {
	case []any:
		return s, true
	case primitive.A:
		return s, true
	default:
		return nil, false
	}
}

// fieldTypes maps a struct's json and bson document keys to field types.
func fieldTypes(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type, t.NumField()*2)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		for _, tag := range []string{f.Tag.Get("json"), f.Tag.Get("bson")} {
			name, _, _ := strings.Cut(tag, ",")
			if name == "" || name == "-" {
				continue
			}
			fields[name] = f.Type
		}
	}
	return fields
}
