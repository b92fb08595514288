/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/suparena/adminstore/errors"
)

// Delimiter separates the tag and components of an encoded key.
const Delimiter = "#"

// Encode joins tag and components with Delimiter. String components are
// lower-cased and percent-escaped so they can never contain the delimiter;
// numbers and booleans are written as-is.
func Encode(tag Tag, components ...any) string {
	var b strings.Builder
	b.WriteString(tag.name)
	for _, c := range components {
		b.WriteString(Delimiter)
		b.WriteString(component(c))
	}
	return b.String()
}

// EncodePrefix is Encode with a guaranteed trailing delimiter, for use as a
// begins_with prefix.
func EncodePrefix(tag Tag, components ...any) string {
	k := Encode(tag, components...)
	if strings.HasSuffix(k, Delimiter) {
		return k
	}
	return k + Delimiter
}

// Decode splits key into its tag and unescaped components. An empty key
// decodes to nil without error.
func Decode(key string) ([]string, error) {
	if key == "" {
		return nil, nil
	}
	segments := strings.Split(key, Delimiter)
	if segments[0] == "" {
		return nil, errors.NewMalformedKeyError(key, "missing type tag")
	}
	out := make([]string, len(segments))
	for i, s := range segments {
		v, err := url.PathUnescape(s)
		if err != nil {
			return nil, errors.NewMalformedKeyError(key, fmt.Sprintf("segment %d: %v", i, err))
		}
		out[i] = v
	}
	return out, nil
}

// HasPrefix reports whether value is a key of the given tag.
func HasPrefix(value string, tag Tag) bool {
	return strings.HasPrefix(value, EncodePrefix(tag))
}

func component(v any) string {
	switch c := v.(type) {
	case string:
		return escape(c)
	case bool:
		return strconv.FormatBool(c)
	case int:
		return strconv.Itoa(c)
	case int8:
		return strconv.FormatInt(int64(c), 10)
	case int16:
		return strconv.FormatInt(int64(c), 10)
	case int32:
		return strconv.FormatInt(int64(c), 10)
	case int64:
		return strconv.FormatInt(c, 10)
	case uint:
		return strconv.FormatUint(uint64(c), 10)
	case uint8:
		return strconv.FormatUint(uint64(c), 10)
	case uint16:
		return strconv.FormatUint(uint64(c), 10)
	case uint32:
		return strconv.FormatUint(uint64(c), 10)
	case uint64:
		return strconv.FormatUint(c, 10)
	case float32:
		return strconv.FormatFloat(float64(c), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case fmt.Stringer:
		return escape(c.String())
	default:
		return escape(fmt.Sprint(c))
	}
}

// escape folds case on the raw letters and again on the escape hex digits.
func escape(s string) string {
	return strings.ToLower(url.PathEscape(strings.ToLower(s)))
}
