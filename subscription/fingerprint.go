package subscription

import (
	"encoding/json"
	"hash/fnv"
	"sort"
	"strconv"
)

// unhashable is returned by Fingerprint when args contains a value
// encoding/json cannot represent (a func, chan or complex number, for
// example); Registry falls back to a structural
// reflect.DeepEqual comparison for subscriptions fingerprinted this
// way rather than rejecting the registration outright.
const unhashable = "\x00unhashable"

// Fingerprint reduces a coerced argument map to a short string two
// subscriptions opened with equal arguments will always share: it
// canonicalises args by sorting keys before JSON-encoding them, then
// hashes the encoding with FNV-1a. Map iteration order never leaks
// into the result, and equal arguments always produce equal
// fingerprints regardless of the order client code happened to build
// the map in.
func Fingerprint(args map[string]interface{}) string {
	canonical, err := canonicalJSON(args)
	if err != nil {
		return unhashable
	}
	h := fnv.New64a()
	h.Write(canonical)
	return strconv.FormatUint(h.Sum64(), 16)
}

// canonicalJSON marshals v with every map's keys sorted, so semantically
// identical argument maps built in different orders encode identically.
func canonicalJSON(v interface{}) ([]byte, error) {
	switch v := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf := []byte{'{'}
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf = append(buf, kb...)
			buf = append(buf, ':')
			vb, err := canonicalJSON(v[k])
			if err != nil {
				return nil, err
			}
			buf = append(buf, vb...)
		}
		return append(buf, '}'), nil
	case []interface{}:
		buf := []byte{'['}
		for i, e := range v {
			if i > 0 {
				buf = append(buf, ',')
			}
			eb, err := canonicalJSON(e)
			if err != nil {
				return nil, err
			}
			buf = append(buf, eb...)
		}
		return append(buf, ']'), nil
	default:
		return json.Marshal(v)
	}
}
