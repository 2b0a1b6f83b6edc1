package searchcache

import (
	"bytes"
	"encoding/json"
)

// Key returns the canonical cache key for params. Object keys are sorted so
// that maps and structs with reordered fields collapse to the same key.
// Params that cannot be serialised report ok=false and are never cached.
func Key(params any) (key string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			key, ok = "", false
		}
	}()
	raw, err := json.Marshal(params)
	if err != nil {
		return "", false
	}
	var generic interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return "", false
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", false
	}
	return string(canonical), true
}
