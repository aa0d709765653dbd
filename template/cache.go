package template

import "sync"

// Compilation is deterministic in the SQL text, so compiled templates can be
// shared process-wide.
var cache = struct {
	sync.RWMutex
	m map[string]*Template
}{m: make(map[string]*Template)}

// Cached returns the compiled template for sqlText, compiling it on first
// use. Subsequent calls with the same text return the same *Template.
func Cached(sqlText string) (*Template, error) {
	cache.RLock()
	t, ok := cache.m[sqlText]
	cache.RUnlock()
	if ok {
		return t, nil
	}

	t, err := Compile(sqlText)
	if err != nil {
		return nil, err
	}

	cache.Lock()
	if prev, ok := cache.m[sqlText]; ok {
		t = prev
	} else {
		cache.m[sqlText] = t
	}
	cache.Unlock()

	return t, nil
}

// ClearCache drops all cached templates.
func ClearCache() {
	cache.Lock()
	cache.m = make(map[string]*Template)
	cache.Unlock()
}
