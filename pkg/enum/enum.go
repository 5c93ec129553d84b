package enum

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	mu          sync.RWMutex
	enumManager = map[reflect.Type]map[string]any{}
)

// New registers value as a valid member of its string-based enum type and
// returns it unchanged, so it can be used in var declarations.
func New[T ~string](value T) T {
	mu.Lock()
	defer mu.Unlock()

	t := reflect.TypeOf(value)
	if _, ok := enumManager[t]; !ok {
		enumManager[t] = map[string]any{}
	}

	enumManager[t][string(value)] = value
	return value
}

func ToEnum[T ~string](s string) (T, error) {
	mu.RLock()
	defer mu.RUnlock()

	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	v, ok := e[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return v.(T), nil
}

// Values returns every registered member of the enum type T.
func Values[T ~string]() []T {
	mu.RLock()
	defer mu.RUnlock()

	var defaultT T
	result := []T{}
	for _, v := range enumManager[reflect.TypeOf(defaultT)] {
		result = append(result, v.(T))
	}

	return result
}
