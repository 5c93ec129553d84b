package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
)

type Response struct {
	Code    int
	Header  http.Header
	Body    JSON
	RawBody []byte
}

type Parameter map[string]string

func (p Parameter) ToReader() (io.Reader, string, error) {
	return strings.NewReader(p.Encode()), "application/x-www-form-urlencoded", nil
}

// Encode sorts the parameters by key.
func (p Parameter) Encode() string {
	values := url.Values{}
	for key, value := range p {
		values.Set(key, value)
	}

	return values.Encode()
}

type JSON map[string]any

func (j JSON) ToReader() (io.Reader, string, error) {
	b, err := json.Marshal(j)
	return bytes.NewReader(b), "application/json", err
}

// Get walks dotted keys into nested objects, e.g. "data.account".
func (j JSON) Get(path string) (any, error) {
	var current any = map[string]any(j)
	walked := ""
	for _, key := range strings.Split(path, ".") {
		object, ok := asObject(current)
		if !ok {
			return nil, fmt.Errorf("field %s is %T, not an object", walked, current)
		}

		if walked != "" {
			walked += "."
		}
		walked += key

		if current, ok = object[key]; !ok {
			return nil, fmt.Errorf("not found field %s", walked)
		}
	}

	return current, nil
}

// GetJSON returns nil without error for a null field.
func (j JSON) GetJSON(path string) (JSON, error) {
	value, err := j.Get(path)
	if err != nil || value == nil {
		return nil, err
	}

	object, ok := asObject(value)
	if !ok {
		return nil, fmt.Errorf("field %s is %T, not an object", path, value)
	}
	return object, nil
}

// GetInt accepts JSON numbers without a fractional part.
func (j JSON) GetInt(path string) (int, error) {
	value, err := j.Get(path)
	if err != nil {
		return 0, err
	}

	switch n := value.(type) {
	case int:
		return n, nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("field %s is not an integer (%v)", path, value)
}

// GetString returns "" without error for a null field.
func (j JSON) GetString(path string) (string, error) {
	value, err := j.Get(path)
	if err != nil || value == nil {
		return "", err
	}

	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %s is %T, not a string", path, value)
	}
	return s, nil
}

func asObject(value any) (JSON, bool) {
	switch v := value.(type) {
	case JSON:
		return v, true
	case map[string]any:
		return v, true
	}
	return nil, false
}

func decodeJSON(body []byte) (JSON, error) {
	var result JSON
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return result, nil
}
