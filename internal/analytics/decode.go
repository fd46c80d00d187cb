package analytics

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seoreport/internal/logger"
)

// ErrNotObject is returned when the payload is not a JSON object (or an item
// list whose first entry is one).
var ErrNotObject = errors.New("analytics: snapshot must be a JSON object")

// Number is a lenient numeric field: JSON numbers and numeric strings are
// accepted, anything else (null, bool, objects, garbage) decodes to 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = Number(v)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if v, err := strconv.ParseFloat(string(data), 64); err == nil {
			*n = Number(v)
		}
	}
	return nil
}

// Float returns the value as float64.
func (n Number) Float() float64 { return float64(n) }

var sectionNames = []string{"domainRank", "keywords", "backlinks", "onPage", "metadata"}

// UnmarshalJSON accepts each section either flat or wrapped under its own
// name ({"domainRank": {"domainRank": {...}}}), and skips mistyped fields.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		return ErrNotObject
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Snapshot
	targets := map[string]any{
		"domainRank": &out.DomainRank,
		"keywords":   &out.Keywords,
		"backlinks":  &out.Backlinks,
		"onPage":     &out.OnPage,
		"metadata":   &out.Metadata,
	}
	for _, name := range sectionNames {
		body, ok := raw[name]
		if !ok {
			continue
		}
		decodeSection(name, unwrapSection(body, name), targets[name])
	}
	*s = out
	return nil
}

func decodeSection(name string, body json.RawMessage, dst any) {
	if !isObject(body) {
		logger.Debugf("analytics: 跳过非对象分区 %s", name)
		return
	}
	err := json.Unmarshal(body, dst)
	if err == nil {
		return
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		// 类型不符的字段保持零值，其余字段照常解析
		logger.Debugf("analytics: %s 字段类型不符已忽略: %v", name, err)
		return
	}
	logger.Debugf("analytics: %s 解析失败: %v", name, err)
}

func unwrapSection(body json.RawMessage, name string) json.RawMessage {
	if !isObject(body) {
		return body
	}
	var inner map[string]json.RawMessage
	if err := json.Unmarshal(body, &inner); err != nil {
		return body
	}
	if nested, ok := inner[name]; ok && isObject(nested) {
		return nested
	}
	return body
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

// Decode parses a snapshot payload. Besides a bare object it accepts a
// pipeline item ({"json": {...}}) or a list of items, using the first one.
func Decode(data []byte) (Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Snapshot{}, ErrNotObject
	}
	if data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return Snapshot{}, fmt.Errorf("analytics: 解析快照列表失败: %w", err)
		}
		if len(items) == 0 {
			return Snapshot{}, ErrNotObject
		}
		data = bytes.TrimSpace(items[0])
	}
	if !isObject(data) {
		return Snapshot{}, ErrNotObject
	}
	if !json.Valid(data) {
		var fields map[string]json.RawMessage
		err := json.Unmarshal(data, &fields)
		return Snapshot{}, fmt.Errorf("analytics: 解析快照失败: %w", err)
	}
	data = unwrapItem(data)
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("analytics: 解析快照失败: %w", err)
	}
	return snap, nil
}

// DecodeReader reads the whole stream and decodes it.
func DecodeReader(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("analytics: 读取快照失败: %w", err)
	}
	return Decode(data)
}

func unwrapItem(data []byte) []byte {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return data
	}
	for _, name := range sectionNames {
		if _, ok := top[name]; ok {
			return data
		}
	}
	if inner, ok := top["json"]; ok && isObject(inner) {
		return inner
	}
	return data
}
