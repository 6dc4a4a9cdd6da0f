// Package storage persists store contents as whole files. Every save
// rewrites the file atomically; every failure is reported as a
// ledgererror.PersistenceError.
package storage

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec serializes a store's contents.
type Codec interface {
	Name() string
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

// JSONCodec writes indented JSON
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "    ")
}

func (JSONCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// YAMLCodec writes YAML documents
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Marshal(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAMLCodec) Unmarshal(data []byte, v interface{}) error {
	return yaml.Unmarshal(data, v)
}

// CodecFor picks the codec from the file extension: ".json" selects JSON,
// anything else YAML.
func CodecFor(path string) Codec {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSONCodec{}
	}
	return YAMLCodec{}
}
