package owlery

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/containerq/backend/internal/domain"
)

// instancesResponse is the JSON-LD document returned by kbs/{kb}/instances
type instancesResponse struct {
	ID          string          `json:"@id"`
	HasInstance json.RawMessage `json:"hasInstance"`
}

// jsonLDNode is an embedded node reference, e.g. {"@id": "..."}
type jsonLDNode struct {
	ID string `json:"@id"`
}

// MapInstances converts an instances response body into instance URIs.
// JSON-LD compaction may render a single instance as a bare string or node
// rather than a one-element array; all are accepted. A missing field means
// no instances. The body itself must be a JSON object.
func MapInstances(body []byte) ([]domain.InstanceURI, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("response is not a JSON object")
	}

	var resp instancesResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(resp.HasInstance)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []domain.InstanceURI{}, nil
	}

	switch raw[0] {
	case '"', '{':
		uri, err := mapInstance(raw)
		if err != nil {
			return nil, fmt.Errorf("hasInstance: %w", err)
		}
		return []domain.InstanceURI{uri}, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		instances := make([]domain.InstanceURI, 0, len(items))
		for i, item := range items {
			uri, err := mapInstance(item)
			if err != nil {
				return nil, fmt.Errorf("hasInstance[%d]: %w", i, err)
			}
			instances = append(instances, uri)
		}
		return instances, nil
	default:
		return nil, fmt.Errorf("unexpected hasInstance value: %s", string(raw))
	}
}

// mapInstance decodes a single IRI string or {"@id": ...} node
func mapInstance(item json.RawMessage) (domain.InstanceURI, error) {
	item = bytes.TrimSpace(item)
	if len(item) == 0 || bytes.Equal(item, []byte("null")) {
		return "", fmt.Errorf("null instance")
	}

	if item[0] == '"' {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return "", err
		}
		if s == "" {
			return "", fmt.Errorf("empty instance IRI")
		}
		return domain.InstanceURI(s), nil
	}

	var node jsonLDNode
	if err := json.Unmarshal(item, &node); err != nil {
		return "", err
	}
	if node.ID == "" {
		return "", fmt.Errorf("instance node without @id")
	}
	return domain.InstanceURI(node.ID), nil
}
