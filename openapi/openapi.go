package openapi

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Document wraps the served API description.
type Document struct {
	spec *openapi3.T
}

func New(title, version string) *Document {
	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
	}

	return &Document{spec: spec}
}

// AddOperation registers one method+path with a summary and the
// response description for its success status.
func (d *Document) AddOperation(method, path, summary string, status int, responseDesc string) {
	op := openapi3.NewOperation()
	op.Summary = summary
	op.AddResponse(status, openapi3.NewResponse().WithDescription(responseDesc))

	item := d.spec.Paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
		d.spec.Paths.Set(path, item)
	}
	item.SetOperation(method, op)
}

func (d *Document) JSON() ([]byte, error) {
	data, err := d.spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OpenAPI spec: %w", err)
	}
	return data, nil
}

func (d *Document) YAML() ([]byte, error) {
	data, err := d.JSON()
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode OpenAPI spec: %w", err)
	}

	out, err := yaml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OpenAPI spec to YAML: %w", err)
	}
	return out, nil
}
