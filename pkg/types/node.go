// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PropertyType is the UI type of a node parameter.
type PropertyType string

const (
	PropertyOptions PropertyType = "options"
	PropertyString  PropertyType = "string"
	PropertyNumber  PropertyType = "number"
	PropertyBoolean PropertyType = "boolean"
)

// PropertyOption is one choice of an options-typed parameter.
type PropertyOption struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// NodeProperty describes a single node parameter as the host UI renders it.
type NodeProperty struct {
	DisplayName string           `json:"displayName" yaml:"display_name"`
	Name        string           `json:"name" yaml:"name"`
	Type        PropertyType     `json:"type" yaml:"type"`
	Default     any              `json:"default" yaml:"default"`
	Required    bool             `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Options     []PropertyOption `json:"options,omitempty" yaml:"options,omitempty"`
	MinValue    *int             `json:"minValue,omitempty" yaml:"min_value,omitempty"`
	MaxValue    *int             `json:"maxValue,omitempty" yaml:"max_value,omitempty"`

	// ShowWhen lists the parameter values that must hold for this property
	// to be displayed, keyed by parameter name.
	ShowWhen map[string][]any `json:"showWhen,omitempty" yaml:"show_when,omitempty"`
}

// NodeDescription is the descriptor a node registers with the host.
type NodeDescription struct {
	DisplayName string         `json:"displayName" yaml:"display_name"`
	Name        string         `json:"name" yaml:"name"`
	Group       []string       `json:"group" yaml:"group"`
	Version     int            `json:"version" yaml:"version"`
	Description string         `json:"description" yaml:"description"`
	Inputs      []string       `json:"inputs" yaml:"inputs"`
	Outputs     []string       `json:"outputs" yaml:"outputs"`
	Properties  []NodeProperty `json:"properties" yaml:"properties"`
}

// Property returns the property with the given name.
func (d NodeDescription) Property(name string) (NodeProperty, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return NodeProperty{}, false
}
