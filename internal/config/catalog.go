package config

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed datasets.yaml
var defaultCatalog []byte

// FieldType is the storage type of a dataset field
type FieldType string

const (
	FieldInteger FieldType = "integer"
	FieldReal    FieldType = "real"
	FieldText    FieldType = "text"
	FieldFlag    FieldType = "flag" // Stored as 0/1
)

// Field describes one column of a dataset and the aggregations allowed on it
type Field struct {
	Name        string    `yaml:"name"`
	Type        FieldType `yaml:"type"`
	Numeric     bool      `yaml:"numeric"`
	Categorical bool      `yaml:"categorical"`
}

// Dataset describes a queryable record collection
type Dataset struct {
	Name   string  `yaml:"name"`
	Table  string  `yaml:"table"`
	Fields []Field `yaml:"fields"`

	fields map[string]Field
}

// Catalog is the allow-list of datasets and fields, validated once at load
type Catalog struct {
	Datasets []*Dataset `yaml:"datasets"`

	index map[string]*Dataset
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadCatalog reads the catalog at path, or the embedded default when path is empty
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading datasets file: %w", err)
		}
	}
	return ParseCatalog(data)
}

// ParseCatalog parses and validates catalog YAML
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing datasets file: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("catalog defines no datasets")
	}

	c.index = make(map[string]*Dataset, len(c.Datasets))
	for _, d := range c.Datasets {
		if d.Name == "" {
			return fmt.Errorf("dataset without name")
		}
		if _, dup := c.index[d.Name]; dup {
			return fmt.Errorf("duplicate dataset %q", d.Name)
		}
		if d.Table == "" {
			d.Table = d.Name
		}
		if !identifierPattern.MatchString(d.Table) {
			return fmt.Errorf("dataset %q: invalid table name %q", d.Name, d.Table)
		}

		d.fields = make(map[string]Field, len(d.Fields))
		for _, f := range d.Fields {
			if f.Name == "" || strings.ContainsAny(f.Name, "\"\x00") {
				return fmt.Errorf("dataset %q: invalid field name %q", d.Name, f.Name)
			}
			if _, dup := d.fields[f.Name]; dup {
				return fmt.Errorf("dataset %q: duplicate field %q", d.Name, f.Name)
			}
			switch f.Type {
			case FieldInteger, FieldReal:
			case FieldText, FieldFlag:
				if f.Numeric {
					return fmt.Errorf("dataset %q: field %q of type %s cannot be numeric", d.Name, f.Name, f.Type)
				}
			default:
				return fmt.Errorf("dataset %q: field %q has unknown type %q", d.Name, f.Name, f.Type)
			}
			d.fields[f.Name] = f
		}

		c.index[d.Name] = d
	}
	return nil
}

// Dataset looks up a dataset by name
func (c *Catalog) Dataset(name string) (*Dataset, bool) {
	d, ok := c.index[name]
	return d, ok
}

// Names returns the dataset names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Datasets))
	for _, d := range c.Datasets {
		names = append(names, d.Name)
	}
	return names
}

// Field looks up a field by name
func (d *Dataset) Field(name string) (Field, bool) {
	f, ok := d.fields[name]
	return f, ok
}

// IsNumeric reports whether name may be summarized numerically
func (d *Dataset) IsNumeric(name string) bool {
	f, ok := d.fields[name]
	return ok && f.Numeric
}

// IsCategorical reports whether name may be used in frequency tables
func (d *Dataset) IsCategorical(name string) bool {
	f, ok := d.fields[name]
	return ok && f.Categorical
}
