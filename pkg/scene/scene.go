package scene

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/layoutkit/pkg/constraint"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/generate"
)

// Scene is a declarative layout: an item tree under one root container and
// the constraint patterns to generate over it.
type Scene struct {
	Name        string  `toml:"name" yaml:"name"`
	Root        string  `toml:"root" yaml:"root"`
	Items       []Item  `toml:"items" yaml:"items"`
	Ops         []Op    `toml:"ops" yaml:"ops"`
	Effects     []Named `toml:"effects" yaml:"effects"`
	Recognizers []Named `toml:"recognizers" yaml:"recognizers"`
}

// Item declares a node. An empty Parent means the root container; an empty
// ID is replaced by a generated UUID, which makes the item unreferenceable.
type Item struct {
	ID     string `toml:"id" yaml:"id"`
	Parent string `toml:"parent" yaml:"parent"`
	Label  string `toml:"label" yaml:"label"`
}

// Named declares an effect or recognizer attached to the root container.
type Named struct {
	Name string `toml:"name" yaml:"name"`
}

// Op kinds.
const (
	OpAlign       = "align"
	OpDistribute  = "distribute"
	OpWidth       = "width"
	OpHeight      = "height"
	OpWidthRange  = "width-range"
	OpHeightRange = "height-range"
	OpAspect      = "aspect"
)

// Op declares one generator invocation. Which fields apply depends on Kind:
//
//	align         Items, Attribute (or Attributes for a composite)
//	distribute    Items, Direction, Spacing
//	width/height  Items (one constraint per item), Value
//	*-range       Items, Min, Max
//	aspect        Items, Ratio, Offset (height = ratio * width + offset)
//
// Priority and Identifier, when set, are applied to every generated constraint.
type Op struct {
	Kind       string   `toml:"kind" yaml:"kind"`
	Items      []string `toml:"items" yaml:"items"`
	Attribute  string   `toml:"attribute" yaml:"attribute"`
	Attributes []string `toml:"attributes" yaml:"attributes"`
	Direction  string   `toml:"direction" yaml:"direction"`
	Spacing    float64  `toml:"spacing" yaml:"spacing"`
	Value      float64  `toml:"value" yaml:"value"`
	Min        float64  `toml:"min" yaml:"min"`
	Max        float64  `toml:"max" yaml:"max"`
	Ratio      float64  `toml:"ratio" yaml:"ratio"`
	Offset     float64  `toml:"offset" yaml:"offset"`
	Priority   int      `toml:"priority" yaml:"priority"`
	Identifier string   `toml:"identifier" yaml:"identifier"`
}

// Format is a scene document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errs.New(errs.ErrCodeUnsupported, "unsupported scene extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "scene %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidScene, err, "read %s", path)
	}
	s, err := Decode(data, format)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidScene, err, "load %s", path)
	}
	return s, nil
}

// Decode parses and validates a scene document. Keys the scene does not
// define are rejected, so a misspelled field fails instead of decoding as
// its zero value.
func Decode(data []byte, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidScene, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errs.New(errs.ErrCodeInvalidScene, "decode toml: unknown keys %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return nil, errs.Wrap(errs.ErrCodeInvalidScene, err, "decode yaml")
		}
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported scene format %q", format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that IDs are well formed and unique, parents and op items
// refer to declared items, and op kinds, attributes and directions are known.
// Numeric ranges are left to the generators.
func (s *Scene) Validate() error {
	if err := errs.ValidateItemID(s.Root); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidScene, err, "root")
	}

	known := map[string]bool{s.Root: true}
	for i, it := range s.Items {
		if it.ID == "" {
			continue
		}
		if err := errs.ValidateItemID(it.ID); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidScene, err, "item %d", i)
		}
		if known[it.ID] {
			return errs.New(errs.ErrCodeInvalidScene, "duplicate item %q", it.ID)
		}
		known[it.ID] = true
	}
	for _, it := range s.Items {
		if it.Parent != "" && !known[it.Parent] {
			return errs.New(errs.ErrCodeInvalidScene, "item %q has unknown parent %q", it.ID, it.Parent)
		}
		if it.Parent != "" && it.Parent == it.ID {
			return errs.New(errs.ErrCodeInvalidScene, "item %q is its own parent", it.ID)
		}
	}

	for i, op := range s.Ops {
		for _, ref := range op.Items {
			if !known[ref] {
				return errs.New(errs.ErrCodeInvalidScene, "op %d (%s) references unknown item %q", i, op.Kind, ref)
			}
		}
		if err := op.validate(); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidScene, err, "op %d (%s)", i, op.Kind)
		}
	}

	for _, n := range append(append([]Named{}, s.Effects...), s.Recognizers...) {
		if n.Name == "" {
			return errs.New(errs.ErrCodeInvalidScene, "effects and recognizers need a name")
		}
	}
	return nil
}

func (op Op) validate() error {
	if op.Priority != 0 {
		if err := errs.ValidatePriority(op.Priority); err != nil {
			return err
		}
	}
	switch op.Kind {
	case OpAlign:
		_, err := op.alignAttributes()
		return err
	case OpDistribute:
		_, err := generate.ParseDirection(op.Direction)
		return err
	case OpWidth, OpHeight, OpWidthRange, OpHeightRange, OpAspect:
		if len(op.Items) == 0 {
			return errs.New(errs.ErrCodeInsufficientItems, "%s needs at least one item", op.Kind)
		}
		return nil
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown op kind %q", op.Kind)
	}
}

func (op Op) alignAttributes() ([]constraint.Attribute, error) {
	names := op.Attributes
	if op.Attribute != "" {
		names = append([]string{op.Attribute}, names...)
	}
	if len(names) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidAttribute, "align needs an attribute")
	}
	attrs := make([]constraint.Attribute, len(names))
	for i, name := range names {
		a, err := constraint.ParseAttribute(name)
		if err != nil {
			return nil, err
		}
		if a == constraint.NotAnAttribute {
			return nil, errs.New(errs.ErrCodeInvalidAttribute, "cannot align %q", name)
		}
		attrs[i] = a
	}
	return attrs, nil
}
