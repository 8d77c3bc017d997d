package manifest

//go:generate mockgen -destination=mocks/decoder_mock.go -package=mocks . Decoder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Decoder turns raw manifest bytes into top-level key-value assignments.
// Values use the plain Go shapes string, bool, int64, float64, []any and
// map[string]any.
type Decoder interface {
	Decode(data []byte, filename string) (map[string]any, error)
}

// DecoderFunc adapts a function to the Decoder interface
type DecoderFunc func(data []byte, filename string) (map[string]any, error)

// Decode calls f
func (f DecoderFunc) Decode(data []byte, filename string) (map[string]any, error) {
	return f(data, filename)
}

// defaultDecoders maps lower-cased extensions to decoders
func defaultDecoders() map[string]Decoder {
	assignments := DecoderFunc(decodeAssignments)
	return map[string]Decoder{
		"":          assignments,
		".py":       assignments,
		".hcl":      assignments,
		".manifest": assignments,
		".yaml":     DecoderFunc(decodeYAML),
		".yml":      DecoderFunc(decodeYAML),
		".json":     DecoderFunc(decodeJSON),
		".toml":     DecoderFunc(decodeTOML),
	}
}

// decodeAssignments parses `key = value` statements. The grammar is HCL
// native syntax restricted to literal expressions.
func decodeAssignments(data []byte, filename string) (map[string]any, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, diags.Error())
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, diags.Error())
	}

	raw := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		if err := checkObjectKeys(name, attr.Expr); err != nil {
			return nil, err
		}

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, diags.Error())
		}

		v, err := fromCty(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, name, err)
		}
		raw[name] = v
	}
	return raw, nil
}

// checkObjectKeys rejects object literals that repeat a key. Evaluation alone
// would keep the last value silently.
func checkObjectKeys(name string, expr hcl.Expression) error {
	obj, ok := expr.(*hclsyntax.ObjectConsExpr)
	if !ok {
		return nil
	}
	seen := make(map[string]bool, len(obj.Items))
	for _, item := range obj.Items {
		key := hcl.ExprAsKeyword(item.KeyExpr)
		if key == "" {
			kv, diags := item.KeyExpr.Value(nil)
			if diags.HasErrors() || kv.IsNull() || !kv.IsKnown() || kv.Type() != cty.String {
				continue
			}
			key = kv.AsString()
		}
		if seen[key] {
			return &ValueError{Field: name, Value: key, Reason: "is defined more than once"}
		}
		seen[key] = true
	}
	return nil
}

// fromCty converts an evaluated literal into plain Go values
func fromCty(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := []any{}
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			gv, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, gv)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := map[string]any{}
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			gv, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = gv
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
}

// decodeYAML accepts exactly one document. An empty file decodes to no keys.
func decodeYAML(data []byte, _ string) (map[string]any, error) {
	raw := map[string]any{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return raw, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("more than one document")
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return raw, nil
}

func decodeJSON(data []byte, _ string) (map[string]any, error) {
	raw := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected content after top-level object")
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return raw, nil
}

func decodeTOML(data []byte, _ string) (map[string]any, error) {
	raw := map[string]any{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return raw, nil
}

// describe names the shape of a decoded value for error messages
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, uint64, float64, json.Number:
		return "number"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	}
	return fmt.Sprintf("%T", v)
}
