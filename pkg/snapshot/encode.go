package snapshot

import (
	"bytes"
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalJSON renders the snapshot as one flat JSON object in insertion
// order. encoding/json maps cannot preserve order, so the object is written
// by hand; values still go through the standard encoder.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := range s.samples {
		m := &s.samples[i]
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(m.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		switch m.Type {
		case TypeFloat:
			buf.WriteString(strconv.FormatFloat(m.Float, 'f', -1, 64))
		case TypeInt:
			buf.WriteString(strconv.FormatInt(m.Int, 10))
		case TypeUint:
			buf.WriteString(strconv.FormatUint(m.Uint, 10))
		case TypeString:
			str, err := json.Marshal(m.Str)
			if err != nil {
				return nil, err
			}
			buf.Write(str)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the snapshot as an ordered YAML mapping.
func (s *Snapshot) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i := range s.samples {
		m := &s.samples[i]
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: m.Name}
		val := &yaml.Node{Kind: yaml.ScalarNode}
		switch m.Type {
		case TypeFloat:
			val.Tag = "!!float"
			val.Value = strconv.FormatFloat(m.Float, 'f', -1, 64)
		case TypeInt:
			val.Tag = "!!int"
			val.Value = strconv.FormatInt(m.Int, 10)
		case TypeUint:
			val.Tag = "!!int"
			val.Value = strconv.FormatUint(m.Uint, 10)
		case TypeString:
			val.Tag = "!!str"
			val.Value = m.Str
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}
