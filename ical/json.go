// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package ical

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JonDotsoy/icalendar.go/values"
)

// ToJSON projects the component into
// {kind, properties: {NAME: {value, parameters?}}, components: [...]}.
func (self *Component) ToJSON() (*structpb.Struct, error) {
	props := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(self.names))}
	for _, name := range self.names {
		p := self.props[name]
		v, err := values.ToJSON(p.Value)
		if err != nil {
			return nil, err
		}
		entry := &structpb.Struct{Fields: map[string]*structpb.Value{"value": v}}
		if p.Parameters.Len() > 0 {
			params := &structpb.Struct{Fields: map[string]*structpb.Value{}}
			for _, key := range p.Parameters.Keys() {
				pv, _ := p.Parameters.Get(key)
				params.Fields[key] = structpb.NewStringValue(pv)
			}
			entry.Fields["parameters"] = structpb.NewStructValue(params)
		}
		props.Fields[name] = structpb.NewStructValue(entry)
	}
	children := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(self.children))}
	for _, child := range self.children {
		s, err := child.ToJSON()
		if err != nil {
			return nil, err
		}
		children.Values = append(children.Values, structpb.NewStructValue(s))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"kind":       structpb.NewStringValue(self.kind),
		"properties": structpb.NewStructValue(props),
		"components": structpb.NewListValue(children),
	}}, nil
}

func (self *Component) MarshalJSON() ([]byte, error) {
	s, err := self.ToJSON()
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}
