// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package values

import "strings"

// Parameters is an insertion ordered set of property parameters. Names
// compare case-insensitively and keep the spelling of their first Set. A nil
// *Parameters is empty.
type Parameters struct {
	keys   []string
	values map[string]string
}

func NewParameters() *Parameters {
	return &Parameters{values: map[string]string{}}
}

// Set replaces the value of an existing name in place or appends a new one.
func (self *Parameters) Set(name string, value string) {
	if self.values == nil {
		self.values = map[string]string{}
	}
	key := strings.ToUpper(name)
	if _, ok := self.values[key]; !ok {
		self.keys = append(self.keys, name)
	}
	self.values[key] = value
}

func (self *Parameters) Get(name string) (string, bool) {
	if self == nil {
		return "", false
	}
	v, ok := self.values[strings.ToUpper(name)]
	return v, ok
}

func (self *Parameters) Delete(name string) {
	if self == nil {
		return
	}
	key := strings.ToUpper(name)
	if _, ok := self.values[key]; !ok {
		return
	}
	delete(self.values, key)
	for x, k := range self.keys {
		if strings.ToUpper(k) == key {
			self.keys = append(self.keys[:x], self.keys[x+1:]...)
			break
		}
	}
}

// Keys returns the names in insertion order.
func (self *Parameters) Keys() []string {
	if self == nil {
		return nil
	}
	return append([]string(nil), self.keys...)
}

func (self *Parameters) Len() int {
	if self == nil {
		return 0
	}
	return len(self.keys)
}

func (self *Parameters) Clone() *Parameters {
	out := NewParameters()
	if self == nil {
		return out
	}
	for _, k := range self.keys {
		out.Set(k, self.values[strings.ToUpper(k)])
	}
	return out
}
