// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resource describes the entity producing telemetry: the set of
// key-value attributes a processor propagates to its exporter out-of-band
// via SetResource.
package resource // import "github.com/kudlatyamroth/otelpipeline/sdk/resource"

import (
	"sort"

	"github.com/kudlatyamroth/otelpipeline/attribute"
)

// Resource describes the entity producing telemetry.
//
// Resource is immutable: Merge and the constructors always return a new
// value, they never mutate the receiver.
type Resource struct {
	attrs []attribute.KeyValue
}

// Empty is the Resource with no attributes. It is the zero value of
// Resource and is safe to propagate to an exporter.
var Empty = Resource{}

// NewWithAttributes creates a Resource from the provided attributes. Later
// values for the same key take precedence over earlier ones; the result is
// sorted by key so two Resources with the same attribute set compare equal.
func NewWithAttributes(attrs ...attribute.KeyValue) *Resource {
	r := &Resource{attrs: dedupe(attrs)}
	return r
}

// Attributes returns a copy of the attributes describing r.
func (r *Resource) Attributes() []attribute.KeyValue {
	if r == nil {
		return nil
	}
	out := make([]attribute.KeyValue, len(r.attrs))
	copy(out, r.attrs)
	return out
}

// Merge combines r and other, with other's attributes taking precedence
// over r's for any shared key. Merge does not mutate either argument.
func Merge(r, other *Resource) *Resource {
	var combined []attribute.KeyValue
	if r != nil {
		combined = append(combined, r.attrs...)
	}
	if other != nil {
		combined = append(combined, other.attrs...)
	}
	return &Resource{attrs: dedupe(combined)}
}

func dedupe(attrs []attribute.KeyValue) []attribute.KeyValue {
	last := make(map[attribute.Key]attribute.Value, len(attrs))
	var order []attribute.Key
	for _, kv := range attrs {
		if _, ok := last[kv.Key]; !ok {
			order = append(order, kv.Key)
		}
		last[kv.Key] = kv.Value
	}
	if len(order) == 0 {
		return nil
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	out := make([]attribute.KeyValue, 0, len(order))
	for _, k := range order {
		out = append(out, attribute.KeyValue{Key: k, Value: last[k]})
	}
	return out
}
