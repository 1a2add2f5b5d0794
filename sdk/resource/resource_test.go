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

package resource

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kudlatyamroth/otelpipeline/attribute"
)

func diff(x, y Resource) string {
	return cmp.Diff(x, y, cmp.AllowUnexported(Resource{}, attribute.Value{}))
}

func TestNewWithAttributesSortsAndDedupes(t *testing.T) {
	got := NewWithAttributes(
		attribute.String("b", "2"),
		attribute.String("a", "1"),
		attribute.String("a", "overwritten"),
	)
	want := Resource{attrs: []attribute.KeyValue{
		attribute.String("a", "overwritten"),
		attribute.String("b", "2"),
	}}
	if d := diff(*got, want); d != "" {
		t.Fatalf("unexpected resource (-got +want):\n%s", d)
	}
}

func TestMerge(t *testing.T) {
	base := NewWithAttributes(attribute.String("service.name", "a"), attribute.Bool("a", true))
	other := NewWithAttributes(attribute.String("service.name", "b"), attribute.Int("b", 1))

	got := Merge(base, other)
	want := Resource{attrs: []attribute.KeyValue{
		attribute.Bool("a", true),
		attribute.Int("b", 1),
		attribute.String("service.name", "b"),
	}}
	if d := diff(*got, want); d != "" {
		t.Fatalf("unexpected merge result (-got +want):\n%s", d)
	}
}

func TestMergeNilArguments(t *testing.T) {
	r := NewWithAttributes(attribute.String("k", "v"))
	if d := diff(*Merge(nil, r), *r); d != "" {
		t.Fatalf("Merge(nil, r) should equal r (-got +want):\n%s", d)
	}
	if d := diff(*Merge(r, nil), *r); d != "" {
		t.Fatalf("Merge(r, nil) should equal r (-got +want):\n%s", d)
	}
	if d := diff(*Merge(nil, nil), Empty); d != "" {
		t.Fatalf("Merge(nil, nil) should equal Empty (-got +want):\n%s", d)
	}
}

func TestAttributesNilReceiver(t *testing.T) {
	var r *Resource
	if got := r.Attributes(); got != nil {
		t.Fatalf("nil Resource.Attributes() = %v, want nil", got)
	}
}
