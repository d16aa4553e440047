package erp

import (
	"reflect"
	"testing"
)

func TestDomainToRPC(t *testing.T) {
	d := Domain{
		{"|"},
		{"id", "=", 5},
		{"name", "=", "Maduka"},
	}
	got := d.ToRPC()

	want := []interface{}{
		"|",
		[]interface{}{"id", "=", 5},
		[]interface{}{"name", "=", "Maduka"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToRPC() = %#v, want %#v", got, want)
	}
}

func TestDomainToRPCEmpty(t *testing.T) {
	got := Domain{}.ToRPC()
	if len(got) != 0 {
		t.Errorf("ToRPC() on empty domain = %#v, want empty", got)
	}
}

func TestOr(t *testing.T) {
	tests := []struct {
		name  string
		conds []Condition
		want  Domain
	}{
		{
			name:  "two branches",
			conds: []Condition{{"id", "=", 5}, {"name", "=", "Maduka"}},
			want:  Domain{{"|"}, {"id", "=", 5}, {"name", "=", "Maduka"}},
		},
		{
			name:  "nil branch skipped",
			conds: []Condition{nil, {"name", "=", "Maduka"}},
			want:  Domain{{"name", "=", "Maduka"}},
		},
		{
			name:  "three branches need two operators",
			conds: []Condition{{"a", "=", 1}, {"b", "=", 2}, {"c", "=", 3}},
			want:  Domain{{"|"}, {"|"}, {"a", "=", 1}, {"b", "=", 2}, {"c", "=", 3}},
		},
		{
			name:  "all nil",
			conds: []Condition{nil, nil},
			want:  Domain{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Or(tt.conds...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Or() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestOptionsToRPC(t *testing.T) {
	opts := &Options{
		Limit:  1,
		Order:  "id desc",
		Fields: []string{"id", "name"},
		Context: map[string]interface{}{
			"check_move_validity": false,
		},
	}
	got := opts.ToRPC()

	if got["limit"] != 1 {
		t.Errorf("limit = %v, want 1", got["limit"])
	}
	if got["order"] != "id desc" {
		t.Errorf("order = %v, want id desc", got["order"])
	}
	if _, ok := got["offset"]; ok {
		t.Error("zero offset should be omitted")
	}
	fields, ok := got["fields"].([]string)
	if !ok || len(fields) != 2 {
		t.Errorf("fields = %v, want [id name]", got["fields"])
	}
	ctx, ok := got["context"].(map[string]interface{})
	if !ok || ctx["check_move_validity"] != false {
		t.Errorf("context = %v", got["context"])
	}
}

func TestOptionsToRPCNil(t *testing.T) {
	var opts *Options
	got := opts.ToRPC()
	if got == nil || len(got) != 0 {
		t.Errorf("nil options should produce an empty kwargs map, got %v", got)
	}
}

func TestLineCommands(t *testing.T) {
	vals := map[string]interface{}{"product_id": 10}

	create := LineCreate(vals)
	if create[0] != 0 || create[1] != 0 {
		t.Errorf("LineCreate prefix = (%v, %v), want (0, 0)", create[0], create[1])
	}

	update := LineUpdate(42, vals)
	if update[0] != 1 || update[1] != int64(42) {
		t.Errorf("LineUpdate prefix = (%v, %v), want (1, 42)", update[0], update[1])
	}
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		in   interface{}
		want int64
		ok   bool
	}{
		{int(7), 7, true},
		{int64(7), 7, true},
		{float64(7), 7, true},
		{uint(7), 7, true},
		{"7", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToInt64(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ToInt64(%v) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestToIDs(t *testing.T) {
	got := ToIDs([]interface{}{float64(3), float64(9)})
	if !reflect.DeepEqual(got, []int64{3, 9}) {
		t.Errorf("ToIDs(list) = %v, want [3 9]", got)
	}

	got = ToIDs(float64(12))
	if !reflect.DeepEqual(got, []int64{12}) {
		t.Errorf("ToIDs(scalar) = %v, want [12]", got)
	}

	if got := ToIDs("nope"); got != nil {
		t.Errorf("ToIDs(string) = %v, want nil", got)
	}
}
