// Package erptest provides a scriptable in-memory Gateway for service and
// handler tests.
package erptest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ordosuite/salesbridge/internal/erp"
)

// Call records one gateway invocation.
type Call struct {
	Model  erp.Model
	Method string
	Domain erp.Domain
	Fields []string
	Values erp.Values
	IDs    []int64
	Kwargs map[string]interface{}
	Opts   *erp.Options
}

// Fake implements erp.Gateway. Behavior is scripted through the On*
// hooks; unscripted calls succeed with zero values. Every invocation is
// recorded in Calls.
type Fake struct {
	Calls []Call

	OnSearch     func(c Call) ([]int64, error)
	OnSearchRead func(c Call) (interface{}, error)
	OnCreate     func(c Call) (int64, error)
	OnWrite      func(c Call) error
	OnCallMethod func(c Call) (interface{}, error)
}

var _ erp.Gateway = (*Fake)(nil)

func (f *Fake) record(c Call) Call {
	f.Calls = append(f.Calls, c)
	return c
}

func (f *Fake) Search(ctx context.Context, model erp.Model, domain erp.Domain, opts *erp.Options) ([]int64, error) {
	c := f.record(Call{Model: model, Method: "search", Domain: domain, Opts: opts})
	if f.OnSearch != nil {
		return f.OnSearch(c)
	}
	return nil, nil
}

func (f *Fake) SearchRead(ctx context.Context, model erp.Model, domain erp.Domain, fields []string, opts *erp.Options, result interface{}) error {
	c := f.record(Call{Model: model, Method: "search_read", Domain: domain, Fields: fields, Opts: opts})
	if f.OnSearchRead == nil {
		return nil
	}
	v, err := f.OnSearchRead(c)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	// Same JSON roundtrip the real client performs.
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("erptest: marshal scripted result: %w", err)
	}
	return json.Unmarshal(data, result)
}

func (f *Fake) Create(ctx context.Context, model erp.Model, values erp.Values, opts *erp.Options) (int64, error) {
	c := f.record(Call{Model: model, Method: "create", Values: values, Opts: opts})
	if f.OnCreate != nil {
		return f.OnCreate(c)
	}
	return 1, nil
}

func (f *Fake) Write(ctx context.Context, model erp.Model, ids []int64, values erp.Values) error {
	c := f.record(Call{Model: model, Method: "write", IDs: ids, Values: values})
	if f.OnWrite != nil {
		return f.OnWrite(c)
	}
	return nil
}

func (f *Fake) CallMethod(ctx context.Context, model erp.Model, method string, ids []int64, kwargs map[string]interface{}) (interface{}, error) {
	c := f.record(Call{Model: model, Method: method, IDs: ids, Kwargs: kwargs})
	if f.OnCallMethod != nil {
		return f.OnCallMethod(c)
	}
	return nil, nil
}

// MethodCalls returns the recorded calls with the given method name.
func (f *Fake) MethodCalls(method string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// ModelCalls returns the recorded calls against the given model.
func (f *Fake) ModelCalls(model erp.Model) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Model == model {
			out = append(out, c)
		}
	}
	return out
}
