// Package erp is the XML-RPC gateway to the Odoo backend. Every business
// operation of this service is a pass-through to execute_kw on the object
// endpoint; the gateway owns authentication, call plumbing and error
// classification, nothing more.
package erp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"sync"
	"time"

	"github.com/kolo/xmlrpc"
	"go.uber.org/zap"
)

// Gateway is the surface the business services consume. *Client implements
// it; tests substitute a fake.
type Gateway interface {
	Search(ctx context.Context, model Model, domain Domain, opts *Options) ([]int64, error)
	SearchRead(ctx context.Context, model Model, domain Domain, fields []string, opts *Options, result interface{}) error
	Create(ctx context.Context, model Model, values Values, opts *Options) (int64, error)
	Write(ctx context.Context, model Model, ids []int64, values Values) error
	CallMethod(ctx context.Context, model Model, method string, ids []int64, kwargs map[string]interface{}) (interface{}, error)
}

// Config holds Odoo connection settings for the gateway.
type Config struct {
	URL      string
	Database string
	Username string
	Password string
	AuthTTL  time.Duration
	Timeout  time.Duration
}

// Client is an authenticated Odoo XML-RPC client. The uid obtained from the
// common endpoint is cached and refreshed after AuthTTL.
type Client struct {
	cfg       Config
	commonURL string
	objectURL string
	logger    *zap.Logger

	mu       sync.Mutex
	uid      int64
	rpc      *xmlrpc.Client
	lastAuth time.Time
}

// NewClient creates a new Odoo gateway client. No connection is made until
// the first call.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.AuthTTL <= 0 {
		cfg.AuthTTL = 6 * time.Hour
	}
	return &Client{
		cfg:       cfg,
		commonURL: fmt.Sprintf("%s/xmlrpc/2/common", cfg.URL),
		objectURL: fmt.Sprintf("%s/xmlrpc/2/object", cfg.URL),
		logger:    logger,
	}
}

// transport returns the RoundTripper for the XML-RPC clients.
// kolo/xmlrpc does not expose a client timeout, so the cap is applied at
// the transport level; per-call deadlines come from the context.
func (c *Client) transport() http.RoundTripper {
	if c.cfg.Timeout <= 0 {
		return nil
	}
	return &http.Transport{ResponseHeaderTimeout: c.cfg.Timeout}
}

// authenticate logs in against the common endpoint and opens the object
// endpoint client. Caller must hold c.mu.
func (c *Client) authenticate() error {
	common, err := xmlrpc.NewClient(c.commonURL, c.transport())
	if err != nil {
		return fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer common.Close()

	args := []interface{}{c.cfg.Database, c.cfg.Username, c.cfg.Password, map[string]interface{}{}}
	var uid int64
	if err := common.Call("authenticate", args, &uid); err != nil {
		c.logger.Error("odoo authentication failed",
			zap.String("db", c.cfg.Database),
			zap.String("username", c.cfg.Username),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	if uid == 0 {
		return fmt.Errorf("%w: invalid credentials", ErrAuthFailed)
	}

	object, err := xmlrpc.NewClient(c.objectURL, c.transport())
	if err != nil {
		return fmt.Errorf("failed to create XML-RPC client: %w", err)
	}

	if c.rpc != nil {
		c.rpc.Close()
	}
	c.uid = uid
	c.rpc = object
	c.lastAuth = time.Now()
	c.logger.Info("authenticated with odoo", zap.Int64("uid", uid), zap.String("db", c.cfg.Database))
	return nil
}

// conn returns a valid uid and object client, re-authenticating when the
// cached session has expired.
func (c *Client) conn(ctx context.Context) (int64, *xmlrpc.Client, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.uid == 0 || c.rpc == nil || time.Since(c.lastAuth) >= c.cfg.AuthTTL {
		if err := c.authenticate(); err != nil {
			return 0, nil, err
		}
	}
	return c.uid, c.rpc, nil
}

// executeKw runs a single execute_kw call. kolo/xmlrpc has no context
// support, so the blocking call runs in a goroutine and the select honors
// cancellation; an abandoned call finishes in the background.
func (c *Client) executeKw(ctx context.Context, model Model, method string, args []interface{}, kwargs map[string]interface{}, reply interface{}) error {
	uid, rpc, err := c.conn(ctx)
	if err != nil {
		return err
	}
	if kwargs == nil {
		kwargs = map[string]interface{}{}
	}

	callArgs := []interface{}{c.cfg.Database, uid, c.cfg.Password, string(model), method, args, kwargs}

	done := make(chan error, 1)
	go func() {
		done <- rpc.Call("execute_kw", callArgs, reply)
	}()

	select {
	case <-ctx.Done():
		c.logger.Warn("odoo call abandoned",
			zap.String("model", string(model)),
			zap.String("method", method),
			zap.Error(ctx.Err()))
		return ctx.Err()
	case err = <-done:
		if err != nil {
			c.logger.Error("odoo call failed",
				zap.String("model", string(model)),
				zap.String("method", method),
				zap.Error(err))
			return classifyRPCError(err)
		}
	}
	return nil
}

// Search returns the IDs matching the domain.
func (c *Client) Search(ctx context.Context, model Model, domain Domain, opts *Options) ([]int64, error) {
	var ids []int64
	err := c.executeKw(ctx, model, "search", []interface{}{domain.ToRPC()}, opts.ToRPC(), &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// SearchRead fetches matching records and decodes them into result, a
// pointer to a slice of structs with json tags. Odoo's dynamically typed
// payloads (false for empty fields, [id, name] pairs for relations) are
// handled by the field types in internal/models.
func (c *Client) SearchRead(ctx context.Context, model Model, domain Domain, fields []string, opts *Options, result interface{}) error {
	if opts == nil {
		opts = &Options{}
	}
	opts.Fields = fields

	var raw []map[string]interface{}
	if err := c.executeKw(ctx, model, "search_read", []interface{}{domain.ToRPC()}, opts.ToRPC(), &raw); err != nil {
		return err
	}

	// Roundtrip through JSON to map the generic structs onto the typed DTOs.
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal search_read result: %w", err)
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to unmarshal search_read result: %w", err)
	}
	return nil
}

// Create creates a record and returns its ID.
func (c *Client) Create(ctx context.Context, model Model, values Values, opts *Options) (int64, error) {
	var id int64
	err := c.executeKw(ctx, model, "create", []interface{}{map[string]interface{}(values)}, opts.ToRPC(), &id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Write updates the given records.
func (c *Client) Write(ctx context.Context, model Model, ids []int64, values Values) error {
	var ok bool
	err := c.executeKw(ctx, model, "write", []interface{}{ids, map[string]interface{}(values)}, nil, &ok)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: write returned false", ErrRPC)
	}
	return nil
}

// CallMethod invokes a workflow method (action_post, action_confirm, ...)
// on the given records and returns the raw result.
func (c *Client) CallMethod(ctx context.Context, model Model, method string, ids []int64, kwargs map[string]interface{}) (interface{}, error) {
	var result interface{}
	if err := c.executeKw(ctx, model, method, []interface{}{ids}, kwargs, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ToInt64 converts any numeric RPC value to int64.
func ToInt64(v interface{}) (int64, bool) {
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(val.Uint()), true
	case reflect.Float32, reflect.Float64:
		return int64(val.Float()), true
	}
	return 0, false
}

// ToIDs extracts a list of record IDs from a raw RPC result. Workflow
// methods that build records (e.g. invoice generation from an order)
// return their ids this way.
func ToIDs(v interface{}) []int64 {
	list, ok := v.([]interface{})
	if !ok {
		if id, ok := ToInt64(v); ok {
			return []int64{id}
		}
		return nil
	}
	ids := make([]int64, 0, len(list))
	for _, item := range list {
		if id, ok := ToInt64(item); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
