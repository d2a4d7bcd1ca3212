// Package gqlrun is the request façade tying the parser, validator,
// executor and subscription registry together behind one Handler:
// Parse memoises request documents by a digest of their source text,
// Validate and Resolve run one parsed document against a built schema,
// and Subscribe/Unsubscribe/Deliver front a subscription.Registry for
// long-lived subscription operations. ServeHTTP and GraphiQLHandler are
// the ambient HTTP conveniences shipped alongside the core.
package gqlrun

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/shyptr/gqlrun/ast"
	"github.com/shyptr/gqlrun/errors"
	"github.com/shyptr/gqlrun/execution"
	"github.com/shyptr/gqlrun/parser"
	"github.com/shyptr/gqlrun/schema"
	"github.com/shyptr/gqlrun/subscription"
	"github.com/shyptr/gqlrun/validation"
	"github.com/shyptr/gqlrun/value"
)

// Handler serves GraphQL requests against one built Schema: parsing,
// validating, executing, and (for subscription operations) registering
// delivery against Registry.
type Handler struct {
	Schema   *schema.Schema
	Registry *subscription.Registry
	MaxDepth int
	Logger   *log.Logger

	// HandlersChain runs, in order, around every ServeHTTP request; use
	// Use to append to it (e.g. middleware.Recovery(), middleware.Logger()).
	HandlersChain []HandlerFunc

	mu    sync.RWMutex
	cache map[[sha256.Size]byte]cachedDoc
}

type cachedDoc struct {
	doc *ast.Document
	err *errors.GraphQLError
}

// NewHandler returns a Handler ready to serve s, with a fresh
// subscription registry and the default stderr logger.
func NewHandler(s *schema.Schema) *Handler {
	return &Handler{
		Schema:   s,
		Registry: subscription.NewRegistry(),
		MaxDepth: 50,
		Logger:   DefaultLogger(),
		cache:    make(map[[sha256.Size]byte]cachedDoc),
	}
}

// Use appends handlers to the chain ServeHTTP runs around execution.
func (h *Handler) Use(handlers ...HandlerFunc) {
	h.HandlersChain = append(h.HandlersChain, handlers...)
}

// Parse returns source's parsed document, from cache if an identical
// source string (by sha256 digest) has already been parsed — request
// documents are typically sent verbatim on every call a client makes,
// so this avoids re-running the lexer/parser on the hot path.
func (h *Handler) Parse(source string) (*ast.Document, *errors.GraphQLError) {
	digest := sha256.Sum256([]byte(source))

	h.mu.RLock()
	cached, ok := h.cache[digest]
	h.mu.RUnlock()
	if ok {
		return cached.doc, cached.err
	}

	doc, gqlErr := parser.Parse("GraphQL request", source)

	h.mu.Lock()
	h.cache[digest] = cachedDoc{doc: doc, err: gqlErr}
	h.mu.Unlock()

	return doc, gqlErr
}

// Validate runs every static validation rule over doc against h.Schema.
func (h *Handler) Validate(doc *ast.Document) errors.MultiError {
	return validation.Validate(h.Schema, doc, h.MaxDepth)
}

// Resolve executes doc's operationName (or its sole operation) with
// variables, returning the response value tree and any errors
// collected along the way.
func (h *Handler) Resolve(ctx context.Context, doc *ast.Document, operationName string, variables map[string]interface{}, policy execution.Policy) (value.Value, errors.MultiError) {
	return execution.Execute(ctx, execution.Params{
		Schema:        h.Schema,
		Document:      doc,
		OperationName: operationName,
		Variables:     variables,
		Policy:        policy,
	})
}

// Subscribe registers sink under field with args, returning the
// subscription so the caller can later Unsubscribe it by ID.
func (h *Handler) Subscribe(id, field string, args map[string]interface{}, sink subscription.Sink) *subscription.Subscription {
	return h.Registry.Register(id, field, args, sink)
}

// Unsubscribe removes a previously registered subscription.
func (h *Handler) Unsubscribe(field, id string) {
	h.Registry.Unsubscribe(field, id)
}

// Deliver publishes v to every subscription registered against field
// with matching arguments.
func (h *Handler) Deliver(field string, args map[string]interface{}, v value.Value) {
	h.Registry.Deliver(field, args, v)
}

// Request is the JSON (or multipart "operations" field) shape of one
// incoming GraphQL-over-HTTP request.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Response is the standard GraphQL-over-HTTP response envelope. Errors
// is serialised first, matching the field order recommended by the
// GraphQL spec's response discussion.
type Response struct {
	Errors     errors.MultiError      `json:"errors,omitempty"`
	Data       interface{}            `json:"data,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Upload is bound to a variable path when ServeHTTP decodes a
// multipart/form-data request following the GraphQL multipart request
// spec (the "map" field names a variable path per uploaded file part).
type Upload struct {
	File     multipart.File
	Filename string
	Size     int64
}

// ServeHTTP parses, validates and resolves one POSTed GraphQL request,
// running h.HandlersChain around execution. Requests may be encoded as
// application/json or multipart/form-data (file uploads); any other
// method than POST fails with 400.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := newContext(w, r, h.Logger, h.HandlersChain)
	ctx.handlersChain = append(ctx.handlersChain, h.execute)
	ctx.Next()
}

func (h *Handler) execute(ctx *Context) {
	if ctx.Request.Method != http.MethodPost {
		ctx.ServerError("must be post", http.StatusBadRequest)
		return
	}

	req, gqlErr := decodeRequest(ctx.Request)
	if gqlErr != nil {
		ctx.ServerError(gqlErr.Error(), http.StatusBadRequest)
		return
	}
	ctx.OperationName = req.OperationName

	var (
		result interface{}
		errs   errors.MultiError
	)
	defer func() {
		if len(errs) > 0 {
			ctx.Error = append(ctx.Error, errs...)
		}
		writeJSON(ctx.Writer, &Response{Data: result, Errors: errs})
	}()

	doc, parseErr := h.Parse(req.Query)
	if parseErr != nil {
		errs = errors.MultiError{parseErr}
		return
	}
	if validationErrs := h.Validate(doc); len(validationErrs) > 0 {
		errs = validationErrs
		return
	}

	op, _, opErr := findOperation(doc, req.OperationName)
	if opErr != nil {
		errs = errors.MultiError{opErr}
		return
	}
	ctx.Method = string(op.Type)

	result, errs = h.Resolve(ctx, doc, req.OperationName, req.Variables, execution.Sequential)
}

func findOperation(doc *ast.Document, name string) (*ast.OperationDefinition, map[string]*ast.FragmentDefinition, *errors.GraphQLError) {
	var ops []*ast.OperationDefinition
	fragments := make(map[string]*ast.FragmentDefinition)
	for _, def := range doc.Definitions {
		switch d := def.(type) {
		case *ast.OperationDefinition:
			ops = append(ops, d)
		case *ast.FragmentDefinition:
			fragments[d.Name.Value] = d
		}
	}
	if len(ops) == 0 {
		return nil, nil, errors.New("must provide an operation")
	}
	if name == "" {
		return ops[0], fragments, nil
	}
	for _, op := range ops {
		if op.Name != nil && op.Name.Value == name {
			return op, fragments, nil
		}
	}
	return nil, nil, errors.New("unknown operation %q", name)
}

func decodeRequest(r *http.Request) (*Request, *errors.GraphQLError) {
	contentType := strings.SplitN(r.Header.Get("Content-Type"), ";", 2)[0]
	if contentType != "multipart/form-data" {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, errors.New("%s", err.Error())
		}
		return &req, nil
	}
	return decodeMultipartRequest(r)
}

// decodeMultipartRequest implements the GraphQL multipart request spec:
// an "operations" form field carries the JSON request body, a "map"
// field names which variable path each uploaded file belongs to.
func decodeMultipartRequest(r *http.Request) (*Request, *errors.GraphQLError) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, errors.New("%s", err.Error())
	}
	var req Request
	if err := json.Unmarshal([]byte(r.Form.Get("operations")), &req); err != nil {
		return nil, errors.New("%s", err.Error())
	}
	if req.Variables == nil {
		req.Variables = make(map[string]interface{})
	}

	var fileMap map[string][]string
	if err := json.Unmarshal([]byte(r.Form.Get("map")), &fileMap); err != nil {
		return nil, errors.New("%s", err.Error())
	}
	for key, paths := range fileMap {
		file, header, err := r.FormFile(key)
		if err != nil {
			return nil, errors.New("%s", err.Error())
		}
		for _, path := range paths {
			assignUpload(req.Variables, strings.Split(path, ".")[1:], Upload{
				File:     file,
				Filename: header.Filename,
				Size:     header.Size,
			})
		}
	}
	return &req, nil
}

func assignUpload(vars map[string]interface{}, path []string, upload Upload) {
	for i, key := range path {
		if i == len(path)-1 {
			vars[key] = upload
			return
		}
		next, ok := vars[key].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			vars[key] = next
		}
		vars = next
	}
}

func writeJSON(w *Resp, resp *Response) {
	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
