package gqlrun

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shyptr/gqlrun/errors"
)

// HandlerFunc is one link in a Handler's middleware chain, called in
// registration order around the request's execution.
type HandlerFunc func(*Context)

// Context carries one HTTP request through a Handler's middleware
// chain. It implements context.Context so it can be passed straight
// into execution.Execute, letting resolvers read request-scoped values
// with the standard ctx.Value(key) convention.
type Context struct {
	Request *http.Request
	Writer  *Resp

	keys          map[interface{}]interface{}
	Logger        *log.Logger
	handlersChain []HandlerFunc
	index         int8

	OperationName string
	Method        string
	Error         errors.MultiError
}

// newContext returns a fresh per-request Context seeded with a chain
// copied from chain, ready to drive w/r through Next().
func newContext(w http.ResponseWriter, r *http.Request, logger *log.Logger, chain []HandlerFunc) *Context {
	return &Context{
		Request:       r,
		Writer:        &Resp{ResponseWriter: w},
		keys:          make(map[interface{}]interface{}),
		Logger:        logger,
		handlersChain: append([]HandlerFunc(nil), chain...),
		index:         -1,
	}
}

func (c *Context) Deadline() (deadline time.Time, ok bool) { return }
func (c *Context) Done() <-chan struct{}                   { return nil }

func (c *Context) Err() error {
	if len(c.Error) == 0 {
		return nil
	}
	return c.Error
}

func (c *Context) Value(key interface{}) interface{} { return c.keys[key] }
func (c *Context) Set(key, value interface{})        { c.keys[key] = value }

// Next invokes the next handler in the chain, if any. A handler calls
// Next to run the handlers registered after it; omitting the call
// short-circuits the rest of the chain.
func (c *Context) Next() {
	c.index++
	if int(c.index) < len(c.handlersChain) {
		c.handlersChain[c.index](c)
		c.index++
	}
}

func (c *Context) requestHeader(key string) string { return c.Request.Header.Get(key) }

// ClientIP returns the best-effort real client address, preferring
// X-Forwarded-For and X-Real-Ip over RemoteAddr so a reverse proxy
// (nginx, haproxy) doesn't mask the caller's own IP.
func (c *Context) ClientIP() string {
	clientIP := strings.TrimSpace(strings.Split(c.requestHeader("X-Forwarded-For"), ",")[0])
	if clientIP == "" {
		clientIP = strings.TrimSpace(c.requestHeader("X-Real-Ip"))
	}
	if clientIP != "" {
		return clientIP
	}
	if ip, _, err := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr)); err == nil {
		return ip
	}
	return ""
}

// ServerError records err against the request and writes it as a plain
// text response with the given status code, bypassing the normal
// GraphQL response envelope for requests that never reach execution.
func (c *Context) ServerError(msg string, code int) {
	c.Error = append(c.Error, errors.New(msg))
	c.Writer.status = code
	http.Error(c.Writer, msg, code)
}

// Resp wraps http.ResponseWriter to remember the status code written,
// so later middleware (Logger, in particular) can report it.
type Resp struct {
	http.ResponseWriter
	status int
}

func (r *Resp) Status() int { return r.status }

func (r *Resp) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// DefaultLogger is used by a Handler that isn't given one explicitly.
func DefaultLogger() *log.Logger { return log.New(os.Stderr, "", 0) }

var _ context.Context = (*Context)(nil)
