package middleware

import (
	"net"
	"net/http/httputil"
	"os"
	"strings"
	"time"

	"github.com/shyptr/gqlrun"
)

// Recovery turns a panicking handler further down the chain into a
// logged error instead of crashing the server, scrubbing the
// Authorization header out of the dumped request before logging it.
func Recovery() gqlrun.HandlerFunc {
	return func(ctx *gqlrun.Context) {
		logger := ctx.Logger
		defer func() {
			if err := recover(); err != nil {
				var brokenPipe bool
				if ne, ok := err.(*net.OpError); ok {
					if se, ok := ne.Err.(*os.SyscallError); ok {
						if strings.Contains(strings.ToLower(se.Error()), "broken pipe") || strings.Contains(strings.ToLower(se.Error()), "connection reset by peer") {
							brokenPipe = true
						}
					}
				}
				httpRequest, _ := httputil.DumpRequest(ctx.Request, false)
				headers := strings.Split(string(httpRequest), "\r\n")
				for idx, header := range headers {
					current := strings.Split(header, ":")
					if current[0] == "Authorization" {
						headers[idx] = current[0] + ": *"
					}
				}
				if brokenPipe {
					logger.Printf("error:%v request %s\n", err, strings.Join(headers, "\r\n"))
				} else {
					logger.Printf("error:%v [Recovery] panic recovered. %s\n", err, strings.Join(headers, "\r\n"))
				}
			}
		}()
		ctx.Next()
	}
}

// Logger records one access-log line per request once the chain below
// it has finished (status code, latency, client IP, HTTP method and
// the operation name given with the request, or "query" when none was).
func Logger() gqlrun.HandlerFunc {
	return func(ctx *gqlrun.Context) {
		startTime := time.Now()
		logger := ctx.Logger
		defer func() {
			reqMethod := ctx.Request.Method
			statusCode := ctx.Writer.Status()
			clientIP := ctx.ClientIP()
			operationName := ctx.OperationName
			if operationName == "" {
				operationName = "query"
			}
			logger.Printf("status %d | latencyTime %d | ip %s | method %s | operationName %s", statusCode, time.Now().Sub(startTime), clientIP,
				reqMethod, operationName)
		}()
		ctx.Next()
	}
}
