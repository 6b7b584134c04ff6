// Package traceapi serves a Manager's resolution trace over HTTP.
//
//	srv := traceapi.NewServer(cfg, log)
//	srv.ApplyMiddleware()
//	traceapi.Register(srv.Engine(), manager)
//	srv.Start(ctx)
//
// Routes:
//
//	GET /config/trace        every trace entry, secrets masked
//	GET /config/trace/:key   one entry, 404 for unknown keys
//	GET /config/keys         declared keys, extras and the source path
//	GET /alive               liveness
//	GET /version             build information
package traceapi
