package profile

import (
	"net"
	"net/http"
	"net/http/pprof"
)

const Prefix = "/pktclass-pprof/"

// NewHandler serves the runtime profiles under Prefix.
func NewHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Prefix, pprof.Index)
	mux.HandleFunc(Prefix+"cmdline", pprof.Cmdline)
	mux.HandleFunc(Prefix+"profile", pprof.Profile)
	mux.HandleFunc(Prefix+"symbol", pprof.Symbol)
	mux.HandleFunc(Prefix+"trace", pprof.Trace)
	for _, name := range []string{"goroutine", "heap", "allocs", "threadcreate", "block", "mutex"} {
		mux.Handle(Prefix+name, pprof.Handler(name))
	}
	return mux
}

func Serve(lis net.Listener) error {
	return http.Serve(lis, NewHandler())
}
