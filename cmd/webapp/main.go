package main

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/check"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/compile"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/config"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/files"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/parse"
)

var (
	//go:embed resources/index.html
	indexHTML string
	//go:embed resources/default.v
	defaultScript []byte

	indexTemplate = template.Must(template.New("index").Parse(indexHTML))
)

const maxScriptSize = 500 * 1024

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadDefault()
	if err != nil {
		logger.Fatal("loading config", zap.Error(err))
	}

	s := &server{cfg: cfg, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.indexHandler)
	mux.HandleFunc("POST /check", s.checkHandler)

	addr := fmt.Sprintf("0.0.0.0:%s", files.LookupEnv("PORT", "8080"))
	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, s.logRequest(mux)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

type server struct {
	cfg    *config.Config
	logger *zap.Logger
}

func (s *server) indexHandler(w http.ResponseWriter, r *http.Request) {
	type Page struct {
		DefaultContent string
	}

	data, err := files.DecodeScript(defaultScript)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := indexTemplate.Execute(w, Page{DefaultContent: string(data)}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// checkHandler runs the posted script in a fresh session and writes the
// transcript. With trace set, kernel traces are interleaved.
func (s *server) checkHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxScriptSize); err != nil && err != http.ErrNotMultipart {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filename := r.FormValue("filename")
	switch {
	case filename == "":
		filename = "main" + files.ScriptExt
	case !strings.HasSuffix(filename, files.ScriptExt), strings.Contains(filename, "/"):
		http.Error(w, "invalid filename", http.StatusBadRequest)
		return
	}

	code, err := files.DecodeScript([]byte(r.FormValue("code")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	file, err := parse.NewParser().ParseSource(filename, code)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	kernelConfig := s.cfg.Checker()
	logger := zap.NewNop()
	if r.FormValue("trace") != "" {
		kernelConfig.TraceChecker = true
		kernelConfig.TraceReduce = true
		kernelConfig.TraceGuard = true
		logger = transcriptLogger(w)
	}

	session, err := compile.NewSession(r.Context(), check.NewChecker(kernelConfig, logger), logger, compile.SessionOptions{
		Prelude: s.cfg.Prelude,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for _, cmd := range file.Commands {
		fmt.Fprintf(w, "> %s\n", cmd.Source())
		out, err := session.Run(r.Context(), cmd)
		switch {
		case err != nil:
			fmt.Fprintf(w, "Error: %v\n", err)
		case out != "":
			fmt.Fprintln(w, out)
		}
	}
}

func transcriptLogger(w io.Writer) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core)
}

func (s *server) logRequest(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Info("request",
			zap.String("remote", r.RemoteAddr),
			zap.String("method", r.Method),
			zap.Stringer("url", r.URL),
		)
		handler.ServeHTTP(w, r)
	})
}
