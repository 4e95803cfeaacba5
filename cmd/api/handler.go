package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"crec-parser-go/internal/config"
	"crec-parser-go/internal/logger"
	"crec-parser-go/internal/pipeline"
	"crec-parser-go/internal/source"
)

const maxBodyBytes = 32 << 20

// parseHandler serves POST /parse. The document is the request body, or the
// page named by the url query parameter.
type parseHandler struct {
	asm     *pipeline.Assembler
	cfg     config.Config
	maxBody int64
}

func newMux(asm *pipeline.Assembler, cfg config.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Debug("health check")
		fmt.Fprint(w, "ok")
	})

	mux.Handle("/parse", &parseHandler{asm: asm, cfg: cfg, maxBody: maxBodyBytes})
	return mux
}

func (h *parseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New().WithRequest(r).WithField("handler", "parse")
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = h.cfg.InputFormat
	}
	if format != config.FormatText && format != config.FormatHTML {
		http.Error(w, "format must be text or html", http.StatusBadRequest)
		return
	}
	timeout := h.cfg.DocumentTimeout
	if t := q.Get("timeout_sec"); t != "" {
		var sec int
		if _, err := fmt.Sscanf(t, "%d", &sec); err == nil && sec > 0 {
			timeout = time.Duration(sec) * time.Second
		}
	}
	reqLog = reqLog.WithField("format", format).WithField("timeout", timeout.String())

	var (
		lines source.Lines
		err   error
	)
	if u := q.Get("url"); u != "" {
		reqLog = reqLog.WithField("url", u)
		lines, err = source.FetchLines(r.Context(), u, format == config.FormatHTML)
		if err != nil {
			reqLog.WithField("error", err.Error()).Warn("document fetch failed")
			http.Error(w, "could not fetch document", http.StatusBadGateway)
			return
		}
	} else {
		lines, err = h.readBody(w, r, format)
		if err != nil {
			status := http.StatusBadRequest
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				status = http.StatusRequestEntityTooLarge
			}
			reqLog.WithField("error", err.Error()).Warn("bad request body")
			http.Error(w, "could not read body", status)
			return
		}
	}

	doc, err := h.asm.AssembleWithTimeout(r.Context(), lines, timeout)
	reqLog = reqLog.WithField("items", len(doc.Content)).WithField("duration_ms", doc.DurationMs)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		// partial document; the client sees how far assembly got
		reqLog.WithField("error", err.Error()).Warn("assembly returned error")
		w.WriteHeader(http.StatusGatewayTimeout)
	} else {
		reqLog.Info("document parsed")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		reqLog.WithField("error", err.Error()).Error("failed to write response")
	}
}

func (h *parseHandler) readBody(w http.ResponseWriter, r *http.Request, format string) (source.Lines, error) {
	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	if format == config.FormatHTML {
		return source.FromHTML(body)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	return source.FromString(string(b)), nil
}
