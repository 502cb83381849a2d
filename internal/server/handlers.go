package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/g6conv/pkg/buildinfo"
	errs "github.com/matzehuels/g6conv/pkg/errors"
	"github.com/matzehuels/g6conv/pkg/graph6"
	"github.com/matzehuels/g6conv/pkg/pipeline"
	"github.com/matzehuels/g6conv/pkg/render"
)

// errorBody is the JSON form of a coded error.
type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

func newErrorBody(err error) *errorBody {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	return &errorBody{Code: code, Message: errs.UserMessage(err)}
}

type lineResult struct {
	Index int `json:"index"`

	// Output holds text formats; Data holds svg/png bytes (base64 in JSON).
	Output string     `json:"output,omitempty"`
	Data   []byte     `json:"data,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

type convertStats struct {
	Lines      int   `json:"lines"`
	Skipped    int   `json:"skipped"`
	Converted  int   `json:"converted"`
	Failed     int   `json:"failed"`
	CacheHits  int   `json:"cache_hits"`
	DurationMS int64 `json:"duration_ms"`
}

type convertResponse struct {
	From    graph6.Format       `json:"from"`
	To      render.OutputFormat `json:"to"`
	Results []lineResult        `json:"results"`
	Stats   convertStats        `json:"stats"`
	Error   *errorBody          `json:"error,omitempty"`
}

type formatInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": newErrorBody(err)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Get(),
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	in := make([]formatInfo, 0, len(graph6.Formats))
	for _, f := range graph6.Formats {
		in = append(in, formatInfo{Name: string(f), Description: f.Description()})
	}
	out := make([]formatInfo, 0, len(render.OutputFormats))
	for _, f := range render.OutputFormats {
		out = append(out, formatInfo{Name: string(f), Description: f.Description()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"input": in, "output": out})
}

// optionsFromQuery overlays from, to, skip, count, layout and strict onto
// the server defaults.
func (s *Server) optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	opts := s.cfg.Defaults
	q := r.URL.Query()

	if v := q.Get("from"); v != "" {
		opts.InputFormat = graph6.Format(v)
	}
	if v := q.Get("to"); v != "" {
		opts.OutputFormat = render.OutputFormat(v)
	}
	if v := q.Get("layout"); v != "" {
		opts.Layout = v
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"skip", &opts.Skip},
		{"count", &opts.Count},
	}
	for _, p := range ints {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "query parameter %s=%q is not an integer", p.name, v)
		}
		*p.dst = n
	}
	if v := q.Get("strict"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "query parameter strict=%q is not a boolean", v)
		}
		opts.Strict = b
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := loggerFrom(ctx, s.logger)

	opts, err := s.optionsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	runner := *s.runner
	runner.Logger = logger

	resp := convertResponse{From: opts.InputFormat, To: opts.OutputFormat, Results: []lineResult{}}
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	stats, err := runner.Run(ctx, body, func(rec pipeline.Record) error {
		res := lineResult{Index: rec.Index}
		switch {
		case rec.Err != nil:
			var lineErr *pipeline.LineError
			if errors.As(rec.Err, &lineErr) {
				res.Error = newErrorBody(lineErr.Err)
			} else {
				res.Error = newErrorBody(rec.Err)
			}
		case opts.OutputFormat.Binary():
			res.Data = rec.Output
		default:
			res.Output = string(rec.Output)
		}
		resp.Results = append(resp.Results, res)
		return nil
	}, opts)

	resp.Stats = convertStats{
		Lines:      stats.Lines,
		Skipped:    stats.Skipped,
		Converted:  stats.Converted,
		Failed:     stats.Failed,
		CacheHits:  stats.CacheHits,
		DurationMS: stats.Duration.Milliseconds(),
	}

	if err != nil {
		var tooLarge *http.MaxBytesError
		var lineErr *pipeline.LineError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge,
				errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit))
		case errors.As(err, &lineErr):
			resp.Error = newErrorBody(err)
			writeJSON(w, http.StatusUnprocessableEntity, resp)
		case ctx.Err() != nil:
			logger.Debug("client went away", "error", err)
		default:
			logger.Error("conversion failed", "error", err)
			writeError(w, http.StatusBadRequest, err)
		}
		return
	}

	logger.Info("converted",
		"from", opts.InputFormat,
		"to", opts.OutputFormat,
		"lines", stats.Lines,
		"failed", stats.Failed,
		"cache_hits", stats.CacheHits)
	writeJSON(w, http.StatusOK, resp)
}
