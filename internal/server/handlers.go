// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-toolkit/internal/convert"
	"github.com/pdiddy/pdf-toolkit/internal/httputil"
	"github.com/pdiddy/pdf-toolkit/internal/merge"
	"github.com/pdiddy/pdf-toolkit/internal/rotate"
	"github.com/pdiddy/pdf-toolkit/internal/split"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Response headers reporting what an operation produced.
const (
	HeaderPageCount    = "X-Page-Count"
	HeaderRotatedPages = "X-Rotated-Pages"
	HeaderOutputCount  = "X-Output-Count"
)

type pageData struct {
	MaxUploadMB int64
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorBody{Status: "error", Error: "not found"})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, pageData{MaxUploadMB: s.cfg.MaxUploadBytes >> 20}); err != nil {
		requestLogger(r.Context(), s.logger).WithError(err).Error("rendering page")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		s.fail(w, r, err)
		return
	}
	inputs, err := httputil.ReadUploads(r, "files")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := merge.Merge(r.Context(), inputs)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	name := outputName(r, merge.DefaultOutputName(r.FormValue("client")))
	requestLogger(r.Context(), s.logger).WithFields(logrus.Fields{
		"inputs": len(inputs),
		"pages":  res.Pages,
		"output": name,
	}).Info("merged")

	w.Header().Set(HeaderPageCount, strconv.Itoa(res.Pages))
	s.send(w, r, types.Artifact{Name: name, ContentType: types.ContentTypePDF, Data: res.PDF})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		s.fail(w, r, err)
		return
	}
	images, err := httputil.ReadUploads(r, "files")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pdf, err := convert.ImagesToPDF(r.Context(), images)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	name := outputName(r, convert.OutputName(images[0].Name))
	requestLogger(r.Context(), s.logger).WithFields(logrus.Fields{
		"images": len(images),
		"output": name,
	}).Info("converted")

	w.Header().Set(HeaderPageCount, strconv.Itoa(len(images)))
	s.send(w, r, types.Artifact{Name: name, ContentType: types.ContentTypePDF, Data: pdf})
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		s.fail(w, r, err)
		return
	}
	in, err := httputil.ReadUpload(r, "file")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	specs, skipped, err := splitSpecs(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	log := requestLogger(r.Context(), s.logger)
	for _, line := range skipped {
		log.WithField("line", line).Warn("skipping plan line without \"range: filename\"")
	}

	files, err := split.Split(r.Context(), in.Name, in.Data, specs)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	art, err := split.Bundle(files)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	log.WithFields(logrus.Fields{
		"input":   in.Name,
		"outputs": len(files),
		"output":  art.Name,
	}).Info("split")

	w.Header().Set(HeaderOutputCount, strconv.Itoa(len(files)))
	s.send(w, r, art)
}

// splitSpecs reads the split outputs from either a "plan" field of
// "<range>: <filename>" lines or a "ranges" field paired with "names".
func splitSpecs(r *http.Request) ([]types.SplitSpec, []string, error) {
	if plan := r.FormValue("plan"); strings.TrimSpace(plan) != "" {
		p, err := split.ParsePlan(plan)
		if err != nil {
			return nil, nil, err
		}
		return p.Specs, p.Skipped, nil
	}
	ranges := r.FormValue("ranges")
	if strings.TrimSpace(ranges) == "" {
		return nil, nil, types.Errorf(types.KindMalformedRange, "", "no page ranges given")
	}
	specs, err := split.PairRanges(ranges, listField(r.FormValue("names")))
	return specs, nil, err
}

// listField splits a comma or newline separated form value, dropping blanks.
func listField(v string) []string {
	var out []string
	for _, f := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '\n' }) {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		s.fail(w, r, err)
		return
	}
	in, err := httputil.ReadUpload(r, "file")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	degrees, err := strconv.Atoi(strings.TrimSpace(r.FormValue("degrees")))
	if err != nil {
		s.fail(w, r, types.Errorf(types.KindInvalidInput, "degrees",
			"degrees must be 90, 180 or 270, got %q", r.FormValue("degrees")))
		return
	}
	dir, err := types.ParseDirection(r.FormValue("direction"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := rotate.Rotate(r.Context(), in.Name, in.Data, degrees, dir)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	name := outputName(r, rotate.OutputName(in.Name))
	requestLogger(r.Context(), s.logger).WithFields(logrus.Fields{
		"input":     in.Name,
		"degrees":   degrees,
		"direction": dir,
		"pages":     res.Pages,
	}).Info("rotated")

	w.Header().Set(HeaderRotatedPages, strconv.Itoa(res.Pages))
	s.send(w, r, types.Artifact{Name: name, ContentType: types.ContentTypePDF, Data: res.PDF})
}

// parseForm bounds the body to the configured upload limit and parses it as
// a multipart form.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return types.Errorf(types.KindInvalidInput, "request", "request is not a multipart form: %v", err)
	}
	return nil
}

// outputName is the base name of the "output" form field with .pdf
// appended, or def when the field is blank.
func outputName(r *http.Request, def string) string {
	name := strings.TrimSpace(r.FormValue("output"))
	if name == "" {
		return def
	}
	return types.EnsurePDFExt(path.Base(strings.ReplaceAll(name, "\\", "/")))
}

func (s *Server) send(w http.ResponseWriter, r *http.Request, a types.Artifact) {
	if err := httputil.WriteArtifact(w, a); err != nil {
		requestLogger(r.Context(), s.logger).WithError(err).Warn("writing response")
	}
}

// fail logs err and writes it as a JSON error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, err)
	entry := requestLogger(r.Context(), s.logger).WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
		return
	}
	entry.Warn("request rejected")
}
