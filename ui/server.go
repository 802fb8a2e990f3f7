// Package ui serves a read-only web view of diary files.
package ui

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/diary/diary"
	"github.com/dhamidi/diary/format"
	"github.com/dhamidi/diary/parser"
	"github.com/dhamidi/diary/watch"
)

//go:embed static templates
var embeddedFS embed.FS

// Diary is the latest parse of one file.
type Diary struct {
	ID       int
	Name     string
	Path     string
	Document *diary.Document
	Err      error
	// Diagnostic is Err rendered for a reader, with the offending line.
	Diagnostic string
	Loaded     time.Time
}

func (d *Diary) OK() bool {
	return d.Err == nil
}

type Server struct {
	vocab     *diary.Vocabulary
	templates *template.Template
	mux       *http.ServeMux
	log       commonlog.Logger

	mu      sync.RWMutex
	diaries []*Diary
	byPath  map[string]*Diary
}

func NewServer(paths []string, vocab *diary.Vocabulary) (*Server, error) {
	if vocab == nil {
		vocab = diary.DefaultVocabulary()
	}

	funcMap := template.FuncMap{
		"entries": func(day diary.Day) int {
			n := 0
			for _, m := range day.Meals.All() {
				n += m.Entries.Len()
			}
			return n
		},
		"entry": format.Entry,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(mustSub(embeddedFS, "templates"), "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		vocab:     vocab,
		templates: tmpl,
		mux:       http.NewServeMux(),
		log:       commonlog.GetLogger("diary.ui"),
		byPath:    make(map[string]*Diary),
	}
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("diary %s: %w", p, err)
		}
		d := &Diary{ID: i, Name: p, Path: abs}
		s.diaries = append(s.diaries, d)
		s.byPath[abs] = d
		s.Reload(abs)
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(mustSub(embeddedFS, "static")))))
	s.mux.HandleFunc("GET /d/{id}", s.handleDiary)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Reload parses path again. Paths the server was not created with are
// ignored.
func (s *Server) Reload(path string) {
	s.mu.RLock()
	d, ok := s.byPath[path]
	s.mu.RUnlock()
	if !ok {
		return
	}

	next := &Diary{ID: d.ID, Name: d.Name, Path: d.Path, Loaded: time.Now()}
	source, err := os.ReadFile(d.Path)
	if err != nil {
		next.Err = fmt.Errorf("read file: %w", err)
	} else {
		p := parser.New(parser.WithFile(d.Name), parser.WithVocabulary(s.vocab))
		next.Document, next.Err = p.Document(string(source))
	}
	if next.Err != nil {
		var buf bytes.Buffer
		if err := format.WriteDiagnostic(&buf, next.Err, string(source)); err != nil {
			s.log.Errorf("%s: render diagnostic: %s", d.Name, err)
			buf.Reset()
			buf.WriteString(next.Err.Error())
		}
		next.Diagnostic = buf.String()
		s.log.Infof("%s: %s", d.Name, next.Err)
	} else {
		s.log.Debugf("%s: loaded %d days", d.Name, next.Document.Days.Len())
	}

	s.mu.Lock()
	s.diaries[d.ID] = next
	s.byPath[path] = next
	s.mu.Unlock()
}

// Watch reloads diaries as their files change until ctx is done.
func (s *Server) Watch(ctx context.Context) (*watch.Watcher, error) {
	s.mu.RLock()
	paths := make([]string, 0, len(s.diaries))
	for _, d := range s.diaries {
		paths = append(paths, d.Path)
	}
	s.mu.RUnlock()

	w, err := watch.New(paths...)
	if err != nil {
		return nil, err
	}
	w.OnChange = s.Reload
	w.OnRemove = s.Reload
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Server) diary(id int) (*Diary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 0 || id >= len(s.diaries) {
		return nil, false
	}
	return s.diaries[id], true
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data := struct {
		Diaries []*Diary
	}{
		Diaries: append([]*Diary(nil), s.diaries...),
	}
	s.mu.RUnlock()

	s.render(w, "index.html", data)
}

type errorJSON struct {
	Error   string   `json:"error"`
	Kind    string   `json:"kind,omitempty"`
	Line    int      `json:"line,omitempty"`
	Column  int      `json:"column,omitempty"`
	Context []string `json:"context,omitempty"`
}

func (s *Server) handleDiary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid diary id", http.StatusBadRequest)
		return
	}
	d, ok := s.diary(id)
	if !ok {
		http.Error(w, "diary not found", http.StatusNotFound)
		return
	}

	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		if d.OK() {
			json.NewEncoder(w).Encode(format.BuildDocument(d.Document))
			return
		}
		body := errorJSON{Error: d.Err.Error()}
		var perr *parser.Error
		if errors.As(d.Err, &perr) {
			body.Kind = perr.Kind.String()
			body.Line = perr.Position.Line
			body.Column = perr.Position.Column
			body.Context = perr.Context
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(body)
		return
	}

	s.render(w, "diary.html", d)
}

// wantsJSON reports whether the Accept header names application/json
// with a non-zero quality.
func wantsJSON(r *http.Request) bool {
	for _, accept := range r.Header.Values("Accept") {
		for _, part := range strings.Split(accept, ",") {
			mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
			if err != nil || mediaType != "application/json" {
				continue
			}
			if q, err := strconv.ParseFloat(params["q"], 64); err == nil && q == 0 {
				continue
			}
			return true
		}
	}
	return false
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
