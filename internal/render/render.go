package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"taskNotes/web"
)

var funcs = template.FuncMap{
	"formatDate": func(t time.Time) string { return t.Format("Jan 02, 2006") },
	"formatTime": func(t time.Time) string { return t.Format("3:04 PM") },
}

// Renderer holds the parsed template sets for the two views.
type Renderer struct {
	list *template.Template
	edit *template.Template
}

func New() (*Renderer, error) {
	list, err := template.New("layout.html").Funcs(funcs).
		ParseFS(web.Templates, "templates/layout.html", "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse index templates: %w", err)
	}

	edit, err := template.New("layout.html").Funcs(funcs).
		ParseFS(web.Templates, "templates/layout.html", "templates/edit.html")
	if err != nil {
		return nil, fmt.Errorf("parse edit templates: %w", err)
	}

	return &Renderer{list: list, edit: edit}, nil
}

func (rd *Renderer) ListPage(w io.Writer, page ListPage) error {
	return execute(w, rd.list, page)
}

func (rd *Renderer) EditPage(w io.Writer, page EditPage) error {
	return execute(w, rd.edit, page)
}

// execute renders into a buffer first so a template error never leaves a
// half-written page on the wire.
func execute(w io.Writer, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
