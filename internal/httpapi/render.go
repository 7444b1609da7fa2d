package httpapi

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"fyyur/internal/flash"
	"fyyur/internal/logging"
	"fyyur/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home",
	"venues", "venue", "venue_form",
	"artists", "artist", "artist_form",
	"shows", "show_form",
	"search",
	"not_found", "server_error",
}

var templateFuncs = template.FuncMap{
	"ago":    humanize.Time,
	"plural": english.PluralWord,
	"join":   strings.Join,
	"contains": func(list []string, v string) bool {
		return slices.Contains(list, v)
	},
	"showDate": func(t time.Time) string {
		return t.Format("Mon Jan 2, 2006 3:04PM")
	},
}

var pages = parsePages()

func parsePages() map[string]*template.Template {
	set := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		set[name] = template.Must(template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return set
}

// page is the data handed to every template.
type page struct {
	Title   string
	Notices []flash.Message
	View    any
	Genres  []string
	States  []string
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// render writes view as JSON or as the named HTML page. Pending notices from
// earlier requests are shown together with notices raised by this one.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name, title string, view any, notices ...flash.Message) {
	if wantsJSON(r) {
		writeJSON(w, status, view)
		return
	}

	tmpl, ok := pages[name]
	if !ok {
		logging.WithContext(r.Context()).Error().Str("template", name).Msg("unknown template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := page{
		Title:   title,
		Notices: append(s.popNotices(w, r), notices...),
		View:    view,
		Genres:  models.GenreChoices,
		States:  models.StateChoices,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Str("template", name).Msg("failed to render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) popNotices(w http.ResponseWriter, r *http.Request) []flash.Message {
	if s.notices == nil {
		return nil
	}
	return s.notices.Pop(w, r)
}

// redirect stores notices for the next page and sends a 303 to target.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, target string, notices ...flash.Message) {
	if s.notices != nil && len(notices) > 0 {
		if err := s.notices.Add(w, r, notices...); err != nil {
			logging.WithContext(r.Context()).Warn().Err(err).Msg("failed to store notice")
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// serverError logs err and renders the 500 page.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logging.WithContext(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg(msg)
	s.renderError(w, r, http.StatusInternalServerError)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int) {
	if wantsJSON(r) {
		writeJSON(w, status, errorResponse{Error: strings.ToLower(http.StatusText(status))})
		return
	}
	name := "server_error"
	if status == http.StatusNotFound {
		name = "not_found"
	}
	s.render(w, r, status, name, fmt.Sprintf("%d %s", status, http.StatusText(status)), nil)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

func (s *Server) handleInternalError(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusInternalServerError)
}

func isFormSubmission(r *http.Request) bool {
	return !wantsJSON(r) && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

// finishDelete answers a delete request. HTML form posts are sent home with
// the notice, other clients get a {"Success": ...} acknowledgement.
func (s *Server) finishDelete(w http.ResponseWriter, r *http.Request, err error, done flash.Message) {
	if err != nil {
		if isFormSubmission(r) {
			s.renderError(w, r, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusInternalServerError, deleteResponse{Error: err.Error()})
		return
	}

	if isFormSubmission(r) {
		s.redirect(w, r, "/", done)
		return
	}
	if s.notices != nil {
		if err := s.notices.Add(w, r, done); err != nil {
			logging.WithContext(r.Context()).Warn().Err(err).Msg("failed to store notice")
		}
	}
	writeJSON(w, http.StatusOK, deleteResponse{Success: true})
}
