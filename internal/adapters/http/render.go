package web

import (
	"bytes"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"beautrip/internal/adapters/http/middleware"
	"beautrip/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadErrorMessage is shown when a catalog or account read fails.
const LoadErrorMessage = "데이터를 불러오는 중 오류가 발생했습니다."

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts guide and review text to HTML.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Error("internal_error", "path", r.URL.Path, "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// renderTemplate executes layout.html with the named page template.
// data fields are merged under .Page; layout helpers read session state via funcs.
func (s *Server) renderTemplate(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())
	loc := s.locale(r)

	funcMap := template.FuncMap{
		"csrfToken":      func() string { return csrf.Token(r) },
		"isLoggedIn":     func() bool { return loggedIn },
		"isAdmin":        func() bool { return sess.IsAdmin() },
		"displayName":    func() string { return sess.DisplayName },
		"lang":           func() string { return loc.HTMLLang() },
		"currentURL":     func() string { return r.URL.RequestURI() },
		"renderMarkdown": renderMarkdown,
		"price":          loc.Price,
		"count":          compactCount,
		"ago":            s.relativeTime,
		"date":           formatDate,
		"stars":          stars,
		"percent":        func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) },
		"query":          queryString,
		"add":            func(a, b int) int { return a + b },
		"sub":            func(a, b int) int { return a - b },
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		internalError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderPage renders a 200 page.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	s.renderTemplate(w, r, http.StatusOK, name, data)
}

// loadError logs a failed read and shows the generic retry page. There is no
// automatic retry; the page links back to the same URL.
func (s *Server) loadError(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Error("load_failed", "path", r.URL.Path, "error", err)
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": LoadErrorMessage})
		return
	}
	s.renderTemplate(w, r, http.StatusInternalServerError, "error.html", map[string]any{
		"Title":    "오류",
		"Message":  LoadErrorMessage,
		"RetryURL": r.URL.RequestURI(),
	})
}

// notFound renders the not-found page.
func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	s.renderTemplate(w, r, http.StatusNotFound, "error.html", map[string]any{
		"Title":   "페이지를 찾을 수 없습니다",
		"Message": "요청하신 정보를 찾을 수 없습니다.",
	})
}

// userError answers a validation failure: JSON callers get 400, form posts
// re-render their page through rerender.
func userError(w http.ResponseWriter, r *http.Request, err error, rerender func(msg string)) {
	if !isHTMLRequest(r) || isJSONBody(r) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rerender(err.Error())
}

// redirectBack sends form posts back to the page they came from when it is local.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := fallback
	if next := r.FormValue("next"); isLocalPath(next) {
		target = next
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// isLocalPath rejects absolute and protocol-relative URLs to avoid open redirects.
func isLocalPath(p string) bool {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Host == "" && u.Scheme == ""
}

// queryString builds "?k=v&..." from alternating key/value pairs, skipping empty values.
func queryString(pairs ...any) (template.URL, error) {
	if len(pairs)%2 != 0 {
		return "", errors.New("query needs key/value pairs")
	}
	v := url.Values{}
	for i := 0; i < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		var val string
		switch x := pairs[i+1].(type) {
		case string:
			val = x
		case int:
			if x != 0 {
				val = strconv.Itoa(x)
			}
		case int64:
			if x != 0 {
				val = strconv.FormatInt(x, 10)
			}
		}
		if key != "" && val != "" {
			v.Set(key, val)
		}
	}
	if len(v) == 0 {
		return "", nil
	}
	return template.URL("?" + v.Encode()), nil
}

func urlEscape(s string) string {
	return url.QueryEscape(s)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
