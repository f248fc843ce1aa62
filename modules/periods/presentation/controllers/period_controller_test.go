package controllers_test

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-periods/modules/periods"
	"github.com/iota-uz/iota-periods/modules/periods/infrastructure/remote"
	"github.com/iota-uz/iota-periods/pkg/application"
	"github.com/iota-uz/iota-periods/pkg/server"
)

type apiCall struct {
	Method string
	Path   string
	Body   string
}

type fakeAPI struct {
	mu       sync.Mutex
	calls    []apiCall
	saveBody string
}

func (f *fakeAPI) Calls() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Method: r.Method, Path: r.URL.Path, Body: string(body)})
	saveBody := f.saveBody
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/positions":
		_, _ = io.WriteString(w, `{"success":true,"data":[{"_id":"p1","name":"Lektor"},{"_id":"p2","name":"Asisten Ahli"}]}`)
	case r.URL.Path == "/timelines" && r.Method == http.MethodGet:
		_, _ = io.WriteString(w, `{"success":true,"data":[{"_id":"t1","title":"Semester Ganjil","type":"DOSEN","startDate":"2024-01-01","endDate":"2024-06-30","positions":[{"_id":"p1"}]}]}`)
	case r.URL.Path == "/timelines/t1" && r.Method == http.MethodGet:
		_, _ = io.WriteString(w, `{"data":{"title":"A","type":"STAFF","startDate":"2024-01-01","endDate":"2024-01-31","positions":[{"_id":"p2","name":"Asisten Ahli","quota":3}]}}`)
	default:
		if saveBody == "" {
			saveBody = `{"success":true}`
		}
		_, _ = io.WriteString(w, saveBody)
	}
}

func newTestServer(t *testing.T) (http.Handler, *fakeAPI) {
	t.Helper()
	return newTestServerIn(t, nil)
}

func newTestServerIn(t *testing.T, loc *time.Location) (http.Handler, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	remoteSrv := httptest.NewServer(api)
	t.Cleanup(remoteSrv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	app := application.New(&application.ApplicationOptions{Logger: logger})
	module := periods.NewModule(&periods.ModuleOptions{
		Remote: &remote.Options{BaseURL: remoteSrv.URL, Timeout: 5 * time.Second, Location: loc},
	})
	require.NoError(t, module.Register(app))
	app.RegisterNavItems(periods.NavItems...)

	return server.NewHTTPServer(app, nil, nil).Router(), api
}

func doRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func parseHTML(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return doc
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func validValues() url.Values {
	return url.Values{
		"FormToken":   {"tok-1"},
		"Title":       {"A"},
		"Type":        {"STAFF"},
		"StartDate":   {"2024-01-01"},
		"EndDate":     {"2024-01-31"},
		"PositionIDs": {"p1"},
	}
}

func TestPeriodController_GetNew(t *testing.T) {
	h, api := newTestServer(t)
	w := doRequest(h, httptest.NewRequest(http.MethodGet, "/periods/new", nil))
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseHTML(t, w)
	require.Equal(t, "Add New Period", strings.TrimSpace(doc.Find("h1").Text()))
	require.Equal(t, "/periods", doc.Find("#period-form").AttrOr("action", ""))
	require.Equal(t, "/periods", doc.Find("#period-back").AttrOr("href", ""))
	require.Equal(t, 1, doc.Find("#period-save").Length())
	_, disabled := doc.Find("#period-save").Attr("disabled")
	require.False(t, disabled)
	require.Empty(t, doc.Find(`input[name="Title"]`).AttrOr("value", "x"))
	require.NotEmpty(t, doc.Find(`input[name="FormToken"]`).AttrOr("value", ""))
	require.Equal(t, 2, doc.Find("#period-positions option").Length())
	require.Equal(t, 0, doc.Find("#period-positions option[selected]").Length())
	require.Equal(t, 2, doc.Find("button[data-preset]").Length())
	require.Equal(t, "Periods", strings.TrimSpace(doc.Find("nav a").Text()))

	for _, c := range api.Calls() {
		require.NotEqual(t, http.MethodGet+" /timelines", c.Method+" "+c.Path)
	}
}

func TestPeriodController_GetEditLocalized(t *testing.T) {
	h, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/periods/t1", nil)
	req.Header.Set("Accept-Language", "id")
	w := doRequest(h, req)
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseHTML(t, w)
	require.Equal(t, "Ubah Periode", strings.TrimSpace(doc.Find("h1").Text()))
	require.Equal(t, "Simpan", strings.TrimSpace(doc.Find("#period-save").Text()))
	require.Equal(t, "/periods/t1", doc.Find("#period-form").AttrOr("action", ""))
	require.Equal(t, "A", doc.Find(`input[name="Title"]`).AttrOr("value", ""))
	require.Equal(t, "STAFF", doc.Find(`input[name="Type"]`).AttrOr("value", ""))
	require.Equal(t, "Staff", doc.Find("#period-type-display").Text())
	require.Equal(t, "2024-01-01", doc.Find(`input[name="StartDate"]`).AttrOr("value", ""))
	require.Equal(t, "2024-01-31", doc.Find(`input[name="EndDate"]`).AttrOr("value", ""))

	selected := doc.Find("#period-positions option[selected]")
	require.Equal(t, 1, selected.Length())
	require.Equal(t, "p2", selected.AttrOr("value", ""))
	require.JSONEq(t, `[{"_id":"p2","name":"Asisten Ahli","quota":3}]`, doc.Find(`input[name="PositionsJSON"]`).AttrOr("value", ""))
}

func TestPeriodController_CreateRedirectsWithFlash(t *testing.T) {
	h, api := newTestServer(t)
	w := doRequest(h, postForm("/periods", validValues()))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/periods", w.Header().Get("Location"))

	var flash *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" {
			flash = c
		}
	}
	require.NotNil(t, flash)
	raw, err := base64.URLEncoding.DecodeString(flash.Value)
	require.NoError(t, err)
	require.JSONEq(t, `{"success":"Period has been created"}`, string(raw))

	var saved *apiCall
	for _, c := range api.Calls() {
		if c.Path == "/timelines" && c.Method == http.MethodPost {
			c := c
			saved = &c
		}
	}
	require.NotNil(t, saved)
	require.JSONEq(t, `{
		"title": "A",
		"type": "STAFF",
		"positions": [{"_id":"p1","name":"Lektor"}],
		"startDate": "2024-01-01T00:00:00Z",
		"endDate": "2024-01-31T00:00:00Z"
	}`, saved.Body)
}

func TestPeriodController_UpdateHtmxRedirect(t *testing.T) {
	h, api := newTestServer(t)
	values := validValues()
	values.Set("PositionsJSON", `[{"_id":"p1","name":"Lektor","quota":9}]`)
	req := postForm("/periods/t1", values)
	req.Header.Set("Hx-Request", "true")

	w := doRequest(h, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "/periods", w.Header().Get("Hx-Redirect"))

	calls := api.Calls()
	last := calls[len(calls)-1]
	require.Equal(t, http.MethodPut, last.Method)
	require.Equal(t, "/timelines/t1", last.Path)

	var body struct {
		Positions []json.RawMessage `json:"positions"`
	}
	require.NoError(t, json.Unmarshal([]byte(last.Body), &body))
	require.Len(t, body.Positions, 1)
	require.JSONEq(t, `{"_id":"p1","name":"Lektor","quota":9}`, string(body.Positions[0]))
}

func TestPeriodController_ServerErrorIsShown(t *testing.T) {
	h, api := newTestServer(t)
	api.saveBody = `{"success":false,"errors":"X"}`

	w := doRequest(h, postForm("/periods/t1", validValues()))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	doc := parseHTML(t, w)
	alert := doc.Find(`#period-notifications [data-kind="error"]`)
	require.Equal(t, 1, alert.Length())
	require.Equal(t, "X", strings.TrimSpace(alert.Text()))
	require.Equal(t, "A", doc.Find(`input[name="Title"]`).AttrOr("value", ""))
	_, disabled := doc.Find("#period-save").Attr("disabled")
	require.False(t, disabled)
	require.Empty(t, w.Header().Get("Location"))
}

func TestPeriodController_InvalidDatesAreNotSent(t *testing.T) {
	h, api := newTestServer(t)
	values := validValues()
	values.Set("StartDate", "2024-02-01")
	values.Set("EndDate", "2024-01-01")

	w := doRequest(h, postForm("/periods", values))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	doc := parseHTML(t, w)
	require.Equal(t, "End date must not be before start date",
		strings.TrimSpace(doc.Find(`[data-field-error="dateRange"]`).Text()))
	for _, c := range api.Calls() {
		require.NotEqual(t, http.MethodPost, c.Method)
	}
}

func TestPeriodController_MissingFieldsAreLocalized(t *testing.T) {
	h, api := newTestServer(t)
	req := postForm("/periods?lang=id", url.Values{"FormToken": {"tok-2"}})
	w := doRequest(h, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	doc := parseHTML(t, w)
	require.Equal(t, "Judul wajib diisi", strings.TrimSpace(doc.Find(`[data-field-error="title"]`).Text()))
	require.Equal(t, "Periksa kembali isian yang ditandai",
		strings.TrimSpace(doc.Find(`#period-notifications [data-kind="error"]`).Text()))
	require.Equal(t, 1, doc.Find(`[data-field-error="type"]`).Length())
	require.Equal(t, 1, doc.Find(`[data-field-error="dateRange"]`).Length())
	for _, c := range api.Calls() {
		require.NotEqual(t, http.MethodPost, c.Method)
	}
}

func TestPeriodController_ListShowsFlash(t *testing.T) {
	h, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/periods", nil)
	req.AddCookie(&http.Cookie{
		Name:  "flash",
		Value: base64.URLEncoding.EncodeToString([]byte(`{"success":"Period has been created"}`)),
	})
	w := doRequest(h, req)
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseHTML(t, w)
	require.Equal(t, "Period has been created", strings.TrimSpace(doc.Find(`[data-kind="success"]`).Text()))
	row := doc.Find(`#periods-table tr[data-id="t1"]`)
	require.Equal(t, 1, row.Length())
	require.Equal(t, "/periods/t1", row.Find("a").AttrOr("href", ""))
	require.Contains(t, row.Text(), "Dosen")
	require.Equal(t, "/periods/new", doc.Find("#period-new").AttrOr("href", ""))
}

func TestPeriodController_QuickFill(t *testing.T) {
	h, api := newTestServer(t)
	values := url.Values{"FormToken": {"tok-3"}, "Title": {"Semester"}, "Type": {"DOSEN"}}
	req := postForm("/periods/form/fields?id=t1", values)
	req.Header.Set("Hx-Request", "true")

	w := doRequest(h, req)
	require.Equal(t, http.StatusOK, w.Code)
	doc := parseHTML(t, w)
	require.Equal(t, "/periods/t1", doc.Find("#period-form").AttrOr("action", ""))
	require.Equal(t, "Semester", doc.Find(`input[name="Title"]`).AttrOr("value", ""))
	require.Equal(t, "DOSEN", doc.Find(`input[name="Type"]`).AttrOr("value", ""))
	require.Equal(t, "Dosen", doc.Find("#period-type-display").Text())
	require.Equal(t, "tok-3", doc.Find(`input[name="FormToken"]`).AttrOr("value", ""))
	require.Equal(t, 0, doc.Find("[data-field-error]").Length())

	for _, c := range api.Calls() {
		require.NotEqual(t, "/timelines/t1", c.Path)
	}
}

func TestPeriodController_PositionOptions(t *testing.T) {
	h, _ := newTestServer(t)
	w := doRequest(h, httptest.NewRequest(http.MethodGet, "/periods/api/positions:options?q=ahli", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[{"id":"p2","name":"Asisten Ahli"}]`, w.Body.String())

	w = doRequest(h, httptest.NewRequest(http.MethodGet, "/periods/api/positions:options", nil))
	require.JSONEq(t, `[{"id":"p1","name":"Lektor"},{"id":"p2","name":"Asisten Ahli"}]`, w.Body.String())
}

func TestPeriodController_PositionSearchRendersOptions(t *testing.T) {
	h, _ := newTestServer(t)

	doc := parseHTML(t, doRequest(h, httptest.NewRequest(http.MethodGet, "/periods/new", nil)))
	search := doc.Find("#period-positions-search")
	require.Equal(t, "/periods/api/positions:options", search.AttrOr("hx-get", ""))
	require.Equal(t, "#period-positions", search.AttrOr("hx-target", ""))
	require.Contains(t, search.AttrOr("hx-include", ""), "#period-positions")
	require.Equal(t, "not q", doc.Find("#period-form").AttrOr("hx-params", ""))

	req := httptest.NewRequest(http.MethodGet, "/periods/api/positions:options?q=ahli&PositionIDs=p1", nil)
	req.Header.Set("Hx-Request", "true")
	w := doRequest(h, req)
	require.Equal(t, http.StatusOK, w.Code)

	options, err := goquery.NewDocumentFromReader(strings.NewReader("<select>" + w.Body.String() + "</select>"))
	require.NoError(t, err)
	opts := options.Find("option")
	require.Equal(t, 2, opts.Length())
	require.Equal(t, "p1", opts.Eq(0).AttrOr("value", ""))
	_, selected := opts.Eq(0).Attr("selected")
	require.True(t, selected)
	require.Equal(t, "p2", opts.Eq(1).AttrOr("value", ""))
	_, selected = opts.Eq(1).Attr("selected")
	require.False(t, selected)
}

func TestPeriodController_UnchangedEditKeepsDates(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	h, api := newTestServerIn(t, jakarta)

	doc := parseHTML(t, doRequest(h, httptest.NewRequest(http.MethodGet, "/periods/t1", nil)))
	values := url.Values{}
	doc.Find("#period-form input[name]").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		if name == "q" {
			return
		}
		values.Add(name, sel.AttrOr("value", ""))
	})
	doc.Find("#period-positions option[selected]").Each(func(_ int, sel *goquery.Selection) {
		values.Add("PositionIDs", sel.AttrOr("value", ""))
	})
	require.Equal(t, "2024-01-01", values.Get("StartDate"))

	w := doRequest(h, postForm("/periods/t1", values))
	require.Equal(t, http.StatusFound, w.Code)

	calls := api.Calls()
	last := calls[len(calls)-1]
	require.Equal(t, http.MethodPut, last.Method)
	require.JSONEq(t, `{
		"title": "A",
		"type": "STAFF",
		"positions": [{"_id":"p2","name":"Asisten Ahli","quota":3}],
		"startDate": "2024-01-01T00:00:00+07:00",
		"endDate": "2024-01-31T00:00:00+07:00"
	}`, last.Body)
}
