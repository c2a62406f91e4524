package router_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawly/internal/adapters/auth/password"
	"pawly/internal/adapters/auth/session"
	"pawly/internal/adapters/blob"
	"pawly/internal/router"
)

var (
	petIDRe  = regexp.MustCompile(`/pets/([0-9a-f-]{36})/edit`)
	careIDRe = regexp.MustCompile(`/care/([0-9a-f-]{36})/delete`)
)

func newSessions(t *testing.T) *session.Manager {
	t.Helper()
	sessions, err := session.NewManager(session.Options{
		Secret:     strings.Repeat("s", 32),
		CookieName: "pawly_session",
		TTL:        time.Hour,
	})
	require.NoError(t, err)
	return sessions
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newServerWith(t, newSessions(t))
}

func newServerWith(t *testing.T, sessions *session.Manager) *httptest.Server {
	t.Helper()

	blobs, err := blob.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	h, err := router.NewRouter(router.Options{
		Sessions:       sessions,
		Blobs:          blobs,
		Hasher:         password.NewHasherWithCost(4),
		MaxUploadBytes: 64 << 10,
	})
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

// browser guarda cookies y no sigue redirects, así vemos el 302.
type browser struct {
	t    *testing.T
	c    *http.Client
	base string
}

func newBrowser(t *testing.T, ts *httptest.Server) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: ts.URL,
		c: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	res, err := b.c.Do(req)
	require.NoError(b.t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(b.t, err)
	return res, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) postFile(path string, fields map[string]string, fileName string, content []byte) (*http.Response, string) {
	b.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(b.t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("foto_arquivo", fileName)
	require.NoError(b.t, err)
	_, err = fw.Write(content)
	require.NoError(b.t, err)
	require.NoError(b.t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, b.base+path, &buf)
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return b.do(req)
}

func (b *browser) register(email string) {
	b.t.Helper()
	res, _ := b.post("/register", url.Values{
		"nome": {"Ana"}, "email": {email}, "senha": {"secret"}, "confirma": {"secret"},
	})
	require.Equal(b.t, http.StatusFound, res.StatusCode)
	require.Equal(b.t, "/pets", res.Header.Get("Location"))
}

func (b *browser) createPet(form url.Values) string {
	b.t.Helper()
	res, _ := b.post("/pets/create", form)
	require.Equal(b.t, http.StatusFound, res.StatusCode)
	return b.lastPetID()
}

func (b *browser) lastPetID() string {
	b.t.Helper()
	_, body := b.get("/pets")
	m := petIDRe.FindAllStringSubmatch(body, -1)
	require.NotEmpty(b.t, m)
	return m[len(m)-1][1]
}

func TestHTTP_HealthAndIndex(t *testing.T) {
	ts := newServer(t)
	b := newBrowser(t, ts)

	res, body := b.get("/health")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", body)

	res, body = b.get("/")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `href="/register"`)
}

func TestHTTP_AnonymousIsRedirectedToLogin(t *testing.T) {
	ts := newServer(t)
	b := newBrowser(t, ts)

	for _, path := range []string{"/pets", "/pets/create", "/dashboard", "/logout", "/pets/x/care"} {
		res, _ := b.get(path)
		assert.Equal(t, http.StatusFound, res.StatusCode, path)
		assert.Equal(t, "/login", res.Header.Get("Location"), path)
	}
}

func TestHTTP_RegisterLoginLogout(t *testing.T) {
	ts := newServer(t)
	b := newBrowser(t, ts)

	res, body := b.post("/register", url.Values{
		"nome": {"Ana"}, "email": {"a@x.com"}, "senha": {"one"}, "confirma": {"two"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, body, "passwords differ")

	b.register("a@x.com")

	res, body = b.get("/pets")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "a@x.com")

	res, _ = b.get("/logout")
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))

	res, _ = b.get("/pets")
	assert.Equal(t, http.StatusFound, res.StatusCode)

	res, _ = b.post("/login", url.Values{"email": {"a@x.com"}, "senha": {"secret"}})
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/pets", res.Header.Get("Location"))

	res, _ = b.get("/pets")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestHTTP_DuplicateEmailAndGenericLoginError(t *testing.T) {
	ts := newServer(t)
	newBrowser(t, ts).register("a@x.com")

	other := newBrowser(t, ts)
	res, body := other.post("/register", url.Values{
		"nome": {"Outra"}, "email": {"a@x.com"}, "senha": {"different"}, "confirma": {"different"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, body, "email already registered")

	res, wrongPassword := other.post("/login", url.Values{"email": {"a@x.com"}, "senha": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	res, unknownEmail := other.post("/login", url.Values{"email": {"ghost@x.com"}, "senha": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	assert.Contains(t, wrongPassword, "invalid credentials")
	assert.Contains(t, unknownEmail, "invalid credentials")
}

func TestHTTP_OtherUserCannotTouchPet(t *testing.T) {
	ts := newServer(t)
	a := newBrowser(t, ts)
	a.register("a@x.com")
	rexID := a.createPet(url.Values{"nome": {"Rex"}, "especie": {"cão"}})

	b := newBrowser(t, ts)
	b.register("b@x.com")

	res, _ := b.get("/pets/" + rexID + "/edit")
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/pets", res.Header.Get("Location"))

	res, _ = b.post("/pets/"+rexID+"/edit", url.Values{"nome": {"Hacked"}})
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/pets", res.Header.Get("Location"))

	for _, path := range []string{"/pets/" + rexID + "/care", "/pets/" + rexID + "/dashboard"} {
		res, _ = b.get(path)
		assert.Equal(t, http.StatusFound, res.StatusCode, path)
		assert.Equal(t, "/pets", res.Header.Get("Location"), path)
	}

	res, _ = b.post("/pets/"+rexID+"/delete", nil)
	assert.Equal(t, http.StatusFound, res.StatusCode)

	_, body := b.get("/pets")
	assert.NotContains(t, body, rexID)

	_, body = a.get("/pets")
	assert.Contains(t, body, "Rex")
	assert.NotContains(t, body, "Hacked")

	res, _ = b.get("/pets/00000000-0000-0000-0000-000000000000/edit")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHTTP_LenientNumbers(t *testing.T) {
	ts := newServer(t)
	a := newBrowser(t, ts)
	a.register("a@x.com")

	a.createPet(url.Values{"nome": {"Rex"}, "idade": {"abc"}, "peso": {"x"}, "data_nascimento": {"31/02"}})

	_, body := a.get("/pets")
	assert.Contains(t, body, "Rex")
	assert.NotContains(t, body, "anos")
	assert.NotContains(t, body, "kg")
	assert.NotContains(t, body, "nasceu")

	res, body := a.post("/pets/create", url.Values{"nome": {"  "}})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, body, "name is required")
}

func TestHTTP_PhotoResolution(t *testing.T) {
	ts := newServer(t)
	a := newBrowser(t, ts)
	a.register("a@x.com")

	png := []byte("\x89PNG\r\n\x1a\nfake")
	res, _ := a.postFile("/pets/create", map[string]string{"nome": "Rex", "foto_url": "http://x/y.jpg"}, "Rex Photo.PNG", png)
	require.Equal(t, http.StatusFound, res.StatusCode)
	rexID := a.lastPetID()

	_, body := a.get("/pets")
	assert.Contains(t, body, `src="/static/uploads/Rex_Photo.PNG"`)
	assert.NotContains(t, body, "http://x/y.jpg")

	res, served := a.get("/static/uploads/Rex_Photo.PNG")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, string(png), served)

	// extensión no permitida: gana la URL
	res, _ = a.postFile("/pets/create", map[string]string{"nome": "Mia", "foto_url": "http://x/y.jpg"}, "mia.bmp", png)
	require.Equal(t, http.StatusFound, res.StatusCode)
	_, body = a.get("/pets")
	assert.Contains(t, body, `src="http://x/y.jpg"`)

	// edición sin foto nueva conserva la anterior
	res, _ = a.post("/pets/"+rexID+"/edit", url.Values{"nome": {"Rex"}, "foto_url": {""}})
	require.Equal(t, http.StatusFound, res.StatusCode)
	_, body = a.get("/pets")
	assert.Contains(t, body, `src="/static/uploads/Rex_Photo.PNG"`)

	res, _ = a.get("/static/uploads/..%2Fsecret.png")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHTTP_CareLifecycle(t *testing.T) {
	ts := newServer(t)
	a := newBrowser(t, ts)
	a.register("a@x.com")
	rexID := a.createPet(url.Values{"nome": {"Rex"}})

	res, _ := a.post("/pets/"+rexID+"/care", url.Values{"tipo": {"vacina"}, "data": {"2000-01-01"}, "custo": {"80.5"}})
	require.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/pets/"+rexID+"/care", res.Header.Get("Location"))
	res, _ = a.post("/pets/"+rexID+"/care", url.Values{"tipo": {"retorno"}, "data": {"2999-06-01"}, "custo": {"caro"}})
	require.Equal(t, http.StatusFound, res.StatusCode)

	res, body := a.post("/pets/"+rexID+"/care", url.Values{"tipo": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, body, "Cuidados de Rex")

	_, body = a.get("/pets/" + rexID + "/care")
	assert.Less(t, strings.Index(body, "2999-06-01"), strings.Index(body, "2000-01-01"))
	assert.Contains(t, body, "80.50")
	careIDs := careIDRe.FindAllStringSubmatch(body, -1)
	require.Len(t, careIDs, 2)

	_, body = a.get("/pets/" + rexID + "/dashboard")
	assert.Contains(t, body, "<strong>2</strong> cuidados · <strong>1</strong> próximos")

	_, body = a.get("/dashboard")
	assert.Contains(t, body, "Rex")
	assert.Contains(t, body, "retorno")

	b := newBrowser(t, ts)
	b.register("b@x.com")
	res, body = b.post("/care/"+careIDs[0][1]+"/delete", nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Empty(t, res.Header.Get("Location"))
	assert.Contains(t, body, "access denied")

	res, _ = a.post("/care/"+careIDs[0][1]+"/delete", nil)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/pets/"+rexID+"/care", res.Header.Get("Location"))

	res, _ = a.post("/care/"+careIDs[0][1]+"/delete", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// cascade: borrar la mascota borra sus cuidados
	res, _ = a.post("/pets/"+rexID+"/delete", nil)
	require.Equal(t, http.StatusFound, res.StatusCode)

	res, _ = a.get("/pets/" + rexID + "/care")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res, _ = a.post("/care/"+careIDs[1][1]+"/delete", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHTTP_UploadTooLarge(t *testing.T) {
	ts := newServer(t)
	a := newBrowser(t, ts)
	a.register("a@x.com")

	res, _ := a.postFile("/pets/create", map[string]string{"nome": "Rex"}, "big.png", bytes.Repeat([]byte("x"), 128<<10))
	assert.Equal(t, http.StatusRequestEntityTooLarge, res.StatusCode)
}

func TestHTTP_SessionForMissingUserIsAnonymous(t *testing.T) {
	sessions := newSessions(t)
	ts := newServerWith(t, sessions)

	// token bien firmado de un usuario que el store no conoce (p.ej. tras reiniciar en memoria)
	token, err := sessions.Token("0192f1a4-7c3e-7b4d-9a1e-3f5c2d8b6a10", "ghost@x.com")
	require.NoError(t, err)

	b := newBrowser(t, ts)
	send := func(method, path string) *http.Response {
		req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(url.Values{"nome": {"Rex"}}.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: sessions.CookieName(), Value: token})
		res, _ := b.do(req)
		return res
	}

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/pets"},
		{http.MethodGet, "/dashboard"},
		{http.MethodPost, "/pets/create"},
	} {
		res := send(tc.method, tc.path)
		assert.Equal(t, http.StatusFound, res.StatusCode, tc.path)
		assert.Equal(t, "/login", res.Header.Get("Location"), tc.path)
	}
}
