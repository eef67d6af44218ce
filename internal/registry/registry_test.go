package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/colin-cli/colin/internal/clierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoList = `[
  {"name":"Demo","npmName":"demo","version":"1.0.0","type":"standard","tags":["project"],
   "installCommand":"npm install","startCommand":"npm start","ignore":["**/public/**"]},
  {"name":"Button","npmName":"@acme/button-template","version":"0.2.0","type":"custom","tags":["component"]}
]`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ListPath {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientList(t *testing.T) {
	srv := serve(t, http.StatusOK, demoList)
	c := New(srv.URL+"/", WithHTTPClient(srv.Client()))

	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "demo", list[0].NpmName)
	assert.Equal(t, []string{"**/public/**"}, list[0].Ignore)
	assert.Equal(t, TypeCustom, list[1].InstallType())
}

func TestClientListFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "boom"},
		{"not a list", http.StatusOK, `{"name":"demo"}`},
		{"missing npmName", http.StatusOK, `[{"name":"x","version":"1.0.0"}]`},
		{"bad type", http.StatusOK, `[{"name":"x","npmName":"x","version":"1.0.0","type":"weird"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			list, err := New(srv.URL, WithHTTPClient(srv.Client())).List(context.Background())
			require.Error(t, err)
			assert.True(t, clierr.Is(err, clierr.Registry))
			assert.Nil(t, list)
		})
	}
}

func TestClientFallbackOnTransportFailure(t *testing.T) {
	fallback, err := Fallback()
	require.NoError(t, err)

	srv := serve(t, http.StatusOK, demoList)
	url := srv.URL
	srv.Close()

	list, err := New(url, WithFallback(fallback)).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "@colin-cli/react-official-template", list[0].NpmName)
}

func TestClientFallbackNotUsedForInvalidList(t *testing.T) {
	fallback, err := Fallback()
	require.NoError(t, err)

	srv := serve(t, http.StatusOK, `[{"name":"x"}]`)
	_, err = New(srv.URL, WithHTTPClient(srv.Client()), WithFallback(fallback)).List(context.Background())
	assert.Error(t, err)
}

func TestFallback(t *testing.T) {
	list, err := Fallback()
	require.NoError(t, err)
	require.Len(t, list, 1)

	d := list[0]
	assert.Equal(t, "1.0.0", d.Version)
	assert.Equal(t, TypeStandard, d.InstallType(), "normal is an alias of standard")
	assert.True(t, d.HasTag(TagProject))
	assert.Equal(t, "npm install", d.InstallCommand)
	assert.Contains(t, d.Ignore, "**/public/**")
}

func TestFilterAndFind(t *testing.T) {
	list := []Descriptor{
		{NpmName: "a", Tags: []string{TagProject}},
		{NpmName: "b", Tags: []string{TagComponent}},
		{NpmName: "c", Tags: []string{TagProject, TagComponent}},
		{NpmName: "d"},
	}

	projects := Filter(list, TagProject)
	require.Len(t, projects, 2)
	assert.Equal(t, "a", projects[0].NpmName)
	assert.Equal(t, "c", projects[1].NpmName)

	d, ok := Find(list, "b")
	require.True(t, ok)
	assert.Equal(t, "b", d.NpmName)

	_, ok = Find(list, "zzz")
	assert.False(t, ok)
}

func TestInstallType(t *testing.T) {
	assert.Equal(t, TypeStandard, Descriptor{}.InstallType())
	assert.Equal(t, TypeStandard, Descriptor{Type: "normal"}.InstallType())
	assert.Equal(t, TypeCustom, Descriptor{Type: TypeCustom}.InstallType())
	assert.Equal(t, Type("other"), Descriptor{Type: "other"}.InstallType())
}
