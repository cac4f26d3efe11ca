package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMainText_JobDescriptionSelector(t *testing.T) {
	html := `<html><body>
		<nav>Home | Jobs | About</nav>
		<div class="job-description">
			<h1>Backend Engineer</h1>
			<p>Design and build APIs in Go.</p>
		</div>
		<footer>Copyright</footer>
	</body></html>`

	text, err := ExtractMainText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "Design and build APIs in Go.")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "Home | Jobs")
}

func TestExtractMainText_BodyFallback(t *testing.T) {
	text, err := ExtractMainText(`<html><body><p>Plain posting text.</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Plain posting text.", text)
}

func TestJobDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main><p>We are hiring a Go engineer.</p></main></body></html>`))
	}))
	defer srv.Close()

	text, err := JobDescription(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "We are hiring a Go engineer.", text)
}

func TestJobDescription_InvalidURL(t *testing.T) {
	_, err := JobDescription(context.Background(), "not-a-url")
	require.Error(t, err)

	fetchErr, ok := err.(*Error)
	require.True(t, ok, "error should be fetch.Error")
	assert.Contains(t, fetchErr.Message, "invalid URL")
}

func TestJobDescription_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := JobDescription(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status 404")
}
