package flash_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movielist-backend/pkg/flash"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	c.Request = req
	return c, w
}

func flashCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == flash.DefaultCookieName {
			found = ck
		}
	}
	require.NotNil(t, found, "flash cookie not written")
	return found
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := flash.NewManager("secret", false)
	in := []flash.Message{
		{Category: flash.CategorySuccess, Text: "Film found successfully."},
		{Category: flash.CategoryInfo, Text: "No films found."},
	}

	token, err := m.Encode(in)
	require.NoError(t, err)

	out, err := m.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeRejectsForeignSignature(t *testing.T) {
	token, err := flash.NewManager("one", false).Encode([]flash.Message{{Category: flash.CategoryError, Text: "x"}})
	require.NoError(t, err)

	_, err = flash.NewManager("two", false).Decode(token)
	assert.Error(t, err)
}

func TestAddThenPopWithinOneRequest(t *testing.T) {
	m := flash.NewManager("secret", false)
	c, _ := newContext()

	m.Add(c, flash.CategoryInfo, "No films found.")
	got := m.Pop(c)

	require.Len(t, got, 1)
	assert.Equal(t, flash.CategoryInfo, got[0].Category)
	assert.Equal(t, "No films found.", got[0].Text)
	assert.Empty(t, m.Pop(c), "second pop must be empty")
}

func TestMessagesSurviveRedirect(t *testing.T) {
	m := flash.NewManager("secret", false)

	first, w := newContext()
	m.Add(first, flash.CategoryError, "No movie ID provided.")
	ck := flashCookie(t, w)
	assert.True(t, ck.HttpOnly)

	second, w2 := newContext(ck)
	got := m.Pop(second)
	require.Len(t, got, 1)
	assert.Equal(t, "No movie ID provided.", got[0].Text)

	cleared := flashCookie(t, w2)
	assert.True(t, cleared.MaxAge < 0, "pop must expire the cookie")
}

func TestTamperedCookieIsDiscarded(t *testing.T) {
	m := flash.NewManager("secret", false)
	c, _ := newContext(&http.Cookie{Name: flash.DefaultCookieName, Value: "not-a-token"})

	assert.Empty(t, m.Pop(c))
}
