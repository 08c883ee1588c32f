package linkedin

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobapply-automation/internal/scraper"
)

func TestSearchURL(t *testing.T) {
	raw := SearchURL("golang developer", scraper.Query{
		Location:  "United States",
		Remote:    true,
		MaxAge:    7 * 24 * time.Hour,
		EasyApply: true,
	})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "www.linkedin.com", u.Host)
	assert.Equal(t, "/jobs/search/", u.Path)

	q := u.Query()
	assert.Equal(t, "golang developer", q.Get("keywords"))
	assert.Equal(t, "United States", q.Get("location"))
	assert.Equal(t, "2", q.Get("f_WT"))
	assert.Equal(t, "r604800", q.Get("f_TPR"))
	assert.Equal(t, "true", q.Get("f_AL"))
}

func TestSearchURL_Minimal(t *testing.T) {
	u, err := url.Parse(SearchURL("go", scraper.Query{}))
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "go", q.Get("keywords"))
	for _, key := range []string{"location", "f_WT", "f_TPR", "f_AL"} {
		assert.False(t, q.Has(key), key)
	}
}
