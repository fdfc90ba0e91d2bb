package pagination

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsForQuery(t *testing.T, query string) *Params {
	t.Helper()
	app := fiber.New()
	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return nil
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, got)
	return got
}

func TestGetParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := paramsForQuery(t, "")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("page and limit drive the offset", func(t *testing.T) {
		p := paramsForQuery(t, "?page=3&limit=10")
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, 20, p.Offset)
	})

	t.Run("out-of-range values are clamped", func(t *testing.T) {
		p := paramsForQuery(t, "?page=-2&limit=0")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)

		p = paramsForQuery(t, fmt.Sprintf("?limit=%d", MaxLimit*5))
		assert.Equal(t, MaxLimit, p.Limit)
	})

	t.Run("garbage values fall back", func(t *testing.T) {
		p := paramsForQuery(t, "?page=abc&limit=xyz")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)
	})
}

func TestGetMeta(t *testing.T) {
	t.Run("partial last page rounds up", func(t *testing.T) {
		meta := GetMeta(&Params{Page: 1, Limit: 50}, 120)
		assert.Equal(t, 3, meta.TotalPages)
		assert.True(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})

	t.Run("middle page has both neighbours", func(t *testing.T) {
		meta := GetMeta(&Params{Page: 2, Limit: 50}, 120)
		assert.True(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
	})

	t.Run("empty listing", func(t *testing.T) {
		meta := GetMeta(&Params{Page: 1, Limit: 50}, 0)
		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})
}
