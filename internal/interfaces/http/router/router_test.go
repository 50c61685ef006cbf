package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestRouter_Setup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("registers groups under versioned prefix", func(t *testing.T) {
		engine := gin.New()

		group := NewDomainGroup("widgets", "/widgets")
		group.GET("", okHandler)
		group.POST("", okHandler)

		NewRouter(engine).Register(group).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/widgets", nil))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/widgets", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("honors custom API version", func(t *testing.T) {
		engine := gin.New()

		group := NewDomainGroup("widgets", "/widgets")
		group.GET("", okHandler)

		NewRouter(engine, WithAPIVersion("v2")).Register(group).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/widgets", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("group middleware runs before handlers", func(t *testing.T) {
		engine := gin.New()

		group := NewDomainGroup("widgets", "/widgets")
		group.Use(func(c *gin.Context) {
			c.Header("X-Group", group.Name())
			c.Next()
		})
		group.GET("", okHandler)

		NewRouter(engine).Register(group).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/widgets", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "widgets", w.Header().Get("X-Group"))
	})
}
