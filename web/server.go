package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the uptime-ping router.
func NewRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

// Start serves the ping endpoint on the given port in the background. onError
// is invoked if the listener fails; the bot keeps running either way.
func Start(port string, onError func(error)) *http.Server {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: NewRouter(),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			onError(err)
		}
	}()
	return srv
}
