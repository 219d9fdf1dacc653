// Package webapi exposes the store read-only over HTTP, for dashboards and
// debugging. It never mutates anything; all writes go through the store's
// own operations.
package webapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"gomelclient/pkg/models"
	"gomelclient/store"
	"gomelclient/syncer"
)

func RunServer(addr string, st *store.Store, sy *syncer.Syncer) error {
	return Router(st, sy).Run(addr)
}

// Router builds the read-only surface; split out so tests can serve it
// without binding a port.
func Router(st *store.Store, sy *syncer.Syncer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "loading": st.Loading()})
	})

	api := r.Group("/api")
	{
		api.GET("/cars", func(c *gin.Context) {
			filter := models.CarFilter{
				City:         c.Query("city"),
				Search:       c.Query("q"),
				Type:         c.Query("type"),
				Transmission: c.Query("transmission"),
				Fuel:         c.Query("fuel"),
				MinPrice:     cast.ToFloat64(c.Query("min_price")),
				MaxPrice:     cast.ToFloat64(c.Query("max_price")),
			}
			c.JSON(http.StatusOK, st.FilterCars(filter, c.Query("sort")))
		})

		api.GET("/bookings", func(c *gin.Context) {
			c.JSON(http.StatusOK, st.Bookings())
		})

		api.GET("/host-bookings", func(c *gin.Context) {
			c.JSON(http.StatusOK, st.HostBookings())
		})

		api.GET("/payouts", func(c *gin.Context) {
			c.JSON(http.StatusOK, st.Payouts())
		})

		api.GET("/stream/state", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"state": sy.ChannelState()})
		})
	}

	return r
}
