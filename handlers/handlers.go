package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"rentbook/middleware"
	"rentbook/store"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	store store.Store
	now   func() time.Time
}

func New(st store.Store) *Handlers {
	return &Handlers{store: st, now: time.Now}
}

// Register wires the route table. Browser routes redirect to /login when
// anonymous, /api routes return 401.
func (h *Handlers) Register(r *gin.Engine) {
	r.POST("/api/signup", h.Signup)
	r.POST("/api/login", h.Login)
	r.GET("/login", h.LoginPage)

	web := r.Group("/", middleware.AuthRequired(true))
	{
		web.POST("/add_property", h.AddProperty)
		web.GET("/properties", h.ListProperties)
		web.GET("/property/:id", h.GetProperty)
		web.GET("/property/:id/image", h.PropertyImage)
		web.POST("/property/:id/lease", h.AddLease)

		web.POST("/add_renter", h.AddRenter)
		web.GET("/renters", h.ListRenters)
		web.GET("/renter/:id", h.GetRenter)
		web.POST("/renter/:id/add_payment", h.AddPayment)
	}

	api := r.Group("/api", middleware.AuthRequired(false))
	{
		api.GET("/me", h.Me)
		api.GET("/stats/overview", h.GetStatsOverview)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

func redirectWithNotice(c *gin.Context, path, notice string) {
	c.Redirect(http.StatusSeeOther, path+"?notice="+url.QueryEscape(notice))
}
