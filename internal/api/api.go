package api

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/celerix-dev/celerix-commerce/pkg/sdk"
)

// Handler exposes the services a daemon hosts or can reach over HTTP.
// Nil services get no routes.
type Handler struct {
	Users   sdk.UserDirectory
	Orders  sdk.OrderLedger
	Reports sdk.ReportReader
}

// NewEngine builds the management API for serviceName.
func NewEngine(serviceName string, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), otelgin.Middleware(serviceName))

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Content-Length", "Accept-Encoding"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
	})
	h.Routes(r.Group("/api"))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API route not found"})
	})
	return r
}

// Routes registers the endpoints of every configured service on g.
func (h *Handler) Routes(g gin.IRouter) {
	if h.Users != nil {
		g.GET("/users", h.ListUsers)
		g.POST("/users", h.CreateUser)
		g.GET("/users/:id", h.GetUser)
		g.PATCH("/users/:id", h.UpdateUser)
		g.DELETE("/users/:id", h.DeleteUser)
	}
	if h.Orders != nil {
		g.GET("/orders", h.ListOrders)
		g.POST("/orders", h.CreateOrder)
		g.GET("/orders/:id", h.GetOrder)
	}
	if h.Reports != nil {
		g.GET("/reports/users/:id", h.GetUserOrdersReport)
		g.GET("/reports/top", h.GetTopUsersByOrders)
	}
}

// statusClientClosedRequest is the nginx convention for a request the client
// abandoned. net/http has no constant for it.
const statusClientClosedRequest = 499

// StatusFor maps an error kind onto an HTTP status.
func StatusFor(err error) int {
	switch sdk.KindOf(err) {
	case sdk.KindInvalidArgument:
		return http.StatusBadRequest
	case sdk.KindNotFound:
		return http.StatusNotFound
	case sdk.KindUnavailable:
		return http.StatusServiceUnavailable
	case sdk.KindDeadlineExceeded:
		return http.StatusGatewayTimeout
	case sdk.KindCanceled:
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(StatusFor(err), gin.H{"error": err.Error(), "kind": sdk.KindOf(err).String()})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var input struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.Users.CreateUser(c.Request.Context(), input.Name, input.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.Users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var input struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.Users.UpdateUser(c.Request.Context(), c.Param("id"), input.Name, input.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.Users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.Orders.ListOrders(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var input struct {
		UserID string   `json:"user_id"`
		Items  []string `json:"items"`
		Total  float64  `json:"total"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o, err := h.Orders.CreateOrder(c.Request.Context(), input.UserID, input.Items, input.Total)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.Orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) GetUserOrdersReport(c *gin.Context) {
	r, err := h.Reports.GetUserOrdersReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) GetTopUsersByOrders(c *gin.Context) {
	n := 0
	if v := c.Query("n"); v != "" {
		var err error
		if n, err = strconv.Atoi(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be an integer"})
			return
		}
	}
	r, err := h.Reports.GetTopUsersByOrders(c.Request.Context(), n)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
