package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"todoapp/internal/api/controller"
	"todoapp/internal/api/middleware"
	"todoapp/internal/api/service"
	"todoapp/internal/hub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// Server owns the gin engine and the websocket upgrade path.
type Server struct {
	engine      *gin.Engine
	hub         *hub.Hub
	authService service.AuthService
	upgrader    websocket.Upgrader
}

// NewServer wires controllers, middleware and the websocket endpoint into
// a gin engine.
func NewServer(
	h *hub.Hub,
	authService service.AuthService,
	authController *controller.AuthController,
	userController *controller.UserController,
	todoController *controller.TodoController,
) *Server {
	s := &Server{
		hub:         h,
		authService: authService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRoutes := engine.Group("/auth")
	{
		authRoutes.POST("/register", authController.Register)
		authRoutes.POST("/login", authController.Login)
		authRoutes.POST("/logout", authController.Logout)
	}

	userRoutes := engine.Group("/users", middleware.Auth(authService))
	{
		userRoutes.GET("/me", userController.Me)
		userRoutes.PUT("/password", userController.ChangePassword)
	}

	todoRoutes := engine.Group("/todos", middleware.Auth(authService))
	{
		todoRoutes.GET("", todoController.List)
		todoRoutes.GET("/:id", todoController.Get)
		todoRoutes.POST("", todoController.Create)
		todoRoutes.PUT("/:id", todoController.Update)
		todoRoutes.DELETE("/:id", todoController.Delete)
	}

	engine.GET("/ws", s.handleWebSocket)

	s.engine = engine
	return s
}

// Engine exposes the configured gin engine for http.Server.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// handleWebSocket authenticates the caller via a token query parameter,
// upgrades the connection and streams the user's todo events until the
// client disconnects. Browsers cannot set headers on websocket dials, so
// the bearer header is not an option here.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.Path),
	))
	defer span.End()

	tokenString := c.Query("token")
	identity, err := s.authService.VerifyToken(ctx, tokenString)
	if err != nil {
		span.SetStatus(codes.Error, "token verification failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	span.SetAttributes(attribute.Int64("user.id", identity.UserID))

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upgrade connection")
		return
	}

	events := s.hub.Subscribe(identity.UserID)
	defer s.hub.Unsubscribe(identity.UserID, events)
	defer conn.Close()

	// Drain reads so close frames are processed; nothing inbound matters.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				slog.Error("failed to marshal todo event", "error", err)
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
