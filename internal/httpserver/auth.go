package httpserver

import (
	"net/http"
	"strings"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	usersvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/user"
	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// authRequired resolves the bearer token to a user and stores it on the
// request. Role checks happen in the services, which receive the caller
// explicitly.
func authRequired(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		u, err := users.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(callerKey, *u)
		c.Next()
	}
}

func caller(c *gin.Context) domain.User {
	v, ok := c.Get(callerKey)
	if !ok {
		return domain.User{}
	}
	u, _ := v.(domain.User)
	return u
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

func registerHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		u, err := users.Register(c.Request.Context(), usersvc.RegisterInput{
			Name:     req.Name,
			Surname:  req.Surname,
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

func loginHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		login := req.Username
		if login == "" {
			login = req.Email
		}
		if login == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username or email required"})
			return
		}

		u, access, err := users.Login(c.Request.Context(), login, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":        u,
			"accessToken": access,
			"expiresIn":   users.AccessTTLSeconds(),
		})
	}
}
