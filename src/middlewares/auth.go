package middlewares

import (
	"bookit/src/config"
	"bookit/src/db"
	"bookit/src/models"
	"bookit/src/types"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// AuthMiddleware accepts a session token from the auth cookie or a Bearer
// header and loads the account it names onto the request context.
func AuthMiddleware(ctx *gin.Context) {
	reqToken, err := ctx.Cookie(config.TOKEN_COOKIE_NAME)
	if err != nil || reqToken == "" {
		bearerToken := ctx.Request.Header.Get("Authorization")
		if !strings.HasPrefix(bearerToken, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": types.APIError{Kind: types.KIND_UNAUTHORIZED, Message: "missing session token"}})
			return
		}
		reqToken = strings.Split(bearerToken, " ")[1]
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	if err != nil || !tkn.Valid {
		if err != nil {
			log.Printf("token error: %s\n", err.Error())
		}
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": types.APIError{Kind: types.KIND_UNAUTHORIZED, Message: "invalid or expired session token"}})
		return
	}

	db := db.GetDb()
	var user models.User
	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		log.Println("error parsing claims:", err.Error())
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": types.APIError{Kind: types.KIND_UNAUTHORIZED, Message: "invalid session token"}})
		return
	}
	db.Model(&models.User{}).Where(&models.User{ID: uint(uid)}).Find(&user)

	if uint(uid) != user.ID || user.ID < 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": types.APIError{Kind: types.KIND_UNAUTHORIZED, Message: "account not found"}})
		return
	}
	ctx.Set("email", user.Email)
	ctx.Set("id", user.ID)
	ctx.Set("role", string(user.Role))
}

// OptionalAuth attaches the account to the request context when a valid
// session token is present but never rejects the request. Guest checkout
// goes through here.
func OptionalAuth(ctx *gin.Context) {
	reqToken, err := ctx.Cookie(config.TOKEN_COOKIE_NAME)
	if err != nil || reqToken == "" {
		bearerToken := ctx.Request.Header.Get("Authorization")
		if !strings.HasPrefix(bearerToken, "Bearer ") {
			return
		}
		reqToken = strings.Split(bearerToken, " ")[1]
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	if err != nil || !tkn.Valid {
		return
	}
	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return
	}
	db := db.GetDb()
	var user models.User
	db.Model(&models.User{}).Where(&models.User{ID: uint(uid)}).Find(&user)
	if user.ID < 1 {
		return
	}
	ctx.Set("email", user.Email)
	ctx.Set("id", user.ID)
	ctx.Set("role", string(user.Role))
}

// RequireRole gates a route group on the authenticated account's role.
// AuthMiddleware must run first.
func RequireRole(role types.UserRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actual := ctx.GetString("role")
		if actual != string(role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": types.APIError{Kind: types.KIND_FORBIDDEN, Message: "insufficient permissions"}})
			return
		}
	}
}
