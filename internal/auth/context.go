package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
)

type userKey struct{}

// WithUser stores the signed-in user id on a standard context.
func WithUser(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userKey{}, uid)
}

// UserFirebaseUID extracts the Firebase UID from the Gin context.
// This is set by the auth middleware.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// ContextProvider resolves the current user from a request context.
type ContextProvider struct{}

func (ContextProvider) CurrentUser(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userKey{}).(string)
	uid = strings.TrimSpace(uid)
	return uid, ok && uid != ""
}

// setUser records uid on both the Gin context and the request context.
func setUser(c *gin.Context, uid string) {
	c.Set(CtxFirebaseUID, uid)
	c.Request = c.Request.WithContext(WithUser(c.Request.Context(), uid))
}
