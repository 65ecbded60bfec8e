package serverutils

import (
	"strings"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const actorLocalKey = "actor"

// ActorClaims mirrors the token issued by the identity service.
type ActorClaims struct {
	UserId       string `json:"user_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	jwt.RegisteredClaims
}

// JwtMiddleware verifies an HS256 bearer token and stores the caller as an
// entity.Actor in the request locals.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			return apperror.Unauthorized("missing token")
		}
		tokenStr := authHeader[7:]

		claims := &ActorClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return apperror.Unauthorized("invalid token")
		}
		if claims.UserId == "" {
			return apperror.Unauthorized("invalid claims")
		}

		ctx.Locals(actorLocalKey, entity.Actor{
			UserId:       claims.UserId,
			Name:         claims.Name,
			Role:         entity.NormalizeRole(claims.Role),
			Organization: claims.Organization,
		})
		return ctx.Next()
	}
}

// RequireRole must run after JwtMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		actor, ok := ActorFromCtx(ctx)
		if !ok {
			return apperror.Unauthorized("missing token")
		}
		if !actor.HasRole(roles...) {
			return apperror.Forbidden("role %s is not allowed to perform this action", actor.Role)
		}
		return ctx.Next()
	}
}

func ActorFromCtx(ctx *fiber.Ctx) (entity.Actor, bool) {
	actor, ok := ctx.Locals(actorLocalKey).(entity.Actor)
	return actor, ok
}

// SignToken issues a token in the shape JwtMiddleware expects. Used by the
// seed command and tests.
func SignToken(secret string, actor entity.Actor) (string, error) {
	claims := ActorClaims{
		UserId:       actor.UserId,
		Name:         actor.Name,
		Role:         string(actor.Role),
		Organization: actor.Organization,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
