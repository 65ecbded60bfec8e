package serverutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"rnd-intake-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/me", JwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		actor, _ := ActorFromCtx(ctx)
		return ctx.JSON(SuccessResponse("me", actor))
	})
	app.Delete("/admin", JwtMiddleware(testSecret), RequireRole(entity.RoleAdmin), func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse[any]("deleted", nil))
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	app := newTestApp()

	token, err := SignToken(testSecret, entity.Actor{UserId: "u-1", Name: "Kim", Role: "sales", Organization: "Sales"})
	require.NoError(t, err)
	forged, err := SignToken("other-secret", entity.Actor{UserId: "u-1", Role: entity.RoleAdmin})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", 401},
		{"wrong scheme", "Basic abc", 401},
		{"bad signature", "Bearer " + forged, 401},
		{"valid", "Bearer " + token, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == 200 {
				var body BaseResponse[entity.Actor]
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.True(t, body.Success)
				assert.Equal(t, "u-1", body.Data.UserId)
				assert.Equal(t, entity.RoleSales, body.Data.Role)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	app := newTestApp()

	for _, tc := range []struct {
		role entity.Role
		want int
	}{
		{entity.RoleAdmin, 200},
		{"admin", 200},
		{entity.RoleRD, 403},
	} {
		token, err := SignToken(testSecret, entity.Actor{UserId: "u-1", Role: tc.role})
		require.NoError(t, err)

		req := httptest.NewRequest("DELETE", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, string(tc.role))

		if tc.want == 403 {
			var body BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, 403, body.Code)
		}
	}
}
