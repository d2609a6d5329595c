package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/surveyscape/backend/internal/models"
	"github.com/surveyscape/backend/internal/testutil"
)

func TestRoleRequired(t *testing.T) {
	db := testutil.NewTestDB(t)
	cfg := testutil.NewTestConfig()
	cfg.AdminToken = "shared-admin-token"
	cfg.AdminEmails = "boss@example.com"

	testutil.CreateUser(t, db, "surveyor@example.com", models.RoleSurveyor)
	testutil.CreateUser(t, db, "plain@example.com", models.RoleUser)
	testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin)
	testutil.CreateUser(t, db, "promoted@example.com", models.RoleSurveyor)
	testutil.CreateUser(t, db, "pro@example.com", models.RoleProUser)

	app := fiber.New()
	app.Get("/guarded", JWTProtected(cfg), RoleRequired(db, cfg, models.RoleSurveyor), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	tests := []struct {
		name       string
		token      string
		adminToken string
		wantStatus int
	}{
		{
			name:       "surveyor allowed",
			token:      testutil.SignToken(t, cfg, "surveyor@example.com", "S", models.RoleSurveyor),
			wantStatus: http.StatusOK,
		},
		{
			name:       "plain user denied",
			token:      testutil.SignToken(t, cfg, "plain@example.com", "P", models.RoleUser),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin always passes",
			token:      testutil.SignToken(t, cfg, "admin@example.com", "A", models.RoleAdmin),
			wantStatus: http.StatusOK,
		},
		{
			name: "pro-user outranks the surveyor gate",
			// Promotion widens capability; it must never close a route the
			// caller could reach before paying.
			token:      testutil.SignToken(t, cfg, "pro@example.com", "U", models.RoleProUser),
			wantStatus: http.StatusOK,
		},
		{
			name: "stale token role ignored, db role wins",
			// Token minted before promotion still carries "user".
			token:      testutil.SignToken(t, cfg, "promoted@example.com", "L", models.RoleUser),
			wantStatus: http.StatusOK,
		},
		{
			name:       "config admin email passes without db row",
			token:      testutil.SignToken(t, cfg, "boss@example.com", "B", models.RoleUser),
			wantStatus: http.StatusOK,
		},
		{
			name:       "admin token header bypasses jwt role",
			token:      testutil.SignToken(t, cfg, "plain@example.com", "P", models.RoleUser),
			adminToken: "shared-admin-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown caller denied",
			token:      testutil.SignToken(t, cfg, "ghost@example.com", "G", models.RoleSurveyor),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			if tt.adminToken != "" {
				req.Header.Set("X-Admin-Token", tt.adminToken)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}
