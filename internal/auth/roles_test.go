package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/election-service/internal/domain"
	"github.com/spec-kit/election-service/internal/testutil"
	apperrors "github.com/spec-kit/election-service/pkg/util"
)

func newGateApp(users *testutil.MemUserRepo, principal *Principal) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Message})
		},
	})
	app.Post("/admin-only",
		func(c *fiber.Ctx) error {
			if principal != nil {
				c.Locals(principalKey, principal)
			}
			return c.Next()
		},
		RequireAdmin(users),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)
	return app
}

func TestRequireAdmin(t *testing.T) {
	store := testutil.NewMemStore()
	admin := store.AddUser(&domain.User{Name: "Root", Role: domain.RoleAdmin})
	voter := store.AddUser(&domain.User{Name: "V", Role: domain.RoleVoter})

	tests := []struct {
		name       string
		principal  *Principal
		getErr     error
		wantStatus int
	}{
		{"admin passes", &Principal{User: &domain.User{ID: admin.ID}}, nil, http.StatusOK},
		{"voter forbidden", &Principal{User: &domain.User{ID: voter.ID}}, nil, http.StatusForbidden},
		{"unknown user forbidden", &Principal{User: &domain.User{ID: "ghost"}}, nil, http.StatusForbidden},
		{"no principal forbidden", nil, nil, http.StatusForbidden},
		// lookup errors are swallowed into a non-admin result, never a 500
		{"store error fails closed", &Principal{User: &domain.User{ID: admin.ID}}, errors.New("connection refused"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store.Users.GetErr = tt.getErr
			defer func() { store.Users.GetErr = nil }()

			app := newGateApp(store.Users, tt.principal)
			req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
