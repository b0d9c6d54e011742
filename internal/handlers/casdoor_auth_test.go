package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
	"github.com/edigitalnetwork/course-service/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeParser accepts the tokens it knows
type fakeParser struct {
	claims map[string]*casdoorsdk.Claims
}

func (p fakeParser) ParseJwtToken(token string) (*casdoorsdk.Claims, error) {
	claims, ok := p.claims[token]
	if !ok {
		return nil, errors.New("signature is invalid")
	}
	return claims, nil
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*models.User
	upsertErr error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, repositories.ErrNotFound)
	}
	return u, nil
}

func (r *fakeUserRepo) Upsert(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.User
	for _, u := range r.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		result = append(result, u)
	}
	return result, int64(len(result)), nil
}

func claimsFor(id, userType string) *casdoorsdk.Claims {
	return &casdoorsdk.Claims{User: casdoorsdk.User{Id: id, Name: id, Type: userType}}
}

func newAuthRouter(repo *fakeUserRepo, roles ...models.UserRole) *gin.Engine {
	parser := fakeParser{claims: map[string]*casdoorsdk.Claims{
		"lecturer-token": claimsFor("lec-1", "lecturer"),
		"student-token":  claimsFor("stu-1", "student"),
		"admin-token":    claimsFor("adm-1", "admin"),
		"anonymous":      claimsFor("", "student"),
	}}
	auth := NewAuthMiddlewareWithParser(parser, repo, testLogger())

	router := gin.New()
	handlers := []gin.HandlerFunc{auth.AuthMiddleware()}
	if len(roles) > 0 {
		handlers = append(handlers, auth.RequireRoleMiddleware(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, "%s:%s", user.ID, user.Role)
	})
	router.GET("/protected", handlers...)
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not a bearer token", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer forged", wantStatus: http.StatusUnauthorized},
		{name: "token without user id", header: "Bearer anonymous", wantStatus: http.StatusUnauthorized},
		{name: "known user", header: "Bearer student-token", wantStatus: http.StatusOK, wantBody: "stu-1:student"},
		{name: "first login from claims", header: "bearer lecturer-token", wantStatus: http.StatusOK, wantBody: "lec-1:lecturer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo(&models.User{ID: "stu-1", Role: models.RoleStudent})
			router := newAuthRouter(repo)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAuthMiddleware_StoresFirstLogin(t *testing.T) {
	repo := newFakeUserRepo()
	router := newAuthRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer lecturer-token")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if _, ok := repo.users["lec-1"]; !ok {
		t.Error("first login should store the user")
	}

	// A failing store does not block the request
	repo = newFakeUserRepo()
	repo.upsertErr = errors.New("db down")
	router = newAuthRouter(repo)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRequireRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		roles      []models.UserRole
		wantStatus int
	}{
		{name: "lecturer on lecturer route", token: "lecturer-token", roles: []models.UserRole{models.RoleLecturer}, wantStatus: http.StatusOK},
		{name: "student on lecturer route", token: "student-token", roles: []models.UserRole{models.RoleLecturer}, wantStatus: http.StatusForbidden},
		{name: "admin passes lecturer route", token: "admin-token", roles: []models.UserRole{models.RoleLecturer}, wantStatus: http.StatusOK},
		{name: "admin passes student route", token: "admin-token", roles: []models.UserRole{models.RoleStudent}, wantStatus: http.StatusOK},
		{name: "lecturer on admin route", token: "lecturer-token", roles: []models.UserRole{models.RoleAdmin}, wantStatus: http.StatusForbidden},
		{name: "any of several roles", token: "student-token", roles: []models.UserRole{models.RoleLecturer, models.RoleStudent}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(newFakeUserRepo(), tt.roles...)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRequireRoleMiddleware_NoUser(t *testing.T) {
	auth := NewAuthMiddlewareWithParser(fakeParser{}, newFakeUserRepo(), testLogger())
	router := gin.New()
	router.GET("/admin", auth.RequireRoleMiddleware(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer   abc", "abc", true},
		{"Bearer", "", false},
		{"Token abc", "", false},
		{"Bearer a b", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("bearerToken(%q) = %q, %v, want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCreateUserFromClaims(t *testing.T) {
	claims := &casdoorsdk.Claims{User: casdoorsdk.User{
		Id:      "u-1",
		Name:    "jdoe",
		Email:   "jdoe@example.edu",
		Type:    "teacher",
		Avatar:  "https://cdn.example.com/a.png",
		IsAdmin: false,
	}}

	user := createUserFromClaims(claims)
	if user.FullName != "jdoe" {
		t.Errorf("FullName = %q, want login name fallback", user.FullName)
	}
	if user.Role != models.RoleLecturer {
		t.Errorf("Role = %s, want lecturer", user.Role)
	}
	if user.AvatarURL == nil || *user.AvatarURL != claims.User.Avatar {
		t.Errorf("AvatarURL = %v", user.AvatarURL)
	}

	claims.User.IsAdmin = true
	claims.User.DisplayName = "Jane Doe"
	user = createUserFromClaims(claims)
	if user.Role != models.RoleAdmin || user.FullName != "Jane Doe" {
		t.Errorf("admin user = %+v", user)
	}
}
