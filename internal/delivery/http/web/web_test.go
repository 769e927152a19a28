package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/launchpad/internal/delivery/http/httpauth"
	"github.com/adanyl0v/launchpad/internal/models"
	"github.com/adanyl0v/launchpad/internal/services"
	"github.com/adanyl0v/launchpad/internal/services/servicestest"
)

const testToken = "token"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

type testEnv struct {
	router    *gin.Engine
	auth      *servicestest.Auth
	profiles  *servicestest.Profiles
	tasks     *servicestest.Tasks
	templates *servicestest.Templates
	groups    *servicestest.Groups
}

func newTestEnv(t *testing.T, userID, role string) *testEnv {
	t.Helper()

	auth, sessions := servicestest.SignedIn(testToken, userID, servicestest.HTTPTestFingerprint)
	env := &testEnv{
		auth: auth,
		profiles: &servicestest.Profiles{
			GetProfileFunc: func(_ context.Context, id string) (*models.Profile, error) {
				return &models.Profile{ID: id, Email: id + "@example.com", Role: role}, nil
			},
		},
		tasks:     &servicestest.Tasks{},
		templates: &servicestest.Templates{},
		groups:    &servicestest.Groups{},
	}

	logger := zerolog.Nop()
	h := New(logger, httpauth.NewAuthenticator(logger, auth, sessions, false), fakePinger{}, Services{
		Auth:      auth,
		Profiles:  env.profiles,
		Tasks:     env.tasks,
		Templates: env.templates,
		Groups:    env.groups,
	}, Options{Organization: "Microsoft", TaskKeyword: "microsoft"})

	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	env.router = gin.New()
	env.router.SetHTMLTemplate(tmpl)
	RegisterRoutes(env.router, h)
	return env
}

func (e *testEnv) get(target string, signedIn bool) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, target, nil), signedIn)
}

func (e *testEnv) post(target string, form url.Values, signedIn bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req, signedIn)
}

func (e *testEnv) do(req *http.Request, signedIn bool) *httptest.ResponseRecorder {
	if signedIn {
		req.AddCookie(&http.Cookie{Name: httpauth.AccessTokenCookie, Value: testToken})
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func dueIn(days int) *time.Time {
	d := time.Now().AddDate(0, 0, days)
	return &d
}

func TestProtectedPagesRedirectAnonymousToLogin(t *testing.T) {
	env := newTestEnv(t, "employee-1", models.RoleEmployee)

	for _, target := range []string{"/dashboard", "/profile", "/admin", "/employee/e-2"} {
		w := env.get(target, false)
		assert.Equal(t, http.StatusFound, w.Code, target)
		assert.Equal(t, "/login", w.Header().Get("Location"), target)
	}
}

func TestAdminRedirectsNonManagers(t *testing.T) {
	for _, role := range []string{models.RoleEmployee, models.RoleIndividualContributor, models.RoleHR} {
		env := newTestEnv(t, "user-1", role)

		w := env.get("/admin", true)
		assert.Equal(t, http.StatusFound, w.Code, role)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"), role)
	}
}

func TestAdminListsReportsWithProgress(t *testing.T) {
	env := newTestEnv(t, "manager-1", models.RoleManager)
	name := "Ada Lovelace"
	env.profiles.ListReportsFunc = func(_ context.Context, managerID string) ([]*models.Profile, error) {
		assert.Equal(t, "manager-1", managerID)
		return []*models.Profile{{ID: "e-1", Email: "ada@example.com", FullName: &name, Role: models.RoleEmployee}}, nil
	}
	env.tasks.GetTasksByAssigneeFunc = func(context.Context, string) ([]*models.Task, error) {
		return []*models.Task{
			{ID: "a", Title: "Laptop", Status: models.StatusCompleted},
			{ID: "b", Title: "Badge", Status: models.StatusPending},
		}, nil
	}
	env.tasks.GetTasksAssignedByFunc = func(context.Context, string) ([]*models.Task, error) {
		return nil, nil
	}

	w := env.get("/admin", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada Lovelace")
	assert.Contains(t, w.Body.String(), "1 of 2 tasks completed (50%)")
}

func TestLoginWithWrongPasswordShowsError(t *testing.T) {
	env := newTestEnv(t, "employee-1", models.RoleEmployee)
	env.auth.LoginFunc = func(context.Context, services.LoginParams) (*services.LoginResult, error) {
		return nil, services.ErrUserPasswordMismatch
	}

	w := env.post("/login", url.Values{
		"email":    {"new.hire@example.com"},
		"password": {"wrong"},
	}, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.Empty(t, w.Result().Cookies())
	assert.Contains(t, w.Body.String(), "Invalid email or password.")
	assert.Contains(t, w.Body.String(), `value="new.hire@example.com"`)
}

func TestLoginRedirectsToDashboard(t *testing.T) {
	env := newTestEnv(t, "employee-1", models.RoleEmployee)
	env.auth.LoginFunc = func(_ context.Context, params services.LoginParams) (*services.LoginResult, error) {
		assert.Equal(t, servicestest.HTTPTestFingerprint, params.Fingerprint)
		return &services.LoginResult{
			UserID:                "employee-1",
			AccessToken:           "access",
			AccessTokenExpiresAt:  time.Now().Add(time.Hour),
			RefreshToken:          "refresh",
			RefreshTokenExpiresAt: time.Now().Add(24 * time.Hour),
		}, nil
	}

	w := env.post("/login", url.Values{
		"email":    {"new.hire@example.com"},
		"password": {"secret"},
	}, false)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	assert.Len(t, w.Result().Cookies(), 2)
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	env := newTestEnv(t, "employee-1", models.RoleEmployee)
	env.auth.RegisterFunc = func(context.Context, services.RegisterParams) (*services.LoginResult, error) {
		t.Fatal("register must not be called")
		return nil, nil
	}

	w := env.post("/register", url.Values{
		"email":            {"new.hire@example.com"},
		"password":         {"secret1"},
		"confirm_password": {"secret2"},
		"role":             {models.RoleEmployee},
	}, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match.")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, "employee-1", models.RoleEmployee)
	env.auth.RegisterFunc = func(context.Context, services.RegisterParams) (*services.LoginResult, error) {
		return nil, services.ErrUserAlreadyExists
	}

	w := env.post("/register", url.Values{
		"email":            {"new.hire@example.com"},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
	}, false)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "An account with this email already exists.")
}

func TestDashboardToggleUpdatesProgress(t *testing.T) {
	env := newTestEnv(t, "employee-1", models.RoleEmployee)
	tasks := []*models.Task{
		{ID: "t-1", Title: "Sign NDA", Status: models.StatusPending, DueDate: dueIn(1), AssignedTo: "employee-1"},
		{ID: "t-2", Title: "Meet the team", Status: models.StatusPending, AssignedTo: "employee-1"},
	}
	env.tasks.GetTasksByAssigneeFunc = func(_ context.Context, userID string) ([]*models.Task, error) {
		assert.Equal(t, "employee-1", userID)
		return tasks, nil
	}
	env.tasks.ToggleTaskCompletionFunc = func(_ context.Context, userID, taskID string) (*models.Task, error) {
		for _, task := range tasks {
			if task.ID == taskID && task.AssignedTo == userID {
				task.Status = models.StatusCompleted
				return task, nil
			}
		}
		return nil, services.ErrTaskNotFound
	}

	w := env.get("/dashboard", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0 of 2 tasks completed (0%)")

	w = env.post("/dashboard/tasks/t-1/toggle?filter=priority-tasks", url.Values{}, true)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard?filter=priority-tasks", w.Header().Get("Location"))

	w = env.get("/dashboard", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 of 2 tasks completed (50%)")
}

func TestDashboardFilters(t *testing.T) {
	env := newTestEnv(t, "employee-1", models.RoleEmployee)
	env.tasks.GetTasksByAssigneeFunc = func(context.Context, string) ([]*models.Task, error) {
		return []*models.Task{
			{ID: "done", Title: "Sign NDA", Status: models.StatusCompleted},
			{ID: "open", Title: "Microsoft Teams setup", Status: models.StatusPending},
		}, nil
	}

	tests := []struct {
		filter   string
		contains string
		excludes string
	}{
		{filter: "completed-tasks", contains: "Sign NDA", excludes: "Microsoft Teams setup"},
		{filter: "get-started", contains: "Microsoft Teams setup", excludes: "Sign NDA"},
		{filter: "keyword-tasks", contains: "Microsoft Teams setup", excludes: "Sign NDA"},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			w := env.get("/dashboard?filter="+tt.filter, true)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
			assert.NotContains(t, w.Body.String(), tt.excludes)
		})
	}

	w := env.get("/dashboard?filter=bogus", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sign NDA")
	assert.Contains(t, w.Body.String(), "Microsoft tasks")
}

func TestEmployeeRedirectsWhenNotDirectReport(t *testing.T) {
	env := newTestEnv(t, "manager-1", models.RoleManager)
	env.profiles.GetReportFunc = func(context.Context, string, string) (*models.Profile, error) {
		return nil, services.ErrNotDirectReport
	}

	w := env.get("/employee/e-9", true)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestEmployeeAssignGroup(t *testing.T) {
	env := newTestEnv(t, "manager-1", models.RoleManager)
	env.groups.AssignGroupFunc = func(_ context.Context, params services.AssignGroupParams) ([]*models.Task, error) {
		assert.Equal(t, "g-1", params.GroupID)
		assert.Equal(t, "e-1", params.AssignedTo)
		assert.Equal(t, "manager-1", params.AssignedBy)
		require.NotNil(t, params.DueDate)
		assert.Equal(t, "2026-11-02", params.DueDate.Format(time.DateOnly))
		return []*models.Task{{ID: "t-1"}}, nil
	}

	w := env.post("/employee/e-1/groups", url.Values{
		"group_id": {"g-1"},
		"due_date": {"2026-11-02"},
	}, true)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/employee/e-1", w.Header().Get("Location"))
}

func TestProfileShowsPlaceholders(t *testing.T) {
	env := newTestEnv(t, "employee-1", models.RoleEmployee)

	w := env.get("/profile", true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Not provided")
	assert.Contains(t, body, "Not assigned")
	assert.Contains(t, body, "Not set")
	assert.Contains(t, body, "No manager assigned")
}

func TestConnectionTestReportsDatabaseError(t *testing.T) {
	env := newTestEnv(t, "employee-1", models.RoleEmployee)
	logger := zerolog.Nop()
	auth, sessions := servicestest.SignedIn(testToken, "employee-1", servicestest.HTTPTestFingerprint)
	h := New(logger, httpauth.NewAuthenticator(logger, auth, sessions, false),
		fakePinger{err: errors.New("connection refused")}, Services{Auth: auth, Profiles: env.profiles}, Options{})
	router := gin.New()
	tmpl, err := LoadTemplates()
	require.NoError(t, err)
	router.SetHTMLTemplate(tmpl)
	RegisterRoutes(router, h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/connection-test", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestUpdateProfileClearsBlankFields(t *testing.T) {
	env := newTestEnv(t, "employee-1", models.RoleEmployee)
	var got services.UpdateProfileParams
	env.profiles.UpdateProfileFunc = func(_ context.Context, params services.UpdateProfileParams) (*models.Profile, error) {
		got = params
		return &models.Profile{ID: params.ID}, nil
	}

	w := env.post("/profile", url.Values{
		"full_name":  {" Sam Park "},
		"department": {""},
		"hire_date":  {""},
	}, true)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "employee-1", got.ID)
	require.NotNil(t, got.FullName)
	assert.Equal(t, "Sam Park", *got.FullName)
	require.NotNil(t, got.Department)
	assert.Empty(t, *got.Department)
	assert.Nil(t, got.HireDate)
	assert.True(t, got.ClearHireDate)
	assert.Nil(t, got.Role)
	assert.Nil(t, got.ManagerID)
}

func TestUpdateProfileKeepsMissingFields(t *testing.T) {
	env := newTestEnv(t, "employee-1", models.RoleEmployee)
	var got services.UpdateProfileParams
	env.profiles.UpdateProfileFunc = func(_ context.Context, params services.UpdateProfileParams) (*models.Profile, error) {
		got = params
		return &models.Profile{ID: params.ID}, nil
	}

	w := env.post("/profile", url.Values{"hire_date": {"2026-11-02"}}, true)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Nil(t, got.FullName)
	assert.Nil(t, got.Department)
	require.NotNil(t, got.HireDate)
	assert.Equal(t, "2026-11-02", got.HireDate.Format(time.DateOnly))
	assert.False(t, got.ClearHireDate)
}

func TestFilterLinksCapitalizeMultibyteKeyword(t *testing.T) {
	h := &handlerImpl{opts: Options{TaskKeyword: "école"}}

	var label string
	for _, link := range h.filterLinks() {
		if link.Key == "keyword-tasks" {
			label = link.Label
		}
	}
	assert.Equal(t, "École tasks", label)
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	env := newTestEnv(t, "manager-1", models.RoleManager)
	invalid := &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}
	env.tasks.ToggleTaskCompletionFunc = func(context.Context, string, string) (*models.Task, error) {
		return nil, invalid
	}
	env.profiles.GetReportFunc = func(context.Context, string, string) (*models.Profile, error) {
		return nil, invalid
	}
	env.groups.AssignGroupFunc = func(context.Context, services.AssignGroupParams) ([]*models.Task, error) {
		return nil, invalid
	}

	w := env.post("/dashboard/tasks/not-a-uuid/toggle", url.Values{}, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.get("/employee/not-a-uuid", true)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	w = env.post("/employee/e-1/groups", url.Values{"group_id": {"not-a-uuid"}}, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
