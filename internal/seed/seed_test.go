package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/launchpad/internal/models"
	"github.com/adanyl0v/launchpad/internal/services"
	"github.com/adanyl0v/launchpad/internal/services/servicestest"
)

func TestParseExample(t *testing.T) {
	f, err := ParseBytes(Example)
	require.NoError(t, err)

	require.Len(t, f.Templates, 5)
	require.Len(t, f.Groups, 2)
	assert.Equal(t, []string{"nda", "laptop", "teams"}, f.Groups[0].Templates)
	require.NotNil(t, f.Templates[1].EstimatedHours)
	assert.Equal(t, 3, *f.Templates[1].EstimatedHours)
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Templates)
}

func TestParseRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown field",
			content: "templates:\n  - key: a\n    title: A\n    owner: me\n",
			wantErr: "failed to decode seed file",
		},
		{
			name:    "missing key",
			content: "templates:\n  - title: A\n",
			wantErr: "template #1: key is required",
		},
		{
			name:    "missing title",
			content: "templates:\n  - key: a\n",
			wantErr: `template "a": title is required`,
		},
		{
			name:    "duplicate key",
			content: "templates:\n  - key: a\n    title: A\n  - key: a\n    title: B\n",
			wantErr: `template "a": duplicate key`,
		},
		{
			name:    "negative hours",
			content: "templates:\n  - key: a\n    title: A\n    estimated_hours: -1\n",
			wantErr: `template "a": estimated_hours must not be negative`,
		},
		{
			name:    "unknown template in group",
			content: "templates:\n  - key: a\n    title: A\ngroups:\n  - name: G\n    templates: [b]\n",
			wantErr: `group "G": unknown template "b"`,
		},
		{
			name:    "template listed twice",
			content: "templates:\n  - key: a\n    title: A\ngroups:\n  - name: G\n    templates: [a, a]\n",
			wantErr: `group "G": template "a" listed twice`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func newTestLoader(
	t *testing.T,
	templates services.TemplateService,
	groups services.GroupService,
) (*Loader, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	loader := NewLoader(zerolog.Nop(), mock)
	loader.open = func(pgx.Tx) (services.TemplateService, services.GroupService) {
		return templates, groups
	}
	return loader, mock
}

type addedTemplate struct {
	groupID    string
	templateID string
	orderIndex int
}

func TestLoaderLoad(t *testing.T) {
	f, err := ParseBytes(Example)
	require.NoError(t, err)

	var created []services.CreateTemplateParams
	templates := &servicestest.Templates{
		CreateTemplateFunc: func(_ context.Context, params services.CreateTemplateParams) (*models.TaskTemplate, error) {
			created = append(created, params)
			return &models.TaskTemplate{ID: fmt.Sprintf("tpl-%d", len(created)), Title: params.Title}, nil
		},
	}

	var added []addedTemplate
	groups := &servicestest.Groups{
		CreateGroupFunc: func(_ context.Context, params services.CreateGroupParams) (*models.TaskGroup, error) {
			assert.Equal(t, "author-1", params.CreatedBy)
			return &models.TaskGroup{ID: "grp-" + params.Name, Name: params.Name}, nil
		},
		AddTemplateToGroupFunc: func(_ context.Context, groupID, templateID string, orderIndex int) error {
			added = append(added, addedTemplate{groupID, templateID, orderIndex})
			return nil
		},
	}

	loader, mock := newTestLoader(t, templates, groups)
	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := loader.Load(context.Background(), f, "author-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, &Result{Templates: 5, Groups: 2}, result)
	require.Len(t, created, 5)
	assert.Nil(t, created[0].Department)
	require.NotNil(t, created[3].Department)
	assert.Equal(t, "Engineering", *created[3].Department)

	assert.Equal(t, []addedTemplate{
		{"grp-First day", "tpl-1", 0},
		{"grp-First day", "tpl-2", 1},
		{"grp-First day", "tpl-3", 2},
		{"grp-Engineering week one", "tpl-4", 0},
		{"grp-Engineering week one", "tpl-5", 1},
	}, added)
}

func TestLoaderStopsOnError(t *testing.T) {
	f, err := ParseBytes(Example)
	require.NoError(t, err)

	templates := &servicestest.Templates{
		CreateTemplateFunc: func(context.Context, services.CreateTemplateParams) (*models.TaskTemplate, error) {
			return nil, errors.New("insert failed")
		},
	}

	loader, mock := newTestLoader(t, templates, &servicestest.Groups{})
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = loader.Load(context.Background(), f, "author-1")
	assert.ErrorContains(t, err, `failed to create template "nda"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoaderRollsBackWhenAGroupFails(t *testing.T) {
	f, err := ParseBytes(Example)
	require.NoError(t, err)

	var created int
	templates := &servicestest.Templates{
		CreateTemplateFunc: func(_ context.Context, params services.CreateTemplateParams) (*models.TaskTemplate, error) {
			created++
			return &models.TaskTemplate{ID: fmt.Sprintf("tpl-%d", created), Title: params.Title}, nil
		},
	}
	groups := &servicestest.Groups{
		CreateGroupFunc: func(context.Context, services.CreateGroupParams) (*models.TaskGroup, error) {
			return nil, errors.New("insert failed")
		},
	}

	loader, mock := newTestLoader(t, templates, groups)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = loader.Load(context.Background(), f, "author-1")
	assert.ErrorContains(t, err, `failed to create group "First day"`)
	assert.Equal(t, 5, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoaderInsertsThroughTransaction(t *testing.T) {
	f, err := Parse(strings.NewReader("templates:\n  - key: nda\n    title: Sign the NDA\n"))
	require.NoError(t, err)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO task_templates").
		WithArgs(pgxmock.AnyArg(), "Sign the NDA", (*string)(nil), (*int)(nil), (*string)(nil), "author-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	_, err = NewLoader(zerolog.Nop(), mock).Load(context.Background(), f, "author-1")
	assert.ErrorContains(t, err, `failed to create template "nda"`)
	require.NoError(t, mock.ExpectationsWereMet())
}
