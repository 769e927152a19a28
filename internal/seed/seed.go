// Package seed loads task templates and task groups from a YAML file.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/adanyl0v/launchpad/internal/services"
)

// Example is the onboarding catalog used when no seed file is given.
//
//go:embed example.yaml
var Example []byte

type File struct {
	Templates []Template `yaml:"templates"`
	Groups    []Group    `yaml:"groups"`
}

// Template is referenced by its Key from groups in the same file.
type Template struct {
	Key            string `yaml:"key"`
	Title          string `yaml:"title"`
	Description    string `yaml:"description,omitempty"`
	EstimatedHours *int   `yaml:"estimated_hours,omitempty"`
	Department     string `yaml:"department,omitempty"`
}

type Group struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Department  string   `yaml:"department,omitempty"`
	Templates   []string `yaml:"templates"`
}

type Result struct {
	Templates int
	Groups    int
}

// Parse decodes and validates a seed file. Unknown fields are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	err := dec.Decode(&f)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	err = f.validate()
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func ParseBytes(data []byte) (*File, error) {
	return Parse(bytes.NewReader(data))
}

func (f *File) validate() error {
	keys := make(map[string]struct{}, len(f.Templates))
	for i, t := range f.Templates {
		if strings.TrimSpace(t.Key) == "" {
			return fmt.Errorf("template #%d: key is required", i+1)
		}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("template %q: title is required", t.Key)
		}
		if t.EstimatedHours != nil && *t.EstimatedHours < 0 {
			return fmt.Errorf("template %q: estimated_hours must not be negative", t.Key)
		}
		if _, ok := keys[t.Key]; ok {
			return fmt.Errorf("template %q: duplicate key", t.Key)
		}
		keys[t.Key] = struct{}{}
	}

	for i, g := range f.Groups {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("group #%d: name is required", i+1)
		}
		seen := make(map[string]struct{}, len(g.Templates))
		for _, key := range g.Templates {
			if _, ok := keys[key]; !ok {
				return fmt.Errorf("group %q: unknown template %q", g.Name, key)
			}
			if _, ok := seen[key]; ok {
				return fmt.Errorf("group %q: template %q listed twice", g.Name, key)
			}
			seen[key] = struct{}{}
		}
	}
	return nil
}

// Beginner starts the transaction a seed file is loaded in.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Loader struct {
	logger zerolog.Logger
	db     Beginner
	open   func(tx pgx.Tx) (services.TemplateService, services.GroupService)
}

func NewLoader(logger zerolog.Logger, db Beginner) *Loader {
	return &Loader{
		logger: logger,
		db:     db,
		open: func(tx pgx.Tx) (services.TemplateService, services.GroupService) {
			return services.NewTemplateService(logger, tx), services.NewGroupService(logger, tx)
		},
	}
}

// Load creates every template, then every group with its templates in
// file order, in a single transaction. Nothing is kept if any insert
// fails. createdBy must be an existing profile ID.
func (l *Loader) Load(ctx context.Context, f *File, createdBy string) (*Result, error) {
	tx, err := l.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	templates, groups := l.open(tx)
	err = l.load(ctx, templates, groups, f, createdBy)
	if err != nil {
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	result := &Result{Templates: len(f.Templates), Groups: len(f.Groups)}
	l.logger.Info().
		Int("templates", result.Templates).
		Int("groups", result.Groups).
		Msg("loaded seed file")
	return result, nil
}

func (l *Loader) load(
	ctx context.Context,
	templates services.TemplateService,
	groups services.GroupService,
	f *File,
	createdBy string,
) error {
	ids := make(map[string]string, len(f.Templates))
	for _, t := range f.Templates {
		template, err := templates.CreateTemplate(ctx, services.CreateTemplateParams{
			Title:          t.Title,
			Description:    optional(t.Description),
			EstimatedHours: t.EstimatedHours,
			Department:     optional(t.Department),
			CreatedBy:      createdBy,
		})
		if err != nil {
			return fmt.Errorf("failed to create template %q: %w", t.Key, err)
		}
		ids[t.Key] = template.ID

		l.logger.Debug().
			Str("key", t.Key).
			Str("template_id", template.ID).
			Msg("seeded template")
	}

	for _, g := range f.Groups {
		group, err := groups.CreateGroup(ctx, services.CreateGroupParams{
			Name:        g.Name,
			Description: optional(g.Description),
			Department:  optional(g.Department),
			CreatedBy:   createdBy,
		})
		if err != nil {
			return fmt.Errorf("failed to create group %q: %w", g.Name, err)
		}

		for i, key := range g.Templates {
			err = groups.AddTemplateToGroup(ctx, group.ID, ids[key], i)
			if err != nil {
				return fmt.Errorf("failed to add template %q to group %q: %w", key, g.Name, err)
			}
		}

		l.logger.Debug().
			Str("group_id", group.ID).
			Int("templates", len(g.Templates)).
			Msg("seeded group")
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
