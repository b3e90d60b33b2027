// Package admin keeps a registry of the shop's models together with the
// columns, filters and search fields of their changelists. Models are
// registered from the outside; the entities themselves know nothing about it.
package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/samber/lo"
)

// SearchParam is the query parameter carrying changelist search terms.
const SearchParam = "q"

// ListFunc returns every row of a model.
type ListFunc func(ctx context.Context) ([]any, error)

type ModelAdmin struct {
	Name         string
	ListDisplay  []string
	ListFilter   []string
	SearchFields []string
	List         ListFunc
}

type ModelInfo struct {
	Name         string   `json:"name"`
	ListDisplay  []string `json:"list_display"`
	ListFilter   []string `json:"list_filter"`
	SearchFields []string `json:"search_fields"`
}

type Changelist struct {
	Model   string            `json:"model"`
	Columns []string          `json:"columns"`
	Filters map[string]string `json:"filters,omitempty"`
	Search  string            `json:"search,omitempty"`
	Count   int               `json:"count"`
	Rows    []map[string]any  `json:"rows"`
}

type Site struct {
	models map[string]*ModelAdmin
}

func NewSite() *Site {
	return &Site{models: map[string]*ModelAdmin{}}
}

// Register adds a model. A model without ListDisplay shows every field.
func (s *Site) Register(m ModelAdmin) error {
	if m.Name == "" || m.List == nil {
		return fmt.Errorf("admin: model needs a name and a list function")
	}
	if _, exists := s.models[m.Name]; exists {
		return fmt.Errorf("admin: model %q already registered", m.Name)
	}
	s.models[m.Name] = &m
	return nil
}

func (s *Site) Get(name string) (*ModelAdmin, bool) {
	m, ok := s.models[name]
	return m, ok
}

// Models lists registrations ordered by name.
func (s *Site) Models() []ModelInfo {
	names := lo.Keys(s.models)
	sort.Strings(names)
	return lo.Map(names, func(name string, _ int) ModelInfo {
		m := s.models[name]
		return ModelInfo{
			Name:         m.Name,
			ListDisplay:  m.ListDisplay,
			ListFilter:   m.ListFilter,
			SearchFields: m.SearchFields,
		}
	})
}

// Changelist lists the rows of a model, narrowed by exact-match list_filter
// params and by a case-insensitive search over search_fields. Every search
// term must match at least one search field.
func (s *Site) Changelist(ctx context.Context, name string, params url.Values) (*Changelist, error) {
	m, ok := s.models[name]
	if !ok {
		return nil, fmt.Errorf("admin model %q %w", name, domain.ErrNotFound)
	}

	filters := map[string]string{}
	for key := range params {
		if key == SearchParam {
			continue
		}
		if !lo.Contains(m.ListFilter, key) {
			return nil, fmt.Errorf("%w: %q is not a filter of %s", domain.ErrValidation, key, name)
		}
		filters[key] = params.Get(key)
	}
	search := strings.TrimSpace(params.Get(SearchParam))

	items, err := m.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		row, err := toRow(item)
		if err != nil {
			return nil, err
		}
		if matchesFilters(row, filters) && matchesSearch(row, m.SearchFields, search) {
			rows = append(rows, row)
		}
	}

	columns := m.ListDisplay
	if len(columns) == 0 && len(items) > 0 {
		columns = FieldsOf(items[0])
	}
	rows = lo.Map(rows, func(row map[string]any, _ int) map[string]any {
		return lo.PickByKeys(row, columns)
	})

	return &Changelist{
		Model:   name,
		Columns: columns,
		Filters: filters,
		Search:  search,
		Count:   len(rows),
		Rows:    rows,
	}, nil
}

// FieldsOf returns the JSON field names of a struct in declaration order.
func FieldsOf(v any) []string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields = append(fields, name)
	}
	return fields
}

func toRow(item any) (map[string]any, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	var row map[string]any
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, err
	}
	return row, nil
}

func cell(row map[string]any, field string) string {
	v, ok := row[field]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func matchesFilters(row map[string]any, filters map[string]string) bool {
	for field, want := range filters {
		if cell(row, field) != want {
			return false
		}
	}
	return true
}

func matchesSearch(row map[string]any, fields []string, search string) bool {
	if search == "" || len(fields) == 0 {
		return true
	}
	for _, term := range strings.Fields(strings.ToLower(search)) {
		if !lo.SomeBy(fields, func(f string) bool {
			return strings.Contains(strings.ToLower(cell(row, f)), term)
		}) {
			return false
		}
	}
	return true
}
