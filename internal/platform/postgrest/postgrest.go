// Package postgrest implementa repository.ProfileRepository sobre la data API
// REST del platform hosteado (/rest/v1), tabla `users` keyed por auth_uid.
package postgrest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hiredvalley/hired-backend/internal/domain/repository"
	"github.com/hiredvalley/hired-backend/internal/platform"
	"github.com/hiredvalley/hired-backend/internal/platform/rest"
)

const (
	basePath     = "/rest/v1"
	defaultTable = "users"
)

// Adapter es seguro para uso concurrente.
type Adapter struct {
	rc    *rest.Client
	table string
}

// New crea el adapter. table vacío usa "users".
func New(projectURL, apiKey, table string, hc *http.Client) *Adapter {
	if table == "" {
		table = defaultTable
	}
	return &Adapter{rc: rest.NewClient(projectURL, apiKey, hc), table: table}
}

var _ repository.ProfileRepository = (*Adapter)(nil)

func (a *Adapter) path() string { return basePath + "/" + a.table }

func byAuthUID(authUID string, extra url.Values) url.Values {
	q := url.Values{"auth_uid": {"eq." + authUID}}
	for k, v := range extra {
		q[k] = v
	}
	return q
}

var (
	returnMinimal        = http.Header{"Prefer": {"return=minimal"}}
	returnRepresentation = http.Header{"Prefer": {"return=representation"}}
)

func (a *Adapter) Exists(ctx context.Context, authUID string) (bool, error) {
	const op = "postgrest.profile_exists"

	resp, err := a.rc.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   a.path(),
		Query:  byAuthUID(authUID, url.Values{"select": {"auth_uid"}, "limit": {"1"}}),
	})
	if err != nil {
		return false, platform.Internal(op, err)
	}
	if !resp.OK() {
		return false, classify(op, resp)
	}
	var rows []struct {
		AuthUID string `json:"auth_uid"`
	}
	if err := resp.Decode(&rows); err != nil {
		return false, platform.Internal(op, err)
	}
	return len(rows) > 0, nil
}

func (a *Adapter) Insert(ctx context.Context, p repository.Profile) error {
	const op = "postgrest.insert_profile"

	resp, err := a.rc.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   a.path(),
		Body: repository.Profile{
			AuthUID:   p.AuthUID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Role:      p.Role,
		},
		Header: returnMinimal,
	})
	if err != nil {
		return platform.Internal(op, err)
	}
	if !resp.OK() {
		return classify(op, resp)
	}
	return nil
}

func (a *Adapter) Update(ctx context.Context, authUID string, f repository.ProfileFields) error {
	const op = "postgrest.update_profile"

	resp, err := a.rc.Do(ctx, rest.Request{
		Method: http.MethodPatch,
		Path:   a.path(),
		Query:  byAuthUID(authUID, url.Values{"select": {"auth_uid"}}),
		Body:   f,
		Header: returnRepresentation,
	})
	if err != nil {
		return platform.Internal(op, err)
	}
	if !resp.OK() {
		return classify(op, resp)
	}
	// Un PATCH que no matchea filas responde 200 con [].
	var rows []struct {
		AuthUID string `json:"auth_uid"`
	}
	if err := resp.Decode(&rows); err != nil {
		return platform.Internal(op, err)
	}
	if len(rows) == 0 {
		return platform.NotFound(op, repository.ErrNotFound)
	}
	return nil
}

func (a *Adapter) Get(ctx context.Context, authUID string) (*repository.Profile, bool, error) {
	const op = "postgrest.fetch_profile"

	resp, err := a.rc.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   a.path(),
		Query:  byAuthUID(authUID, url.Values{"select": {"*"}, "limit": {"1"}}),
	})
	if err != nil {
		return nil, false, platform.Internal(op, err)
	}
	if !resp.OK() {
		pe := classify(op, resp)
		if pe.Kind == platform.KindNotFound {
			return nil, false, nil
		}
		return nil, false, pe
	}
	var rows []repository.Profile
	if err := resp.Decode(&rows); err != nil {
		return nil, false, platform.Internal(op, err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return &rows[0], true, nil
}
