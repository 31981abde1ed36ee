package graph

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/logger"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

//go:embed schema.graphqls
var schemaSource string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSource})

// fieldResolver resolves one root field from its coerced arguments.
type fieldResolver func(ctx context.Context, a args) (any, error)

type directiveFunc func(ctx context.Context, d *ast.Directive, next graphql.Resolver) (any, error)

// executableSchema runs operations against the bound resolvers. Selection
// sets are applied to the resolver result after it is encoded, so nested
// types need no resolvers of their own. Complexity comes from the embedded
// nil interface and must not be called; no complexity limit is installed.
type executableSchema struct {
	graphql.ExecutableSchema

	queries    map[string]fieldResolver
	mutations  map[string]fieldResolver
	directives map[string]directiveFunc
}

func newExecutableSchema(r *Resolver, d DirectiveRoot) *executableSchema {
	return &executableSchema{
		queries:   r.Query().fields(),
		mutations: r.Mutation().fields(),
		directives: map[string]directiveFunc{
			"auth": func(ctx context.Context, _ *ast.Directive, next graphql.Resolver) (any, error) {
				return d.Auth(ctx, nil, next)
			},
			"hasRole": func(ctx context.Context, dir *ast.Directive, next graphql.Resolver) (any, error) {
				return d.HasRole(ctx, nil, next, directiveRoles(dir))
			},
		},
	}
}

func directiveRoles(d *ast.Directive) []model.Role {
	raw, _ := d.ArgumentMap(nil)["roles"].([]any)
	roles := make([]model.Role, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, model.Role(s))
		}
	}
	return roles
}

func (e *executableSchema) Schema() *ast.Schema {
	return parsedSchema
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)

	switch opCtx.Operation.Operation {
	case ast.Query:
		return graphql.OneShot(e.execRoot(ctx, opCtx, "Query", e.queries))
	case ast.Mutation:
		return graphql.OneShot(e.execRoot(ctx, opCtx, "Mutation", e.mutations))
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported operation: %s", opCtx.Operation.Operation))
	}
}

// execRoot resolves root fields in document order. An error on a non-null
// root field nulls the whole data object.
func (e *executableSchema) execRoot(ctx context.Context, opCtx *graphql.OperationContext, typeName string, resolvers map[string]fieldResolver) *graphql.Response {
	var (
		data     object
		errs     gqlerror.List
		nullData bool
	)

	for _, f := range graphql.CollectFields(opCtx, opCtx.Operation.SelectionSet, []string{typeName}) {
		if f.Name == "__typename" {
			data = append(data, member{f.Alias, typeName})
			continue
		}

		val, err := e.resolveField(ctx, opCtx, f, resolvers[f.Name])
		if err != nil {
			errs = append(errs, presentError(ctx, err, f.Field))
			nullData = nullData || (f.Definition != nil && f.Definition.Type.NonNull)
			data = append(data, member{f.Alias, nil})
			continue
		}
		data = append(data, member{f.Alias, project(opCtx, val, f.Selections, f.Definition.Type)})
	}

	resp := &graphql.Response{Errors: errs, Data: json.RawMessage("null")}
	if nullData {
		return resp
	}
	raw, err := json.Marshal(data)
	if err != nil {
		logger.FromCtx(ctx).Error("failed encoding response", zap.Error(err))
		return graphql.ErrorResponse(ctx, "internal server error")
	}
	resp.Data = raw
	return resp
}

// resolveField runs the field's directives around its resolver and returns
// the result as decoded JSON.
func (e *executableSchema) resolveField(ctx context.Context, opCtx *graphql.OperationContext, f graphql.CollectedField, resolve fieldResolver) (val any, err error) {
	if resolve == nil {
		return nil, fmt.Errorf("no resolver bound for %s", f.Name)
	}
	defer func() {
		if r := recover(); r != nil {
			logger.FromCtx(ctx).Error("resolver panicked", zap.String("field", f.Name), zap.Any("panic", r), zap.Stack("stack"))
			val, err = nil, fmt.Errorf("resolver for %s panicked", f.Name)
		}
	}()

	a := args(f.ArgumentMap(opCtx.Variables))
	next := graphql.Resolver(func(ctx context.Context) (any, error) {
		return resolve(ctx, a)
	})
	for i := len(f.Definition.Directives) - 1; i >= 0; i-- {
		d := f.Definition.Directives[i]
		wrap, ok := e.directives[d.Name]
		if !ok {
			continue
		}
		inner := next
		next = func(ctx context.Context) (any, error) {
			return wrap(ctx, d, inner)
		}
	}

	res, err := next(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&val); err != nil {
		return nil, err
	}
	return val, nil
}

// project keeps only the selected fields of v, renamed to their aliases.
func project(opCtx *graphql.OperationContext, v any, sel ast.SelectionSet, typ *ast.Type) any {
	if v == nil {
		return nil
	}
	if typ.Elem != nil {
		list, ok := v.([]any)
		if !ok {
			return nil
		}
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = project(opCtx, item, sel, typ.Elem)
		}
		return out
	}
	if len(sel) == 0 {
		return v
	}

	fields, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	typeName := typ.Name()
	out := object{}
	for _, f := range graphql.CollectFields(opCtx, sel, []string{typeName}) {
		if f.Name == "__typename" {
			out = append(out, member{f.Alias, typeName})
			continue
		}
		out = append(out, member{f.Alias, project(opCtx, fields[f.Name], f.Selections, f.Definition.Type)})
	}
	return out
}

type member struct {
	key   string
	value any
}

// object is a JSON object that keeps the order of the selection set.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
