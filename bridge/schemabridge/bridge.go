package schemabridge

import (
	"context"
	"net/http"

	"github.com/jrazmi/stockdata/bridge/scaffolding/errs"
	"github.com/jrazmi/stockdata/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/stockdata/core/scaffolding/fop"
	"github.com/jrazmi/stockdata/infrastructure/datastores"
	"github.com/jrazmi/stockdata/infrastructure/web"
	"github.com/jrazmi/stockdata/schema/reflector"
)

// Source is the database the bridge reports on.
type Source interface {
	AppliedMigrations(ctx context.Context) ([]datastores.Migration, error)
	ReflectorStore() reflector.Store
}

type bridge struct {
	source Source
}

func newBridge(source Source) *bridge {
	return &bridge{source: source}
}

func (b *bridge) httpListMigrations(ctx context.Context, r *http.Request) web.Encoder {
	applied, err := b.source.AppliedMigrations(ctx)
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}

	records := toBridgeMigrations(applied)
	return fopbridge.NewPaginatedResponse(records, fop.PageInfoStringCursor{PageTotal: len(records)})
}

// httpVerify answers 200 either way; ok is false when the schema drifted.
func (b *bridge) httpVerify(ctx context.Context, r *http.Request) web.Encoder {
	schema, err := reflector.NewReflector(b.source.ReflectorStore()).Reflect(ctx, r.URL.Query().Get("schema"))
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}

	violations := reflector.Verify(schema, reflector.StockDataExpectations())
	return fopbridge.NewRecordResponse(toVerification(schema, violations))
}
