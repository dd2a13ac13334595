package hub

import (
	"context"
	"fmt"

	"github.com/academic-hub/csv-portal/internal/timewindow"
)

// MaxStoredRows is the row cap passed to the stored accessor when cap
// enforcement is on.
const MaxStoredRows = 500000

// Collaborator is the slice of the hub client the dispatcher needs.
type Collaborator interface {
	NamespaceOf(dataset string) (string, error)
	AssetDataviews(ctx context.Context, dataset, filter, asset string) ([]string, error)
	DataviewInterpolated(ctx context.Context, ns, dataview, startISO, endISO, interval string) (*Table, error)
	DataviewStored(ctx context.Context, ns, dataview, startISO, endISO string, resume bool, maxRows int) (*Table, error)
}

// Request is one resolved dataview fetch.
type Request struct {
	Dataset string
	Asset   string
	Window  timewindow.Window
	Kind    Kind

	// Interpolation is required for KindInterpolated, format HH:MM:SS.
	// Not validated locally; the hub accessor is the validator.
	Interpolation string

	// Resume continues a prior paged stored fetch.
	Resume bool

	// EnforceRowCap selects the stored variant that passes MaxStoredRows
	// through to the accessor.
	EnforceRowCap bool
}

// FetchDataview maps the kind selection onto exactly one hub accessor call,
// against the first dataview associated with the asset. An empty table is a
// success ("no data for this range"), never an error.
func FetchDataview(ctx context.Context, req Request, hub Collaborator) (*Table, error) {
	ns, err := hub.NamespaceOf(req.Dataset)
	if err != nil {
		return nil, err
	}

	dvs, err := hub.AssetDataviews(ctx, req.Dataset, "", req.Asset)
	if err != nil {
		return nil, err
	}
	if len(dvs) == 0 {
		return nil, fmt.Errorf("no dataview for asset %q", req.Asset)
	}
	dataview := dvs[0]

	start, end := req.Window.StartISO(), req.Window.EndISO()

	switch req.Kind {
	case KindInterpolated:
		return hub.DataviewInterpolated(ctx, ns, dataview, start, end, req.Interpolation)
	case KindStored:
		maxRows := 0
		if req.EnforceRowCap {
			maxRows = MaxStoredRows
		}
		return hub.DataviewStored(ctx, ns, dataview, start, end, req.Resume, maxRows)
	default:
		return nil, fmt.Errorf("unknown dataview kind %q", req.Kind)
	}
}
