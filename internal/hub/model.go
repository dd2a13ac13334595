package hub

import "fmt"

// Kind selects which dataview accessor a fetch is dispatched to.
type Kind string

const (
	KindInterpolated Kind = "Interpolated"
	KindStored       Kind = "Stored"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindInterpolated, KindStored:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown dataview kind %q", s)
	}
}

// Table is the portable result shape. Stored views are narrow
// (Timestamp, Value, Field); interpolated views carry one column per
// asset attribute with Timestamp first.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Head returns a copy limited to the first n rows, for previews.
func (t *Table) Head(n int) *Table {
	if t == nil {
		return &Table{}
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// Dataset is one catalog entry from the hub.
type Dataset struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Status    string `json:"status,omitempty"`
}

// Asset is one asset of the current dataset.
type Asset struct {
	AssetID     string `json:"asset_id"`
	Description string `json:"description,omitempty"`
}
