package hub_test

import (
	"context"
	"testing"

	"github.com/academic-hub/csv-portal/internal/hub"
	"github.com/academic-hub/csv-portal/internal/timewindow"
)

// fakeHub records accessor calls so dispatch behavior can be asserted.
type fakeHub struct {
	interpolatedCalls int
	storedCalls       int

	gotNS        string
	gotDataset   string
	gotDataview  string
	gotStart     string
	gotEnd       string
	gotInterval  string
	gotResume    bool
	gotMaxRows   int
	dataviews    []string
	table        *hub.Table
	dataviewsErr error
}

func (f *fakeHub) NamespaceOf(dataset string) (string, error) {
	return "ns-" + dataset, nil
}

func (f *fakeHub) AssetDataviews(ctx context.Context, dataset, filter, asset string) ([]string, error) {
	f.gotDataset = dataset
	if f.dataviewsErr != nil {
		return nil, f.dataviewsErr
	}
	return f.dataviews, nil
}

func (f *fakeHub) DataviewInterpolated(ctx context.Context, ns, dataview, startISO, endISO, interval string) (*hub.Table, error) {
	f.interpolatedCalls++
	f.gotNS, f.gotDataview, f.gotStart, f.gotEnd, f.gotInterval = ns, dataview, startISO, endISO, interval
	return f.table, nil
}

func (f *fakeHub) DataviewStored(ctx context.Context, ns, dataview, startISO, endISO string, resume bool, maxRows int) (*hub.Table, error) {
	f.storedCalls++
	f.gotNS, f.gotDataview, f.gotStart, f.gotEnd = ns, dataview, startISO, endISO
	f.gotResume, f.gotMaxRows = resume, maxRows
	return f.table, nil
}

func window(t *testing.T) timewindow.Window {
	t.Helper()
	w, err := timewindow.Resolve("2021-05-07T20:03:35", "240 mins")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return w
}

func TestFetchDataview_Interpolated(t *testing.T) {
	f := &fakeHub{
		dataviews: []string{"dv-default", "dv-extra"},
		table:     &hub.Table{Columns: []string{"Timestamp", "Temperature"}, Rows: [][]string{{"2021-05-07T20:03:35", "21.5"}}},
	}

	got, err := hub.FetchDataview(context.Background(), hub.Request{
		Dataset:       "Classroom_Data",
		Asset:         "device-42",
		Window:        window(t),
		Kind:          hub.KindInterpolated,
		Interpolation: "00:05:00",
	}, f)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	if f.interpolatedCalls != 1 || f.storedCalls != 0 {
		t.Fatalf("expected exactly one interpolated call, got %d/%d", f.interpolatedCalls, f.storedCalls)
	}
	if f.gotInterval != "00:05:00" {
		t.Fatalf("interval must pass through unmodified: %s", f.gotInterval)
	}
	if f.gotDataview != "dv-default" {
		t.Fatalf("must use first dataview, got %s", f.gotDataview)
	}
	if f.gotNS != "ns-Classroom_Data" {
		t.Fatalf("unexpected namespace: %s", f.gotNS)
	}
	if f.gotDataset != "Classroom_Data" {
		t.Fatalf("dataset must be passed through to the dataview lookup: %s", f.gotDataset)
	}
	if f.gotStart != "2021-05-07T20:03:35" || f.gotEnd != "2021-05-08T00:03:35" {
		t.Fatalf("unexpected window: %s .. %s", f.gotStart, f.gotEnd)
	}
	if got.Len() != 1 {
		t.Fatalf("unexpected rows: %d", got.Len())
	}
}

func TestFetchDataview_StoredDefaults(t *testing.T) {
	f := &fakeHub{dataviews: []string{"dv-default"}, table: &hub.Table{}}

	_, err := hub.FetchDataview(context.Background(), hub.Request{
		Dataset: "Classroom_Data",
		Asset:   "device-42",
		Window:  window(t),
		Kind:    hub.KindStored,
	}, f)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	if f.storedCalls != 1 || f.interpolatedCalls != 0 {
		t.Fatalf("expected exactly one stored call, got %d/%d", f.storedCalls, f.interpolatedCalls)
	}
	if f.gotResume {
		t.Fatalf("resume must default to false")
	}
	if f.gotMaxRows != 0 {
		t.Fatalf("row cap must be off by default, got %d", f.gotMaxRows)
	}
}

func TestFetchDataview_StoredWithRowCap(t *testing.T) {
	f := &fakeHub{dataviews: []string{"dv-default"}, table: &hub.Table{}}

	_, err := hub.FetchDataview(context.Background(), hub.Request{
		Dataset:       "Classroom_Data",
		Asset:         "device-42",
		Window:        window(t),
		Kind:          hub.KindStored,
		Resume:        true,
		EnforceRowCap: true,
	}, f)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	if f.gotMaxRows != 500000 {
		t.Fatalf("expected max rows 500000, got %d", f.gotMaxRows)
	}
	if !f.gotResume {
		t.Fatalf("resume flag must pass through")
	}
}

func TestFetchDataview_EmptyTableIsNotError(t *testing.T) {
	f := &fakeHub{dataviews: []string{"dv-default"}, table: &hub.Table{Columns: []string{"Timestamp", "Value", "Field"}}}

	got, err := hub.FetchDataview(context.Background(), hub.Request{
		Dataset: "Classroom_Data",
		Asset:   "device-42",
		Window:  window(t),
		Kind:    hub.KindStored,
	}, f)
	if err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}
	if got.Len() != 0 {
		t.Fatalf("expected empty table")
	}
}

func TestFetchDataview_NoDataviews(t *testing.T) {
	f := &fakeHub{dataviews: nil, table: &hub.Table{}}

	_, err := hub.FetchDataview(context.Background(), hub.Request{
		Dataset: "Classroom_Data",
		Asset:   "device-42",
		Window:  window(t),
		Kind:    hub.KindStored,
	}, f)
	if err == nil {
		t.Fatalf("expected error when asset has no dataview")
	}
}
