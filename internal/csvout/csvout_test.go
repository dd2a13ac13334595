package csvout_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/academic-hub/csv-portal/internal/csvout"
	"github.com/academic-hub/csv-portal/internal/hub"
)

func TestFileName(t *testing.T) {
	start := time.Date(2021, 5, 7, 20, 3, 35, 0, time.Local)
	end := time.Date(2021, 5, 8, 0, 3, 35, 0, time.Local)

	got := csvout.FileName("device-42", start, end, false)
	want := "device-42-2021-05-07T20_03_35-2021-05-08T00_03_35.csv"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	got = csvout.FileName("device-42", start, end, true)
	if !strings.HasSuffix(got, "-stored.csv") {
		t.Fatalf("stored artifact must carry -stored suffix: %s", got)
	}
}

func TestFileName_StripsPathElements(t *testing.T) {
	start := time.Date(2021, 5, 7, 20, 3, 35, 0, time.Local)
	end := time.Date(2021, 5, 8, 0, 3, 35, 0, time.Local)

	for _, tc := range []struct {
		asset string
		want  string
	}{
		{"../outside/evil", "evil"},
		{"..\\outside\\evil", "evil"},
		{"/etc/passwd", "passwd"},
		{"..", "asset"},
		{"", "asset"},
	} {
		got := csvout.FileName(tc.asset, start, end, false)
		want := tc.want + "-2021-05-07T20_03_35-2021-05-08T00_03_35.csv"
		if got != want {
			t.Fatalf("asset %q: got %s, want %s", tc.asset, got, want)
		}
		if strings.ContainsAny(got, `/\`) {
			t.Fatalf("asset %q: artifact name carries a path separator: %s", tc.asset, got)
		}
	}
}

func TestWrite(t *testing.T) {
	table := &hub.Table{
		Columns: []string{"Timestamp", "Value", "Field"},
		Rows: [][]string{
			{"2021-05-07T20:03:35", "21.5", "Temperature"},
			{"2021-05-07T20:08:35", "21.7", "Temperature"},
		},
	}

	var sb strings.Builder
	if err := csvout.Write(&sb, table); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := "Timestamp,Value,Field\n" +
		"2021-05-07T20:03:35,21.5,Temperature\n" +
		"2021-05-07T20:08:35,21.7,Temperature\n"
	if sb.String() != want {
		t.Fatalf("unexpected csv:\n%s", sb.String())
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir() + "/downloads"
	table := &hub.Table{Columns: []string{"Timestamp"}, Rows: [][]string{{"t0"}}}

	path, err := csvout.WriteFile(dir, "a.csv", table)
	if err != nil {
		t.Fatalf("write file: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "Timestamp\nt0\n" {
		t.Fatalf("unexpected content: %q", string(b))
	}
}

func TestWriteFile_RejectsTraversal(t *testing.T) {
	dir := t.TempDir() + "/downloads"
	table := &hub.Table{Columns: []string{"Timestamp"}, Rows: [][]string{{"t0"}}}

	for _, name := range []string{"../escape.csv", "a/b.csv", `a\b.csv`} {
		if _, err := csvout.WriteFile(dir, name, table); err == nil {
			t.Fatalf("name %q must be rejected", name)
		}
	}
	if _, err := os.Stat(dir + "/../escape.csv"); !os.IsNotExist(err) {
		t.Fatalf("artifact escaped the downloads dir")
	}
}
