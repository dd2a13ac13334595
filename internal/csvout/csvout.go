package csvout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/academic-hub/csv-portal/internal/hub"
	"github.com/academic-hub/csv-portal/internal/timewindow"
)

// safeElement reduces an asset id to a single path element. Asset ids come
// from request bodies; anything that could climb out of the downloads
// directory collapses to "asset".
func safeElement(asset string) string {
	asset = strings.ReplaceAll(asset, "\\", "/")
	asset = path.Base(asset)
	if asset == "" || asset == "." || asset == ".." || asset == "/" {
		return "asset"
	}
	return asset
}

// FileName builds the artifact name:
//
//	{asset}-{startISO}-{endISO}[-stored].csv
//
// with colons replaced so the name is filesystem- and URL-safe. The asset
// part is reduced to a bare path element first.
func FileName(asset string, start, end time.Time, stored bool) string {
	suffix := ".csv"
	if stored {
		suffix = "-stored.csv"
	}
	return safeElement(asset) +
		"-" + strings.ReplaceAll(start.Format(timewindow.ISOLayout), ":", "_") +
		"-" + strings.ReplaceAll(end.Format(timewindow.ISOLayout), ":", "_") +
		suffix
}

// Write encodes the table as UTF-8 CSV: header row, then data rows.
func Write(w io.Writer, t *hub.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table into the static downloads directory and
// returns the full path. The directory is created on first use. Names with
// path separators are rejected; the artifact must land inside dir.
func WriteFile(dir, name string, t *hub.Table) (string, error) {
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("csvout: invalid artifact name %q", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := Write(f, t); err != nil {
		return "", err
	}
	return path, nil
}
