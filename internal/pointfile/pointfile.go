// Package pointfile reads point sets from CSV or JSON files and writes
// cluster labels back out.
//
// CSV files hold one point per row with numeric columns; a first row that
// does not parse as numbers is treated as a header. JSON files hold an array
// of coordinate arrays: [[x, y], [x, y], ...].
package pointfile

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/internal/errors"
)

// Format identifies a point file encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.WithHint(
			errors.Newf("unsupported point file %q", path),
			"use a .csv or .json file")
	}
}

// Load reads the points stored at path.
func Load(path string) (*dbscan.Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	ds, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return ds, nil
}

// Read decodes points in the given format.
func Read(r io.Reader, format Format) (*dbscan.Dataset, error) {
	var rows [][]float64
	var err error
	switch format {
	case FormatCSV:
		rows, err = readCSV(r)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&rows)
	default:
		return nil, errors.Newf("unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return dbscan.NewDataset(rows)
}

func readCSV(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // ragged rows are reported by dbscan.NewDataset

	var rows [][]float64
	for first := true; ; first = false {
		record, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}

		row, err := parseRecord(record)
		if err != nil {
			if first {
				continue // header
			}
			line, _ := cr.FieldPos(0)
			return nil, errors.Wrapf(err, "line %d", line)
		}
		rows = append(rows, row)
	}
}

func parseRecord(record []string) ([]float64, error) {
	row := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i+1)
		}
		row[i] = v
	}
	return row, nil
}

// WriteLabels writes "index,cluster" rows with a header.
func WriteLabels(w io.Writer, labels []dbscan.ClusterID) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "cluster"}); err != nil {
		return err
	}
	for i, l := range labels {
		if err := cw.Write([]string{strconv.Itoa(i), strconv.FormatUint(uint64(l), 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveLabels writes labels to path as CSV.
func SaveLabels(path string, labels []dbscan.ClusterID) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := WriteLabels(f, labels); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return errors.Wrapf(f.Close(), "failed to close %s", path)
}
