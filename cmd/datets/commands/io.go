package commands

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/datets/datekey"
	"github.com/arloliu/datets/series"
	"github.com/arloliu/datets/wire"
)

const (
	csvFields   = 2
	outFilePerm = 0o644
)

// ErrBadRow is returned for a CSV row that is not a date,value pair.
var ErrBadRow = errors.New("malformed csv row")

// readCSV parses rows of date,value. The first row is skipped when its first
// cell is not a date. Later rows overwrite earlier rows with the same date.
func readCSV(r io.Reader, comma rune) (series.NumericSeries, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	b := series.NewNumericBuilder()
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return series.NumericSeries{}, fmt.Errorf("csv: %w", err)
		}

		if len(record) != csvFields {
			return series.NumericSeries{}, fmt.Errorf("%w: line %d has %d fields", ErrBadRow, line, len(record))
		}

		date, dateErr := parseDate(record[0])
		if dateErr != nil {
			if line == 1 {
				slog.Debug("skipping csv header", "cells", record)
				continue
			}

			return series.NumericSeries{}, fmt.Errorf("%w: line %d: %w", ErrBadRow, line, dateErr)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return series.NumericSeries{}, fmt.Errorf("%w: line %d: %w", ErrBadRow, line, err)
		}

		if err := b.PutDate(date, value); err != nil {
			return series.NumericSeries{}, fmt.Errorf("line %d: %w", line, err)
		}
	}

	return series.BuildNumeric(b), nil
}

// parseDate accepts YYYY-MM-DD and the textual form of the two sentinel dates.
func parseDate(cell string) (datekey.Date, error) {
	cell = strings.TrimSpace(cell)
	switch cell {
	case datekey.MinDate.String():
		return datekey.MinDate, nil
	case datekey.MaxDate.String():
		return datekey.MaxDate, nil
	}

	return datekey.Parse(cell)
}

// writeCSV writes s as date,value rows with a header row.
func writeCSV(w io.Writer, s series.NumericSeries, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	if err := cw.Write([]string{"date", "value"}); err != nil {
		return err
	}

	for date, value := range s.AllDates() {
		if err := cw.Write([]string{date.String(), strconv.FormatFloat(value, 'g', -1, 64)}); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// readSeriesFile loads a wire frame or a CSV file. Frames are recognised by
// their header rather than by extension.
func readSeriesFile(path string, comma rune) (series.NumericSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return series.NumericSeries{}, err
	}

	if _, hdrErr := wire.ParseHeader(data); hdrErr == nil {
		slog.Debug("reading wire frame", "path", path, "bytes", len(data))

		s, err := wire.Decode(data)
		if err != nil {
			return series.NumericSeries{}, fmt.Errorf("%s: %w", path, err)
		}

		return s, nil
	}

	slog.Debug("reading csv", "path", path, "bytes", len(data))

	s, err := readCSV(bytes.NewReader(data), comma)
	if err != nil {
		return series.NumericSeries{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// createOutput opens path for writing, or returns stdout for "" and "-".
func createOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outFilePerm)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}
