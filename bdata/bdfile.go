package bdata

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.thinkinpower.net/cardmeta/data"
	"git.thinkinpower.net/cardmeta/mod"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var (
	binDataFileExt  = ".bd"
	binDataFileName = "feedback" + binDataFileExt
	binDataHeader   = []string{"iin_low", "iin_high", "pan_length", "brand", "funding", "country", "bank_name"}
)

func isBinDataFile(path string) bool {
	return filepath.Ext(path) == binDataFileExt
}

// read loads every well-formed row of a data file. Malformed rows are logged
// and skipped.
func read(path string) ([]mod.BinRange, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := make([]mod.BinRange, 0, 256)
	lineNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNum++
		if err != nil {
			logger.Errorf("read bin data error: %s, file: %s, line: %d", err, path, lineNum)
			continue
		}
		//skip header
		if lineNum == 1 && len(record) > 0 && record[0] == binDataHeader[0] {
			continue
		}
		r, err := parse(record)
		if err != nil {
			logger.Errorf("parse bin data error: %s, file: %s, line: %d", err, path, lineNum)
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func parse(record []string) (mod.BinRange, error) {
	if len(record) < 4 {
		return mod.BinRange{}, errors.Errorf("expected at least 4 fields, got %d", len(record))
	}
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	r := mod.BinRange{
		Low:      field(0),
		High:     field(1),
		Brand:    mod.ParseBrand(field(3)),
		Funding:  strings.ToLower(field(4)),
		Country:  strings.ToUpper(field(5)),
		BankName: field(6),
	}
	if r.High == "" {
		r.High = r.Low
	}
	r.PanLength = data.UnknownPanLength
	if v := field(2); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return mod.BinRange{}, errors.Wrapf(err, "pan_length %q", v)
		}
		r.PanLength = n
	}
	if err := verifyRange(r); err != nil {
		return mod.BinRange{}, err
	}
	return r, nil
}

func format(r mod.BinRange) []string {
	return []string{
		r.Low,
		r.High,
		strconv.Itoa(r.PanLength),
		r.Brand.String(),
		r.Funding,
		r.Country,
		r.BankName,
	}
}

// write2File appends r to path, writing the header first when the file is
// new.
func write2File(path string, r mod.BinRange) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	writeHeader := false
	if _, err := os.Stat(path); err != nil && os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(binDataHeader); err != nil {
			return err
		}
	}
	if err := w.Write(format(r)); err != nil {
		return err
	}
	w.Flush()
	return errors.Wrapf(w.Error(), "write %s", path)
}
