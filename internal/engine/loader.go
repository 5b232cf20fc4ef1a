package engine

import (
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"gdpboard/internal/logger"
	"gdpboard/internal/models"
)

// Source is the raw wide table as read from disk.
type Source struct {
	Header []string
	Rows   []models.SourceRow
}

// LoadSourceRows reads a CSV file with a header row into SourceRows. A path
// that is missing, unreadable or a directory yields ErrSourceNotFound.
func LoadSourceRows(path string, log *zap.SugaredLogger) (*Source, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.WithHintf(
				errors.Wrapf(ErrSourceNotFound, "CSV file not found: %s", path),
				"check data.path in the config or pass --data")
		}
		return nil, errors.Mark(errors.Wrapf(err, "failed to open %s", path), ErrSourceNotFound)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to stat %s", path), ErrSourceNotFound)
	}
	if info.IsDir() {
		return nil, errors.WithHintf(
			errors.Wrapf(ErrSourceNotFound, "%s is a directory, not a CSV file", path),
			"point data.path at the CSV file itself")
	}

	src, err := ReadSourceRows(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	if log != nil {
		log.Infow("Loaded source",
			logger.FieldFile, path,
			logger.FieldCount, len(src.Rows),
			logger.FieldDurationMS, time.Since(start).Milliseconds())
	}
	return src, nil
}

// ReadSourceRows parses CSV content from r. A UTF-8 byte order mark on the
// first header cell is dropped.
func ReadSourceRows(r io.Reader) (*Source, error) {
	reader := csv.NewReader(r)
	// World Bank exports carry trailing commas on some rows
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &Source{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV header")
	}
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	src := &Source{Header: header}
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read CSV row %d", len(src.Rows)+1)
		}

		row := make(models.SourceRow, len(header))
		for i, key := range header {
			if i < len(fields) {
				row[key] = fields[i]
			} else {
				row[key] = ""
			}
		}
		src.Rows = append(src.Rows, row)
	}
	return src, nil
}

func trimBOM(s string) string {
	if len(s) >= 3 && s[0] == 0xEF && s[1] == 0xBB && s[2] == 0xBF {
		return s[3:]
	}
	return s
}
