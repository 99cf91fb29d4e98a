package geo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LandmarkLoader loads labelled points from a CSV file.
// The header must name a label column ("name" or "label") and the
// coordinate columns ("latitude"/"longitude" or "latitude_deg"/"longitude_deg",
// the OurAirports layout). A "code" column, when present and non-empty, is
// preferred as the label because it is short.
type LandmarkLoader struct {
	csvPath string
}

// NewLandmarkLoader creates a new landmark loader
func NewLandmarkLoader(csvPath string) *LandmarkLoader {
	return &LandmarkLoader{
		csvPath: csvPath,
	}
}

// LoadLandmarks reads every parsable row; malformed rows are skipped
func (l *LandmarkLoader) LoadLandmarks() ([]*Feature, error) {
	file, err := os.Open(l.csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open landmarks CSV: %w", err)
	}
	defer file.Close()

	return ReadLandmarks(file)
}

// ReadLandmarks parses landmark CSV from r
func ReadLandmarks(r io.Reader) ([]*Feature, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int)
	for i, col := range header {
		cols[strings.ToLower(strings.TrimSpace(col))] = i
	}

	nameIdx, ok := firstColumn(cols, "name", "label")
	if !ok {
		return nil, errors.New("missing name column")
	}
	latIdx, ok := firstColumn(cols, "latitude", "latitude_deg", "lat")
	if !ok {
		return nil, errors.New("missing latitude column")
	}
	lonIdx, ok := firstColumn(cols, "longitude", "longitude_deg", "lon")
	if !ok {
		return nil, errors.New("missing longitude column")
	}
	codeIdx, hasCode := firstColumn(cols, "code", "iata_code")

	var landmarks []*Feature

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, fmt.Errorf("failed to read landmarks: %w", err)
		}

		if len(record) <= max(nameIdx, latIdx, lonIdx) {
			continue
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(record[latIdx]), 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(record[lonIdx]), 64)
		if err != nil {
			continue
		}

		label := strings.TrimSpace(record[nameIdx])
		if hasCode && codeIdx < len(record) && strings.TrimSpace(record[codeIdx]) != "" {
			label = strings.TrimSpace(record[codeIdx])
		}

		landmarks = append(landmarks, NewPointFeature(FeatureLandmark, Coordinate{Latitude: lat, Longitude: lon}, label))
	}

	return landmarks, nil
}

func firstColumn(cols map[string]int, names ...string) (int, bool) {
	for _, name := range names {
		if idx, ok := cols[name]; ok {
			return idx, true
		}
	}
	return 0, false
}
