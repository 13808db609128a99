package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
)

// JSON shapes of the farm dataset. Structural levels decode through pointers
// or nil-able slices so a missing key can be told apart from an empty value.
type farmFile struct {
	FarmData *farmData `json:"granja_datos"`
}

type farmData struct {
	Sensors []sensorJSON `json:"sensores"`
}

type sensorJSON struct {
	ID       string        `json:"id"`
	Type     string        `json:"tipo"`
	Location string        `json:"ubicacion"`
	Config   *configJSON   `json:"configuracion"`
	Readings []readingJSON `json:"lecturas"`
}

type configJSON struct {
	Min float64 `json:"umbral_minimo"`
	Max float64 `json:"umbral_maximo"`
}

type readingJSON struct {
	Value     float64 `json:"valor"`
	Unit      string  `json:"unidad"`
	Status    string  `json:"estado"`
	Timestamp string  `json:"timestamp"`
}

// Loader reads farm sensor datasets and converts them into text units:
// one unit per sensor configuration plus one per reading, in dataset order.
type Loader struct{}

// NewLoader creates a dataset loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and converts the dataset at path.
// A missing file reports domain.ErrDataNotFound; unparsable content or
// missing structure reports domain.ErrDataMalformed.
func (l *Loader) Load(path string) ([]domain.TextUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDataNotFound, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrDataMalformed, path, err)
	}

	units, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return units, nil
}

// LoadAll loads several dataset files and concatenates their units in
// path order.
func (l *Loader) LoadAll(paths []string) ([]domain.TextUnit, error) {
	var units []domain.TextUnit
	for _, p := range paths {
		u, err := l.Load(p)
		if err != nil {
			return nil, err
		}
		units = append(units, u...)
	}
	return units, nil
}

// Parse converts raw dataset JSON into text units.
func (l *Loader) Parse(data []byte) ([]domain.TextUnit, error) {
	var file farmFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataMalformed, err)
	}
	if file.FarmData == nil {
		return nil, fmt.Errorf("%w: missing key granja_datos", domain.ErrDataMalformed)
	}
	if file.FarmData.Sensors == nil {
		return nil, fmt.Errorf("%w: missing key sensores", domain.ErrDataMalformed)
	}

	var units []domain.TextUnit
	for i, s := range file.FarmData.Sensors {
		record, err := toRecord(i, s)
		if err != nil {
			return nil, err
		}
		units = append(units, unitsFromRecord(record)...)
	}
	return units, nil
}

// toRecord validates one sensor entry and converts it to a domain record.
func toRecord(index int, s sensorJSON) (domain.SensorRecord, error) {
	if s.ID == "" {
		return domain.SensorRecord{}, fmt.Errorf("%w: sensor %d: missing id", domain.ErrDataMalformed, index)
	}
	if s.Config == nil {
		return domain.SensorRecord{}, fmt.Errorf("%w: sensor %s: missing configuracion", domain.ErrDataMalformed, s.ID)
	}
	if s.Readings == nil {
		return domain.SensorRecord{}, fmt.Errorf("%w: sensor %s: missing lecturas", domain.ErrDataMalformed, s.ID)
	}

	record := domain.SensorRecord{
		ID:       s.ID,
		Type:     s.Type,
		Location: s.Location,
		Config: domain.ThresholdConfig{
			Min: s.Config.Min,
			Max: s.Config.Max,
		},
		Readings: make([]domain.Reading, len(s.Readings)),
	}
	for i, r := range s.Readings {
		record.Readings[i] = domain.Reading{
			Value:     r.Value,
			Unit:      r.Unit,
			Status:    r.Status,
			Timestamp: r.Timestamp,
		}
	}
	return record, nil
}

// unitsFromRecord builds the configuration unit followed by one unit per
// reading, preserving reading order.
func unitsFromRecord(r domain.SensorRecord) []domain.TextUnit {
	units := make([]domain.TextUnit, 0, 1+len(r.Readings))

	units = append(units, domain.TextUnit{
		ID:      unitID(r.ID, "config"),
		Content: sensorContent(r),
		Metadata: map[string]any{
			domain.MetaSensorID: r.ID,
			domain.MetaType:     r.Type,
			domain.MetaLocation: r.Location,
		},
	})

	for i, rd := range r.Readings {
		units = append(units, domain.TextUnit{
			ID:      unitID(r.ID, "lectura", strconv.Itoa(i)),
			Content: readingContent(r, rd),
			Metadata: map[string]any{
				domain.MetaSensorID: r.ID,
				domain.MetaValue:    rd.Value,
				domain.MetaStatus:   rd.Status,
			},
		})
	}
	return units
}

func sensorContent(r domain.SensorRecord) string {
	return fmt.Sprintf("Sensor ID: %s\nTipo: %s\nUbicación: %s\nConfiguración: Umbral mínimo %s, máximo %s",
		r.ID, r.Type, r.Location, formatValue(r.Config.Min), formatValue(r.Config.Max))
}

func readingContent(r domain.SensorRecord, rd domain.Reading) string {
	return fmt.Sprintf("Sensor %s (%s) en %s:\nValor: %s %s\nEstado: %s\nTimestamp: %s",
		r.ID, r.Type, r.Location, formatValue(rd.Value), rd.Unit, rd.Status, rd.Timestamp)
}

// formatValue renders numbers the way they appear in the dataset:
// no exponent, no trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// unitID creates a deterministic unit ID from its identifying parts.
func unitID(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "/")))
	return hex.EncodeToString(hash[:8])
}
