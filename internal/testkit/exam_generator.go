package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExamHeader is the column layout of the medical examination dataset
var ExamHeader = []string{
	"id", "age", "sex", "height", "weight", "ap_hi", "ap_lo",
	"cholesterol", "gluc", "smoke", "alco", "active", "cardio",
}

// ExamGeneratorConfig configures the synthetic examination generator
type ExamGeneratorConfig struct {
	PatientCount   int     `json:"patient_count"`
	InvertedBPRate float64 `json:"inverted_bp_rate"` // share of rows with ap_lo > ap_hi
	SmokerRate     float64 `json:"smoker_rate"`
	AlcoholRate    float64 `json:"alcohol_rate"`
	ActiveRate     float64 `json:"active_rate"`
	Seed           int64   `json:"seed"`
}

// DefaultExamConfig returns proportions close to the public cardio dataset
func DefaultExamConfig() ExamGeneratorConfig {
	return ExamGeneratorConfig{
		PatientCount:   500,
		InvertedBPRate: 0.02,
		SmokerRate:     0.09,
		AlcoholRate:    0.05,
		ActiveRate:     0.80,
		Seed:           42,
	}
}

// ExamDataGenerator generates deterministic examination records
type ExamDataGenerator struct {
	config ExamGeneratorConfig
	rng    *rand.Rand
}

// NewExamDataGenerator creates a new examination generator
func NewExamDataGenerator(config ExamGeneratorConfig) *ExamDataGenerator {
	return &ExamDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Records returns the header followed by one row per patient
func (g *ExamDataGenerator) Records() [][]string {
	records := make([][]string, 0, g.config.PatientCount+1)
	records = append(records, append([]string(nil), ExamHeader...))

	for i := 0; i < g.config.PatientCount; i++ {
		ageDays := 10800 + g.rng.Intn(12900)
		sex := 1 + g.rng.Intn(2)
		height := int(math.Round(g.rng.NormFloat64()*8 + 160 + 8*float64(sex-1)))
		weight := math.Round((g.rng.NormFloat64()*14+74)*10) / 10
		apHi := int(math.Round(g.rng.NormFloat64()*17 + 127))
		apLo := int(math.Round(g.rng.NormFloat64()*10 + 81))
		if apLo > apHi {
			apLo, apHi = apHi, apLo
		}
		if g.rng.Float64() < g.config.InvertedBPRate {
			apLo, apHi = apHi+10, apLo
		}

		// risk rises with age, pressure and weight
		risk := 0.00012*float64(ageDays-18000) + 0.04*float64(apHi-127) + 0.02*(weight-74)
		cardio := g.flag(1 / (1 + math.Exp(-risk)))

		records = append(records, []string{
			strconv.Itoa(i),
			strconv.Itoa(ageDays),
			strconv.Itoa(sex),
			strconv.Itoa(height),
			strconv.FormatFloat(weight, 'f', -1, 64),
			strconv.Itoa(apHi),
			strconv.Itoa(apLo),
			strconv.Itoa(g.level(0.75, 0.13)),
			strconv.Itoa(g.level(0.85, 0.07)),
			strconv.Itoa(g.flag(g.config.SmokerRate)),
			strconv.Itoa(g.flag(g.config.AlcoholRate)),
			strconv.Itoa(g.flag(g.config.ActiveRate)),
			strconv.Itoa(cardio),
		})
	}
	return records
}

func (g *ExamDataGenerator) flag(p float64) int {
	if g.rng.Float64() < p {
		return 1
	}
	return 0
}

// level draws an ordinal 1..3 with P(1)=normal, P(2)=above
func (g *ExamDataGenerator) level(normal, above float64) int {
	r := g.rng.Float64()
	switch {
	case r < normal:
		return 1
	case r < normal+above:
		return 2
	default:
		return 3
	}
}

// FourPatients is a hand-checkable fixture. Heights and weights repeat at both
// ends so every row sits inside the 2.5-97.5 percentile band, every ap_lo is at
// most ap_hi, and no numeric column is constant.
//
//	id height weight  BMI      overweight chol gluc smoke alco active cardio
//	1  160    60      23.4375  0          0    0    0     0    1      0
//	2  160    80      31.25    1          1    0    1     0    0      1
//	3  170    60      20.7612  0          1    1    0     1    1      1
//	4  170    80      27.6817  1          0    1    1     1    0      0
func FourPatients() [][]string {
	return [][]string{
		append([]string(nil), ExamHeader...),
		{"1", "18000", "1", "160", "60", "120", "80", "1", "1", "0", "0", "1", "0"},
		{"2", "19000", "2", "160", "80", "130", "85", "2", "1", "1", "0", "0", "1"},
		{"3", "20000", "1", "170", "60", "140", "90", "3", "2", "0", "1", "1", "1"},
		{"4", "21000", "2", "170", "80", "150", "95", "1", "3", "1", "1", "0", "0"},
	}
}

// WriteCSV writes records to dir/name and returns the path
func WriteCSV(dir, name string, records [][]string) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// WriteXLSX writes records to the first sheet of dir/name, numbers as numeric cells
func WriteXLSX(dir, name string, records [][]string) (string, error) {
	path := filepath.Join(dir, name)
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, record := range records {
		row := make([]interface{}, len(record))
		for j, cell := range record {
			if v, err := strconv.ParseFloat(cell, 64); err == nil && i > 0 {
				row[j] = v
			} else {
				row[j] = cell
			}
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return "", err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
