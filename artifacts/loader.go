// Package artifacts loads the trained model, its feature scaler, the feature
// schema and the margin confidence table from disk.
package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Files names the artifact files inside the artifacts directory.
type Files struct {
	Model      string
	Scaler     string
	Features   string
	Confidence string
}

func DefaultFiles() Files {
	return Files{
		Model:      "housing_model.json",
		Scaler:     "scaler.json",
		Features:   "model_features.json",
		Confidence: "confidence_lookup.json",
	}
}

// Bundle holds the loaded artifacts. It is read-only after Load returns and
// safe to share between requests.
type Bundle struct {
	Model      Model
	Scaler     Scaler
	Schema     Schema
	Confidence ConfidenceTable
}

type modelFile struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

type scalerFile struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Load reads all four artifacts from dir. Any missing or malformed file, or a
// width disagreement between them, is an error.
func Load(dir string, files Files) (*Bundle, error) {
	var mf modelFile
	if err := readJSON(filepath.Join(dir, files.Model), &mf); err != nil {
		return nil, errors.Wrap(err, "load model")
	}
	model, err := NewLinearModel(mf.Coefficients, mf.Intercept)
	if err != nil {
		return nil, errors.Wrap(err, "load model")
	}

	var sf scalerFile
	if err := readJSON(filepath.Join(dir, files.Scaler), &sf); err != nil {
		return nil, errors.Wrap(err, "load scaler")
	}
	scaler, err := NewStandardScaler(sf.Mean, sf.Scale)
	if err != nil {
		return nil, errors.Wrap(err, "load scaler")
	}

	var columns []string
	if err := readJSON(filepath.Join(dir, files.Features), &columns); err != nil {
		return nil, errors.Wrap(err, "load feature schema")
	}
	schema, err := NewSchema(columns)
	if err != nil {
		return nil, errors.Wrap(err, "load feature schema")
	}

	var entries map[int]float64
	if err := readJSON(filepath.Join(dir, files.Confidence), &entries); err != nil {
		return nil, errors.Wrap(err, "load confidence table")
	}

	b := &Bundle{
		Model:      model,
		Scaler:     scaler,
		Schema:     schema,
		Confidence: NewConfidenceTable(entries),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks that the model and scaler agree with the schema width.
func (b *Bundle) Validate() error {
	if b.Model == nil || b.Scaler == nil {
		return errors.New("artifact bundle is incomplete")
	}
	n := b.Schema.Len()
	if b.Scaler.Width() != n {
		return errors.Errorf("scaler width %d does not match %d schema columns", b.Scaler.Width(), n)
	}
	if b.Model.Width() != n {
		return errors.Errorf("model width %d does not match %d schema columns", b.Model.Width(), n)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}
