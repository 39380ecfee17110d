package artifacts

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadTestdata(t *testing.T) {
	b, err := Load("testdata", DefaultFiles())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if b.Schema.Len() != 12 {
		t.Errorf("Schema.Len() = %d, want 12", b.Schema.Len())
	}
	if b.Model.Width() != 12 || b.Scaler.Width() != 12 {
		t.Errorf("widths = model %d, scaler %d, want 12", b.Model.Width(), b.Scaler.Width())
	}
	if got, ok := b.Confidence.Lookup(10); !ok || got != 64.53 {
		t.Errorf("Lookup(10) = %v, %v, want 64.53, true", got, ok)
	}
	if _, ok := b.Confidence.Lookup(37); ok {
		t.Error("Lookup(37) should be absent")
	}
	cols := b.Schema.Columns()
	if cols[0] != "longitude" || cols[11] != "ocean_proximity_NEAR OCEAN" {
		t.Errorf("unexpected column order: %v", cols)
	}
}

func TestLoadShippedArtifacts(t *testing.T) {
	b, err := Load(filepath.Join("..", "data"), DefaultFiles())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	for margin := 1; margin <= 50; margin++ {
		if _, ok := b.Confidence.Lookup(margin); !ok {
			t.Errorf("shipped confidence table is missing margin %d", margin)
		}
	}
}

func copyTestdata(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := DefaultFiles()
	for _, name := range []string{files.Model, files.Scaler, files.Features, files.Confidence} {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadFailures(t *testing.T) {
	files := DefaultFiles()
	tests := []struct {
		name    string
		file    string
		content string // empty removes the file
		wantErr string
	}{
		{"missing model", files.Model, "", "load model"},
		{"malformed scaler", files.Scaler, "{not json", "load scaler"},
		{"empty schema", files.Features, "[]", "feature schema is empty"},
		{"duplicate column", files.Features, `["a","a"]`, "duplicated"},
		{"non-integer margin", files.Confidence, `{"ten": 50.0}`, "load confidence table"},
		{"scaler width mismatch", files.Scaler, `{"mean":[0,0],"scale":[1,1]}`, "scaler width 2"},
		{"model width mismatch", files.Model, `{"coefficients":[1,2,3],"intercept":0}`, "model width 3"},
		{"scaler column mismatch", files.Scaler, `{"mean":[0,0],"scale":[1]}`, "scale has 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := copyTestdata(t)
			path := filepath.Join(dir, tt.file)
			if tt.content == "" {
				os.Remove(path)
			} else if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(dir, files)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLinearModelPredict(t *testing.T) {
	m, err := NewLinearModel([]float64{2, -1, 0.5}, 10)
	if err != nil {
		t.Fatal(err)
	}
	got := m.Predict([]float64{1, 4, 8})
	if math.Abs(got-12) > 1e-9 {
		t.Errorf("Predict() = %v, want 12", got)
	}
}

func TestLinearModelPanicsOnWidthMismatch(t *testing.T) {
	m, _ := NewLinearModel([]float64{1, 1}, 0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for width mismatch")
		}
	}()
	m.Predict([]float64{1, 2, 3})
}

func TestNewLinearModelEmpty(t *testing.T) {
	if _, err := NewLinearModel(nil, 1); err == nil {
		t.Error("expected error for empty coefficients")
	}
}

func TestStandardScalerTransform(t *testing.T) {
	s, err := NewStandardScaler([]float64{1, 10, 5}, []float64{2, 5, 0})
	if err != nil {
		t.Fatal(err)
	}
	in := []float64{3, 0, 7}
	got := s.Transform(in)
	want := []float64{1, -2, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Transform() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{3, 0, 7}, in); diff != "" {
		t.Errorf("Transform() modified its input:\n%s", diff)
	}
}

func TestStandardScalerPanicsOnWidthMismatch(t *testing.T) {
	s, _ := NewStandardScaler([]float64{0, 0}, []float64{1, 1})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for width mismatch")
		}
	}()
	s.Transform([]float64{1})
}

func TestSchemaColumnsIsCopy(t *testing.T) {
	s, err := NewSchema([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	cols := s.Columns()
	cols[0] = "z"
	if s.Columns()[0] != "a" {
		t.Error("Columns() should not expose internal state")
	}
}

func TestSchemaFingerprint(t *testing.T) {
	a, _ := NewSchema([]string{"a", "b"})
	b, _ := NewSchema([]string{"b", "a"})
	a2, _ := NewSchema([]string{"a", "b"})
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("fingerprint should depend on column order")
	}
	if a.Fingerprint() != a2.Fingerprint() {
		t.Error("fingerprint should be stable")
	}
}

func TestSchemaRejectsEmptyName(t *testing.T) {
	if _, err := NewSchema([]string{"a", ""}); err == nil {
		t.Error("expected error for empty column name")
	}
}

func TestConfidenceTableIsCopy(t *testing.T) {
	src := map[int]float64{10: 50}
	table := NewConfidenceTable(src)
	src[10] = 1
	if got, _ := table.Lookup(10); got != 50 {
		t.Errorf("Lookup(10) = %v, want 50", got)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}
