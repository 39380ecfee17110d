package handlers

import (
	"testing"

	"housing-prediction-api/services"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{999.999, "$1,000.00"},
		{128918, "$128,918.00"},
		{1234567.891, "$1,234,567.89"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatConfidence(t *testing.T) {
	c := 64.5
	if got := FormatConfidence(&c); got != "64.50%" {
		t.Errorf("FormatConfidence(64.5) = %q", got)
	}
	if got := FormatConfidence(nil); got != NotAvailable {
		t.Errorf("FormatConfidence(nil) = %q, want %q", got, NotAvailable)
	}
}

func TestNewResultView(t *testing.T) {
	c := 88.12
	v := NewResultView(services.PredictionResult{
		PointEstimate: 200000,
		LowerBound:    160000,
		UpperBound:    240000,
		Margin:        20,
		Confidence:    &c,
	})
	want := ResultView{
		Predicted:  "Predicted Median House Value: $200,000.00",
		Range:      "Estimated Range (±20%): $160,000.00 - $240,000.00",
		Confidence: "Model Confidence within ±20%: 88.12%",
	}
	if v != want {
		t.Errorf("NewResultView() = %+v, want %+v", v, want)
	}
}
