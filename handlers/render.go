package handlers

import (
	"fmt"

	"housing-prediction-api/services"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is shown in place of a confidence the table does not hold.
const NotAvailable = "N/A"

// ResultView holds the three display lines of a prediction.
type ResultView struct {
	Predicted  string `json:"predicted"`
	Range      string `json:"range"`
	Confidence string `json:"confidence"`
}

// FormatCurrency renders v in dollars with thousands separators and two
// decimals.
func FormatCurrency(v float64) string {
	return message.NewPrinter(language.English).Sprintf("$%.2f", v)
}

// FormatConfidence renders a confidence percentage, or NotAvailable for nil.
func FormatConfidence(c *float64) string {
	if c == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f%%", *c)
}

func NewResultView(res services.PredictionResult) ResultView {
	return ResultView{
		Predicted: fmt.Sprintf("Predicted Median House Value: %s", FormatCurrency(res.PointEstimate)),
		Range: fmt.Sprintf("Estimated Range (±%d%%): %s - %s",
			res.Margin, FormatCurrency(res.LowerBound), FormatCurrency(res.UpperBound)),
		Confidence: fmt.Sprintf("Model Confidence within ±%d%%: %s", res.Margin, FormatConfidence(res.Confidence)),
	}
}
