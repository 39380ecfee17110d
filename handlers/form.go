package handlers

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"housing-prediction-api/features"
	"housing-prediction-api/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

//go:embed templates/*.html
var templateFS embed.FS

const formTemplate = "form.html"

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// FormState is the page state: nothing submitted yet, or a submitted record.
type FormState int

const (
	AwaitingInput FormState = iota
	Submitted
)

type formView struct {
	State      FormState
	Input      features.RawInput
	Categories []features.OceanProximity
	MinAge     int
	MaxAge     int
	MinMargin  int
	MaxMargin  int
	Result     *ResultView
	Error      string
}

func newFormView(state FormState, in features.RawInput) formView {
	return formView{
		State:      state,
		Input:      in,
		Categories: features.OceanProximities,
		MinAge:     features.MinHousingMedianAge,
		MaxAge:     features.MaxHousingMedianAge,
		MinMargin:  features.MinMargin,
		MaxMargin:  features.MaxMargin,
	}
}

type FormHandler struct {
	predictor *services.Predictor
}

func NewFormHandler(predictor *services.Predictor) *FormHandler {
	return &FormHandler{predictor: predictor}
}

// Show renders the empty form. The pipeline does not run.
func (h *FormHandler) Show(c *gin.Context) {
	c.HTML(http.StatusOK, formTemplate, newFormView(AwaitingInput, features.DefaultInput()))
}

// Submit binds the posted form and renders it again with the prediction.
func (h *FormHandler) Submit(c *gin.Context) {
	var in features.RawInput
	if err := c.ShouldBind(&in); err != nil {
		view := newFormView(AwaitingInput, features.DefaultInput())
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			view.Input = in
		}
		view.Error = bindingMessage(err)
		c.HTML(http.StatusBadRequest, formTemplate, view)
		return
	}

	res := h.predictor.Predict(c.Request.Context(), in)
	view := newFormView(Submitted, in)
	rv := NewResultView(res)
	view.Result = &rv
	c.HTML(http.StatusOK, formTemplate, view)
}

var fieldLabels = map[string]string{
	"HousingMedianAge": "Housing Median Age",
	"OceanProximity":   "Ocean Proximity",
	"Margin":           "Margin of Error",
}

var fieldRanges = map[string][2]int{
	"HousingMedianAge": {features.MinHousingMedianAge, features.MaxHousingMedianAge},
	"Margin":           {features.MinMargin, features.MaxMargin},
}

// bindingMessage turns a binding error into a message fit for the page.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Sprintf("invalid input: %v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "min", "max":
			r := fieldRanges[fe.Field()]
			msgs = append(msgs, fmt.Sprintf("%s must be between %d and %d", label, r[0], r[1]))
		case "required", "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", label, categoryList()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", label))
		}
	}
	return strings.Join(msgs, "; ")
}

func categoryList() string {
	names := make([]string, len(features.OceanProximities))
	for i, c := range features.OceanProximities {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
