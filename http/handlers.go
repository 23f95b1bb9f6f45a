package http

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cropyield/ml"
	"cropyield/yield"
)

const pageTitle = "AI-Based Crop Yield Forecasting System"

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

var numberPrinter = message.NewPrinter(language.English)

// YieldPredictor is what the form needs from the prediction layer.
type YieldPredictor interface {
	Predict(ctx context.Context, in yield.Input) (float64, error)
	Encoders() ml.Encoders
}

type handler struct {
	predictor YieldPredictor
}

func RegisterHandlers(mux *http.ServeMux, predictor YieldPredictor) {
	h := &handler{predictor: predictor}
	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /predict", h.handlePredict)
	mux.HandleFunc("GET /healthz", handleHealth)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type fieldView struct {
	yield.Bound
	Value string
}

type resultView struct {
	Prediction string
	Tier       string
	Style      string
	Advice     []string
}

type pageData struct {
	Title  string
	Areas  []string
	Crops  []string
	Input  yield.Input
	Fields []fieldView
	Result *resultView
	Error  string
}

func (h *handler) page(in yield.Input) pageData {
	encoders := h.predictor.Encoders()
	values := map[string]float64{
		yield.YearField.Name:        float64(in.Year),
		yield.RainfallField.Name:    in.Rainfall,
		yield.TemperatureField.Name: in.Temperature,
		yield.PesticideField.Name:   in.Pesticide,
	}
	fields := make([]fieldView, 0, len(values))
	for _, bound := range yield.Fields() {
		fields = append(fields, fieldView{
			Bound: bound,
			Value: strconv.FormatFloat(values[bound.Name], 'f', -1, 64),
		})
	}
	return pageData{
		Title:  pageTitle,
		Areas:  encoders.Area().Classes(),
		Crops:  encoders.Crop().Classes(),
		Input:  in,
		Fields: fields,
	}
}

func (h *handler) handleForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.page(yield.DefaultInput(h.predictor.Encoders())))
}

func (h *handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		data := h.page(yield.DefaultInput(h.predictor.Encoders()))
		data.Error = "Could not read the submitted form."
		h.render(w, http.StatusBadRequest, data)
		return
	}

	in := yield.FromForm(r.PostForm, h.predictor.Encoders())
	data := h.page(in)

	prediction, err := h.predictor.Predict(r.Context(), in)
	if err != nil {
		status := http.StatusInternalServerError
		data.Error = "Prediction failed. Please try again."
		if errors.Is(err, ml.ErrUnknownCategory) {
			status = http.StatusUnprocessableEntity
			data.Error = "Prediction failed: unrecognized category."
		}
		zap.L().Warn("prediction failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.String("area", in.Area),
			zap.String("crop", in.Crop),
			zap.Error(err),
		)
		h.render(w, status, data)
		return
	}

	rec := yield.Recommend(prediction)
	data.Result = &resultView{
		Prediction: FormatPrediction(prediction),
		Tier:       rec.Tier.String(),
		Style:      rec.Style,
		Advice:     rec.Advice,
	}
	h.render(w, http.StatusOK, data)
}

func (h *handler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		zap.L().Error("render page", zap.Error(err))
	}
}

// FormatPrediction renders a yield with two decimals and thousands grouping.
func FormatPrediction(v float64) string {
	return numberPrinter.Sprintf("%.2f", v)
}
