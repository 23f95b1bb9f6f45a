// Package yield turns farm inputs into a crop yield prediction and advice.
package yield

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"cropyield/ml"
)

// Bound describes one numeric form field.
type Bound struct {
	Name    string
	Label   string
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

func (b Bound) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

var (
	YearField        = Bound{Name: "year", Label: "Year", Min: 2000, Max: 2030, Step: 1, Default: 2024}
	RainfallField    = Bound{Name: "rainfall", Label: "Average Rainfall (mm/year)", Min: 0, Max: 5000, Step: 0.01, Default: 800}
	TemperatureField = Bound{Name: "temperature", Label: "Average Temperature (°C)", Min: 0, Max: 50, Step: 0.01, Default: 25}
	PesticideField   = Bound{Name: "pesticide", Label: "Pesticide Usage (kg/ha)", Min: 0, Max: 100, Step: 0.01, Default: 10}
)

// Fields lists the numeric fields in display order.
func Fields() []Bound {
	return []Bound{YearField, RainfallField, TemperatureField, PesticideField}
}

const (
	AreaFieldName = "area"
	CropFieldName = "crop"
)

// Input is one set of farm details.
type Input struct {
	Area        string
	Crop        string
	Year        int
	Rainfall    float64
	Temperature float64
	Pesticide   float64
}

// DefaultInput is what the form shows before the user edits anything.
func DefaultInput(encoders ml.Encoders) Input {
	return Input{
		Area:        firstClass(encoders.Area()),
		Crop:        firstClass(encoders.Crop()),
		Year:        int(YearField.Default),
		Rainfall:    RainfallField.Default,
		Temperature: TemperatureField.Default,
		Pesticide:   PesticideField.Default,
	}
}

// Clamp pulls every numeric field into its documented range.
func (in Input) Clamp() Input {
	in.Year = int(YearField.Clamp(float64(in.Year)))
	in.Rainfall = RainfallField.Clamp(in.Rainfall)
	in.Temperature = TemperatureField.Clamp(in.Temperature)
	in.Pesticide = PesticideField.Clamp(in.Pesticide)
	return in
}

// FromForm builds an Input from submitted form values. Missing or
// unparseable numbers take the field default, missing selections take the
// first known class, and everything is clamped. Category membership is not
// checked here; the predictor reports unknown categories.
func FromForm(values url.Values, encoders ml.Encoders) Input {
	in := DefaultInput(encoders)
	if v := strings.TrimSpace(values.Get(AreaFieldName)); v != "" {
		in.Area = v
	}
	if v := strings.TrimSpace(values.Get(CropFieldName)); v != "" {
		in.Crop = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(values.Get(YearField.Name))); err == nil {
		in.Year = v
	}
	in.Rainfall = parseFloat(values.Get(RainfallField.Name), in.Rainfall)
	in.Temperature = parseFloat(values.Get(TemperatureField.Name), in.Temperature)
	in.Pesticide = parseFloat(values.Get(PesticideField.Name), in.Pesticide)
	return in.Clamp()
}

func parseFloat(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return fallback
	}
	return v
}

func firstClass(encoder *ml.LabelEncoder) string {
	if encoder == nil {
		return ""
	}
	classes := encoder.Classes()
	if len(classes) == 0 {
		return ""
	}
	return classes[0]
}
