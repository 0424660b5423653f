package workouts

import (
	"strconv"
)

const (
	iconRunning   = "🏃"
	iconCycling   = "🚵‍♂️"
	iconDuration  = "⏱"
	iconPace      = "📏⏱"
	iconCadence   = "👟⏱"
	iconElevation = "🏔"
)

type Detail struct {
	Icon  string `json:"icon"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// View is what the map renders for a workout: the popup and the list entry.
type View struct {
	ID          string      `json:"id"`
	Kind        Kind        `json:"kind"`
	Label       string      `json:"label"`
	Icon        string      `json:"icon"`
	PopupClass  string      `json:"popupClass"`
	Coordinates Coordinates `json:"coordinates"`
	Details     []Detail    `json:"details"`
}

func (k Kind) Icon() string {
	if k == KindCycling {
		return iconCycling
	}
	return iconRunning
}

// NewView renders w with the units of the given locale. Pace and speed are
// shown with 2 decimals, user input as entered.
func NewView(w Workout, locale Locale) View {
	v := View{
		ID:          w.ID,
		Kind:        w.Kind,
		Label:       w.Label,
		Icon:        w.Kind.Icon(),
		PopupClass:  w.Kind.String() + "-popup",
		Coordinates: w.Coordinates,
		Details: []Detail{
			{Icon: w.Kind.Icon(), Value: formatNumber(w.Distance), Unit: locale.unit(unitKm)},
			{Icon: iconDuration, Value: formatNumber(w.Duration), Unit: locale.unit(unitMin)},
		},
	}

	switch w.Kind {
	case KindRunning:
		v.Details = append(v.Details,
			Detail{Icon: iconPace, Value: strconv.FormatFloat(w.Running.Pace, 'f', 2, 64), Unit: locale.unit(unitMinPerKm)},
			Detail{Icon: iconCadence, Value: formatNumber(w.Running.Cadence), Unit: locale.unit(unitStepsPerMin)},
		)
	case KindCycling:
		v.Details = append(v.Details,
			Detail{Icon: iconPace, Value: strconv.FormatFloat(w.Cycling.Speed, 'f', 2, 64), Unit: locale.unit(unitKmPerHour)},
			Detail{Icon: iconElevation, Value: formatNumber(w.Cycling.ElevationGain), Unit: locale.unit(unitMeters)},
		)
	}

	return v
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
