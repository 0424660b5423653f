package workouts

import (
	"fmt"
	"time"
)

type Locale string

const (
	LocaleEnUS Locale = "en-US"
	LocaleRuRU Locale = "ru-RU"
)

type unit int

const (
	unitKm unit = iota
	unitMin
	unitMinPerKm
	unitKmPerHour
	unitStepsPerMin
	unitMeters
)

type localeTable struct {
	activity   map[Kind]string
	dateLayout string
	units      map[unit]string
}

var locales = map[Locale]localeTable{
	LocaleEnUS: {
		activity: map[Kind]string{
			KindRunning: "Running",
			KindCycling: "Cycling",
		},
		dateLayout: "1/2/2006",
		units: map[unit]string{
			unitKm:          "km",
			unitMin:         "min",
			unitMinPerKm:    "min/km",
			unitKmPerHour:   "km/h",
			unitStepsPerMin: "spm",
			unitMeters:      "m",
		},
	},
	LocaleRuRU: {
		activity: map[Kind]string{
			KindRunning: "Пробежка",
			KindCycling: "Велотренировка",
		},
		dateLayout: "02.01.2006",
		units: map[unit]string{
			unitKm:          "км",
			unitMin:         "мин",
			unitMinPerKm:    "мин/км",
			unitKmPerHour:   "км/ч",
			unitStepsPerMin: "шаг/мин",
			unitMeters:      "м",
		},
	},
}

func ParseLocale(s string) (Locale, error) {
	l := Locale(s)
	if _, ok := locales[l]; !ok {
		return "", fmt.Errorf("unsupported label locale: %s", s)
	}
	return l, nil
}

func (l Locale) table() localeTable {
	if t, ok := locales[l]; ok {
		return t
	}
	return locales[LocaleEnUS]
}

// Label formats "<activity name> <locale date>", e.g. "Running 10/19/2026".
func (l Locale) Label(kind Kind, at time.Time) string {
	t := l.table()
	return fmt.Sprintf("%s %s", t.activity[kind], at.Format(t.dateLayout))
}

func (l Locale) unit(u unit) string {
	return l.table().units[u]
}
