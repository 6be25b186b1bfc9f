package calendar

import (
	"regexp"
	"strings"
)

// Inferencia de "todo el día". El markup no lo marca explícitamente, así
// que se aplica una cadena ordenada de reglas; la primera que tenga
// opinión decide, y sin opinión el evento se asume de día completo.
//
// Prioridad: el patrón de hora en el título es la señal más confiable
// (horario escrito a mano), después los timestamps de máquina.

var fullwidthColon = strings.NewReplacer("：", ":")

// timeFragmentRE detecta un horario H:MM / HH:MM (hora 0-23) embebido en texto.
var timeFragmentRE = regexp.MustCompile(`\b([01]?\d|2[0-3]):[0-5]\d\b`)

// startMidnightRE: el componente horario del start es exactamente medianoche.
var startMidnightRE = regexp.MustCompile(`T00:00(:\d\d)?([+-]\d\d:\d\d|Z)$`)

// endBoundaryRE: el componente horario del end es medianoche o 23:59,
// los dos bordes con que el plugin representa días completos.
var endBoundaryRE = regexp.MustCompile(`T(00:00|23:59)(:\d\d)?([+-]\d\d:\d\d|Z)$`)

type allDayRule struct {
	name string
	// apply devuelve (verdict, ok). ok=false significa "sin opinión":
	// se sigue con la siguiente regla.
	apply func(title string, startISO, endISO *string) (bool, bool)
}

var allDayRules = []allDayRule{
	{
		name: "title-time",
		apply: func(title string, _, _ *string) (bool, bool) {
			normalized := fullwidthColon.Replace(title)
			if timeFragmentRE.MatchString(normalized) {
				return false, true
			}
			return false, false
		},
	},
	{
		name: "start-has-time",
		apply: func(_ string, startISO, _ *string) (bool, bool) {
			if startISO != nil && !startMidnightRE.MatchString(*startISO) {
				return false, true
			}
			return false, false
		},
	},
	{
		name: "end-has-time",
		apply: func(_ string, _, endISO *string) (bool, bool) {
			if endISO != nil && !endBoundaryRE.MatchString(*endISO) {
				return false, true
			}
			return false, false
		},
	},
}

func estimateAllDay(title string, startISO, endISO *string) bool {
	for _, rule := range allDayRules {
		if verdict, ok := rule.apply(title, startISO, endISO); ok {
			return verdict
		}
	}
	return true
}
