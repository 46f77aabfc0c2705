package gramatica

import "strings"

// Unir enumera los elementos al modo castellano: "A", "A Y B", "A, B Y C".
// No cambia mayúsculas; los llamadores pasan textos ya en mayúsculas.
// La conjunción pasa a "E" ante palabras que empiezan con sonido I (ISABEL, HILDA),
// salvo los diptongos HIE/HIA (HIERRO).
func Unir(items []string) string {
	clean := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			clean = append(clean, it)
		}
	}
	switch len(clean) {
	case 0:
		return ""
	case 1:
		return clean[0]
	}
	last := clean[len(clean)-1]
	return strings.Join(clean[:len(clean)-1], ", ") + " " + Conjuncion(last) + " " + last
}

// Conjuncion devuelve "Y" o "E" según la palabra que sigue.
func Conjuncion(siguiente string) string {
	w := []rune(strings.ToUpper(strings.TrimSpace(siguiente)))
	if len(w) == 0 {
		return "Y"
	}
	esI := func(r rune) bool { return r == 'I' || r == 'Í' }
	if esI(w[0]) {
		return "E"
	}
	if w[0] == 'H' && len(w) > 1 && esI(w[1]) {
		if len(w) > 2 && (w[2] == 'E' || w[2] == 'A') {
			return "Y"
		}
		return "E"
	}
	return "Y"
}
