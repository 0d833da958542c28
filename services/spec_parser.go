package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var (
	// Zeilen der Form "1. Vitamin C (als Ascorbinsäure) : 500 mg"
	specLineRegex = regexp.MustCompile(`(?m)^\s*\d+\s*\.\s*([^:\n]+?)\s*:\s*(.+)$`)
	// erste Ziffern-/Punktfolge in der Gehaltsangabe
	amountRegex = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
)

// SpecificationParser extrahiert (Rohstoff, Gehalt)-Paare aus dem Freitextfeld
// "Normen und Spezifikationen" eines Produkts.
type SpecificationParser struct {
	Logger *zap.Logger
}

// NewSpecificationParser erstellt einen neuen Parser.
func NewSpecificationParser(logger *zap.Logger) *SpecificationParser {
	return &SpecificationParser{Logger: logger}
}

// Parse durchsucht den Spezifikationstext zeilenweise und liefert pro
// erkanntem Rohstoff genau einen Gehalt (bei Mehrfachnennung gewinnt die
// letzte Zeile). Namens-Segmente werden gegen die bekannten Rohstoffnamen
// aufgelöst; Segmente ohne Treffer oder ohne extrahierbare Zahl werden
// übersprungen.
func (p *SpecificationParser) Parse(text string, knownNames []string) map[string]float64 {
	result := make(map[string]float64)
	if strings.TrimSpace(text) == "" || len(knownNames) == 0 {
		return result
	}

	for _, match := range specLineRegex.FindAllStringSubmatch(text, -1) {
		segment := strings.TrimSpace(match[1])
		content := match[2]

		name, ok := p.resolveName(segment, knownNames)
		if !ok {
			continue
		}

		amount, ok := extractAmount(content)
		if !ok {
			p.Logger.Debug("Keine Gehaltsangabe extrahierbar",
				zap.String("ingredient", name), zap.String("content", content))
			continue
		}
		result[name] = amount
	}
	return result
}

// resolveName findet den bekannten Rohstoffnamen, der im Namens-Segment
// enthalten ist. Bei mehreren Treffern gewinnt der längste Name; gleich
// lange Treffer werden lexikografisch aufgelöst, damit das Ergebnis über
// Läufe hinweg deterministisch bleibt.
func (p *SpecificationParser) resolveName(segment string, knownNames []string) (string, bool) {
	var candidates []string
	for _, known := range knownNames {
		if known != "" && strings.Contains(segment, known) {
			candidates = append(candidates, known)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	if len(candidates) > 1 {
		sort.Slice(candidates, func(i, j int) bool {
			if len(candidates[i]) != len(candidates[j]) {
				return len(candidates[i]) > len(candidates[j])
			}
			return candidates[i] < candidates[j]
		})
		p.Logger.Warn("Mehrdeutiges Namens-Segment im Spezifikationstext",
			zap.String("segment", segment),
			zap.Strings("candidates", candidates),
			zap.String("selected", candidates[0]))
	}
	return candidates[0], true
}

// extractAmount holt die erste Ziffern-/Punktfolge aus der Gehaltsangabe.
// Tausender-Trennzeichen werden vorher entfernt.
func extractAmount(content string) (float64, bool) {
	cleaned := strings.ReplaceAll(content, ",", "")
	match := amountRegex.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
