// Package verdict maps predicted pollutant levels to health assessments
package verdict

import (
	"fmt"

	"github.com/abelzeko/water-quality/internal/entities"
)

type rule struct {
	bad     func(v float64) bool
	good    string
	badText string
}

var rules = map[entities.Pollutant]rule{
	entities.O2: {
		bad:     func(v float64) bool { return !(v > 5) },
		good:    "It has proper levels. >6 mg/L is good for most aquatic life. It's a key indicator of water health.",
		badText: "Low levels (<5 mg/L) stress or kill aquatic organisms. It's a key indicator of water health.",
	},
	// The bad condition can never hold, so NO3 always reports proper levels.
	// Kept as is until the intended threshold is confirmed.
	entities.NO3: {
		bad:     func(v float64) bool { return v > 50 && v < 10 },
		good:    "It has proper levels. WHO limit for drinking water nitrate is 10 mg/L nitrate nitrogen or 50 mg/L nitrate.",
		badText: "Not good for most aquatic life.Higher causes health risks (e.g., methemoglobinemia).In excess, it promotes algae growth (eutrophication) and can harm aquatic ecosystems and drinking water safety.",
	},
	entities.NO2: {
		bad:     func(v float64) bool { return v > 10 },
		good:    "It should be less tham 10 Mg/L to consume. It has proper levels.",
		badText: "Toxic to humans and aquatic life; very low allowable limits.Toxic to aquatic organisms, even at low concentrations. Indicates a breakdown in nitrogen processing.",
	},
	entities.SO4: {
		bad:     func(v float64) bool { return v > 250 },
		good:    "It has proper levels. Generally, not harmful in low concentrations but can affect taste and promote corrosion.",
		badText: "Higher levels cause taste and laxative effects. EPA Secondary Standard.Generally, not harmful in low concentrations but can affect taste and promote corrosion.",
	},
	entities.PO4: {
		bad:     func(v float64) bool { return v > 0.1 },
		good:    "It has proper levels.",
		badText: "Higher levels lead to eutrophication. Aim for low to prevent algal blooms.Excess phosphate leads to algal blooms and eutrophication, causing oxygen depletion and fish kills.",
	},
	entities.CL: {
		bad:     func(v float64) bool { return v > 250 },
		good:    "It has proper levels.",
		badText: "High levels affect taste; aquatic life limits often lower (e.g., <230 mg/L).High chloride concentrations affect drinking water taste and harm freshwater organisms.",
	},
}

// Classify returns the verdict for a single pollutant value
func Classify(p entities.Pollutant, value float64) (entities.VerdictEntry, error) {
	r, ok := rules[p]
	if !ok {
		return entities.VerdictEntry{}, fmt.Errorf("%w: %q", entities.ErrUnknownPollutant, p)
	}

	entry := entities.VerdictEntry{Pollutant: p, Value: value, Healthy: true, Message: r.good}
	if r.bad(value) {
		entry.Healthy = false
		entry.Message = r.badText
	}
	return entry, nil
}

// ClassifyAll classifies every value of a prediction in pollutant order
func ClassifyAll(values entities.PredictionVector) []entities.VerdictEntry {
	entries := make([]entities.VerdictEntry, 0, len(entities.Pollutants))
	for i, p := range entities.Pollutants {
		// every label in Pollutants has a rule
		entry, _ := Classify(p, values[i])
		entries = append(entries, entry)
	}
	return entries
}

// Header renders the "<LABEL> = <value>" line shown above each verdict
func Header(entry entities.VerdictEntry) string {
	return fmt.Sprintf("%s = %.2f", entry.Pollutant, entry.Value)
}
