package cmd

import (
	"github.com/etnz/geprice/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of gep.
func Completion() *complete.Command {
	names := complete.PredictFunc(predictNames)
	months := predict.Something
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":   predict.Files("*.yaml"),
			"data-dir": predict.Dirs("*"),
			"raw":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"fetch": {
				Flags: map[string]complete.Predictor{"format": predict.Set{"graph", "viewitem", "all"}},
				Args:  names,
			},
			"crawl": {
				Flags: map[string]complete.Predictor{
					"from":     predict.Something,
					"to":       predict.Something,
					"resume":   predict.Nothing,
					"discover": predict.Nothing,
				},
			},
			"history": {Args: names},
			"query": {
				Flags: map[string]complete.Predictor{"from": months, "to": months},
				Args:  names,
			},
			"export": {
				Flags: map[string]complete.Predictor{"from": months, "to": months, "o": predict.Files("*.xlsx")},
				Args:  names,
			},
			"names":    {Args: predict.Something},
			"topic":    {Args: complete.PredictFunc(predictTopics)},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}

// predictNames proposes the names of the registry, read with the default configuration.
func predictNames(prefix string) []string {
	a, err := openApp()
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range a.registry.Entries() {
		names = append(names, e.Name)
	}
	return names
}

func predictTopics(prefix string) []string {
	topics, _ := docs.GetAllTopics()
	return topics
}
