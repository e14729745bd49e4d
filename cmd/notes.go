package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/timegrid/model"
	"gopkg.in/yaml.v3"
)

func readNotesFile(path string) (model.Notes, error) {
	var res model.Notes
	dat, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("could not read notes %s: %w", path, err)
	}
	if err := yaml.Unmarshal(dat, &res); err != nil {
		return res, fmt.Errorf("could not parse notes %s: %w", path, err)
	}
	for _, n := range res.Notes {
		if err := n.Validate(); err != nil {
			return res, model.InvalidParameter("%s: %v", path, err)
		}
	}
	return res, nil
}
