package loader

import (
	"errors"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

var yamlLine = regexp.MustCompile(`line (\d+)`)

// YAML decodes with gopkg.in/yaml.v3. Integers decode as int.
var YAML = Format{
	Name: "YAML",
	parse: func(data []byte) (map[string]any, error) {
		var m map[string]any
		err := yaml.Unmarshal(data, &m)
		return m, err
	},
	position: func(err error) (int, int) {
		var terr *yaml.TypeError
		if errors.As(err, &terr) && len(terr.Errors) > 0 {
			err = errors.New(terr.Errors[0])
		}
		match := yamlLine.FindStringSubmatch(err.Error())
		if match == nil {
			return 0, 0
		}
		line, _ := strconv.Atoi(match[1])
		return line, 0
	},
}
