package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOML decodes with pelletier/go-toml. Integers decode as int64.
var TOML = Format{
	Name: "TOML",
	parse: func(data []byte) (map[string]any, error) {
		var m map[string]any
		err := toml.Unmarshal(data, &m)
		return m, err
	},
	position: func(err error) (int, int) {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			return derr.Position()
		}
		return 0, 0
	},
}
