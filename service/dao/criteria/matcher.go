package criteria

import (
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao"
)

// MatchProcess reports whether p satisfies every parameter. Unknown parameter
// names are ignored.
func MatchProcess(p *execution.Process, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		switch parameter.Name {
		case dao.ParamStatus:
			if !matches(string(p.Status), parameter.Value) {
				return false
			}
		case dao.ParamDefinitionKey:
			if !matches(p.DefinitionKey, parameter.Value) {
				return false
			}
		}
	}
	return true
}

func matches(value string, expected interface{}) bool {
	switch actual := expected.(type) {
	case string:
		return value == actual
	case []string:
		for _, candidate := range actual {
			if value == candidate {
				return true
			}
		}
		return false
	}
	return true
}
