package effect

import "math"

// Params holds the parameters of a single node.
type Params struct {
	Bypassed bool               `json:"bypassed,omitempty"`
	Num      map[string]float64 `json:"num,omitempty"`
	Str      map[string]string  `json:"str,omitempty"`
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// GetStr returns a string parameter or def.
func (p Params) GetStr(key, def string) string {
	v, ok := p.Str[key]
	if !ok {
		return def
	}

	return v
}

// ParamTable maps node ids to their parameters. Nodes without an id (ad-hoc
// automatic-chain entries) are looked up by their kind name.
type ParamTable map[string]Params

// For returns the parameters of a node.
func (t ParamTable) For(nodeID string, kind Kind) Params {
	if t == nil {
		return Params{}
	}

	if nodeID != "" {
		return t[nodeID]
	}

	return t[kind.String()]
}

// Clone deep-copies the table so a snapshot never aliases caller maps.
func (t ParamTable) Clone() ParamTable {
	if t == nil {
		return nil
	}

	out := make(ParamTable, len(t))
	for id, p := range t {
		c := Params{Bypassed: p.Bypassed}

		if p.Num != nil {
			c.Num = make(map[string]float64, len(p.Num))
			for k, v := range p.Num {
				c.Num[k] = v
			}
		}

		if p.Str != nil {
			c.Str = make(map[string]string, len(p.Str))
			for k, v := range p.Str {
				c.Str[k] = v
			}
		}

		out[id] = c
	}

	return out
}
