package document

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/hengadev/wxf"
	"github.com/hengadev/wxf/internal/wxferr"
)

// ParseTOML decodes a TOML document into a map[string]any. Offset date-times
// stay time.Time values; local dates, times and date-times, which carry no
// zone, become DateObject expressions over their TOML text.
func ParseTOML(data []byte) (any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, wxferr.NewSyntaxError("toml", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return localDates(doc), nil
}

func localDates(node any) any {
	switch n := node.(type) {
	case map[string]any:
		for k, v := range n {
			n[k] = localDates(v)
		}
		return n
	case []any:
		for i, v := range n {
			n[i] = localDates(v)
		}
		return n
	case toml.LocalDate:
		return wxf.DateObjectString(n.String())
	case toml.LocalDateTime:
		return wxf.DateObjectString(n.String())
	case toml.LocalTime:
		return wxf.DateObjectString(n.String())
	default:
		return n
	}
}
