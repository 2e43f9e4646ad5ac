package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tabcast/tabcast/pkg/rules"
	"github.com/tabcast/tabcast/pkg/table"
)

// Kind is the inferred semantic type tag attached to each row item.
type Kind string

const (
	KindText    Kind = "TEXT"
	KindNumber  Kind = "NUMBER"
	KindBoolean Kind = "BOOLEAN"
)

// InferKind classifies a cell value. Booleans are checked before numerics so
// they are never misclassified as NUMBER; anything unrecognized is TEXT.
func InferKind(cell table.Cell) Kind {
	switch cell.(type) {
	case nil:
		return KindText
	case string:
		return KindText
	case bool:
		return KindBoolean
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindNumber
	default:
		return KindText
	}
}

// mappedKind routes a canonical kind through the pattern's kind_mapping.
// Unmapped kinds keep their canonical tag.
func mappedKind(cfg *rules.PatternConfig, kind Kind) Kind {
	if tag := cfg.KindMapping[strings.ToLower(string(kind))]; tag != "" {
		return Kind(tag)
	}

	return kind
}

// FormatCell renders a cell value as a string. Numbers print without a
// trailing ".0" for integral values; booleans print as true/false.
func FormatCell(cell table.Cell) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
