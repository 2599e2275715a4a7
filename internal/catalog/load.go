package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// SchemaError is a catalog validation failure with source position.
type SchemaError struct {
	Message string
	Pos     token.Pos
}

func (e *SchemaError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// rawItem mirrors the YAML wire format. Prices and meterage arrive as YAML
// numbers and are converted to decimals after schema validation.
type rawItem struct {
	Code         string  `yaml:"code"`
	Name         string  `yaml:"name"`
	Category     string  `yaml:"category"`
	BoxMeterage  float64 `yaml:"box_meterage"`
	UnitsPerPack int64   `yaml:"units_per_pack"`
	Tier1Price   float64 `yaml:"tier1_price"`
	Tier2Price   float64 `yaml:"tier2_price"`
	Tier3Price   float64 `yaml:"tier3_price"`
	Premium      bool    `yaml:"premium"`
}

type rawFile struct {
	Items []rawItem `yaml:"items"`
}

// Load reads a catalog YAML file, validates it against the embedded CUE
// schema, and builds the catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(path, data)
}

// Parse validates and decodes catalog bytes. The filename is used only for
// error positions.
func Parse(filename string, data []byte) (*Catalog, error) {
	if err := ValidateBytes(filename, data); err != nil {
		return nil, err
	}

	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	items := make([]Item, 0, len(raw.Items))
	for _, r := range raw.Items {
		items = append(items, Item{
			Code:         r.Code,
			Name:         r.Name,
			Category:     r.Category,
			BoxMeterage:  decimal.NewFromFloat(r.BoxMeterage),
			UnitsPerPack: r.UnitsPerPack,
			Tier1Price:   decimal.NewFromFloat(r.Tier1Price),
			Tier2Price:   decimal.NewFromFloat(r.Tier2Price),
			Tier3Price:   decimal.NewFromFloat(r.Tier3Price),
			Premium:      r.Premium,
		})
	}

	return New(items)
}

// ValidateBytes checks catalog YAML against the embedded CUE schema without
// building a catalog. Used by Parse and by the validate command.
func ValidateBytes(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return formatCUEError(err)
	}

	v := ctx.BuildFile(file)
	if err := v.Err(); err != nil {
		return formatCUEError(err)
	}

	unified := schema.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}

	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &SchemaError{Message: firstErr.Error(), Pos: positions[0]}
	}

	return &SchemaError{Message: firstErr.Error()}
}
