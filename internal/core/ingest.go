package core

import (
	"fmt"
	"strconv"
	"strings"

	"ensemblecore/internal/configtext"
	"ensemblecore/pkg/domain"
)

// IngestConfig translates parsed configuration statements into registry
// mutations. The grid is required only when FIELD statements are present.
// Containers are wired last so every child key they reference has already
// been registered.
func (r *Registry) IngestConfig(cfg *configtext.Config, grid Grid) error {
	done := r.begin("ingest_config")
	err := r.ingestConfig(cfg, grid)
	done(err)
	return err
}

func (r *Registry) ingestConfig(cfg *configtext.Config, grid Grid) error {
	if format, ok := cfg.Value(configtext.KeywordGenKWTagFormat); ok {
		r.SetTagFormat(format)
	}
	if err := r.ingestGenParam(cfg); err != nil {
		return err
	}
	if err := r.ingestGenData(cfg); err != nil {
		return err
	}
	if err := r.ingestSurface(cfg); err != nil {
		return err
	}
	if err := r.ingestField(cfg, grid); err != nil {
		return err
	}
	if err := r.ingestGenKW(cfg); err != nil {
		return err
	}
	if err := r.ingestSummary(cfg); err != nil {
		return err
	}
	return r.ingestContainer(cfg)
}

func genDataFormats(stmt configtext.Statement) (input, output domain.GenDataFormat, err error) {
	input, err = domain.ParseGenDataFormat(stmt.Option(configtext.OptionInputFormat))
	if err != nil {
		return
	}
	output, err = domain.ParseGenDataFormat(stmt.Option(configtext.OptionOutputFormat))
	return
}

// ingestGenParam handles GEN_PARAM statements: generated data written for
// the forward model, with the output file as second positional argument.
func (r *Registry) ingestGenParam(cfg *configtext.Config) error {
	for _, stmt := range cfg.Occurrences(configtext.KeywordGenParam) {
		key := stmt.Args[0]
		outputFile := stmt.Args[1]
		node, err := r.AddGenData(key)
		if err != nil {
			return err
		}
		inputFormat, outputFormat, err := genDataFormats(stmt)
		if err != nil {
			return fmt.Errorf("%s %q: %w", stmt.Keyword, key, err)
		}
		if err := node.UpdateGenData(inputFormat, outputFormat,
			stmt.Option(configtext.OptionInitFiles),
			stmt.Option(configtext.OptionTemplate),
			stmt.Option(configtext.OptionKey),
			outputFile,
			stmt.Option(configtext.OptionResultFile),
			stmt.Option(configtext.OptionMinStd)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) ingestGenData(cfg *configtext.Config) error {
	for _, stmt := range cfg.Occurrences(configtext.KeywordGenData) {
		key := stmt.Args[0]
		node, err := r.AddGenData(key)
		if err != nil {
			return err
		}
		inputFormat, outputFormat, err := genDataFormats(stmt)
		if err != nil {
			return fmt.Errorf("%s %q: %w", stmt.Keyword, key, err)
		}
		if err := node.UpdateGenData(inputFormat, outputFormat,
			stmt.Option(configtext.OptionInitFiles),
			stmt.Option(configtext.OptionTemplate),
			stmt.Option(configtext.OptionKey),
			stmt.Option(configtext.OptionEclFile),
			stmt.Option(configtext.OptionResultFile),
			stmt.Option(configtext.OptionMinStd)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) ingestSurface(cfg *configtext.Config) error {
	for _, stmt := range cfg.Occurrences(configtext.KeywordSurface) {
		key := stmt.Args[0]
		node, err := r.AddSurface(key)
		if err != nil {
			return err
		}
		if err := node.UpdateSurface(
			stmt.Option(configtext.OptionBaseSurface),
			stmt.Option(configtext.OptionInitFiles),
			stmt.Option(configtext.OptionOutputFile),
			stmt.Option(configtext.OptionMinStd)); err != nil {
			return err
		}
	}
	return nil
}

func fieldTruncation(stmt configtext.Statement, key string) (TruncationMode, float64, float64, error) {
	truncation := TruncateNone
	var minValue, maxValue float64
	if stmt.HasOption(configtext.OptionMin) {
		v, err := strconv.ParseFloat(stmt.Option(configtext.OptionMin), 64)
		if err != nil {
			return truncation, 0, 0, fmt.Errorf("FIELD %q: invalid MIN value %q", key, stmt.Option(configtext.OptionMin))
		}
		truncation |= TruncateMin
		minValue = v
	}
	if stmt.HasOption(configtext.OptionMax) {
		v, err := strconv.ParseFloat(stmt.Option(configtext.OptionMax), 64)
		if err != nil {
			return truncation, 0, 0, fmt.Errorf("FIELD %q: invalid MAX value %q", key, stmt.Option(configtext.OptionMax))
		}
		truncation |= TruncateMax
		maxValue = v
	}
	return truncation, minValue, maxValue, nil
}

func (r *Registry) ingestField(cfg *configtext.Config, grid Grid) error {
	for _, stmt := range cfg.Occurrences(configtext.KeywordField) {
		key := stmt.Args[0]
		usage := stmt.Args[1]
		node, err := r.AddField(key, grid)
		if err != nil {
			return err
		}
		truncation, minValue, maxValue, err := fieldTruncation(stmt, key)
		if err != nil {
			return err
		}

		switch usage {
		case "DYNAMIC":
			err = node.UpdateStateField(truncation, minValue, maxValue)
		case "PARAMETER":
			if len(stmt.Args) < 3 {
				return fmt.Errorf("FIELD %q: PARAMETER fields require an output file argument", key)
			}
			err = node.UpdateParameterField(stmt.Args[2],
				stmt.Option(configtext.OptionInitFiles),
				stmt.Option(configtext.OptionMinStd),
				truncation, minValue, maxValue,
				stmt.Option(configtext.OptionInitTransform),
				stmt.Option(configtext.OptionOutputTransform))
		case "GENERAL":
			if len(stmt.Args) < 4 {
				return fmt.Errorf("FIELD %q: GENERAL fields require output and input file arguments", key)
			}
			err = node.UpdateGeneralField(stmt.Args[2], stmt.Args[3],
				stmt.Option(configtext.OptionInitFiles),
				stmt.Option(configtext.OptionMinStd),
				truncation, minValue, maxValue,
				stmt.Option(configtext.OptionInitTransform),
				stmt.Option(configtext.OptionInputTransform),
				stmt.Option(configtext.OptionOutputTransform))
		default:
			return fmt.Errorf("FIELD %q: field type %q is not recognized", key, usage)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) ingestGenKW(cfg *configtext.Config) error {
	for _, stmt := range cfg.Occurrences(configtext.KeywordGenKW) {
		key := stmt.Args[0]
		node, err := r.AddGenKW(key)
		if err != nil {
			return err
		}
		if err := node.UpdateGenKW(stmt.Args[1], stmt.Args[2], stmt.Args[3],
			stmt.Option(configtext.OptionMinStd),
			stmt.Option(configtext.OptionInitFiles)); err != nil {
			return err
		}
	}
	return nil
}

// hasWildcard reports whether a summary token needs expansion against the
// reference case.
func hasWildcard(key string) bool {
	return strings.ContainsAny(key, "*?")
}

func (r *Registry) ingestSummary(cfg *configtext.Config) error {
	for _, stmt := range cfg.Occurrences(configtext.KeywordSummary) {
		for _, key := range stmt.Args {
			if !hasWildcard(key) {
				if _, err := r.AddSummary(key, LoadFailSilent); err != nil {
					return err
				}
				continue
			}
			refcase := r.ReferenceCase()
			if refcase == nil {
				return domain.UnresolvedWildcardError{Pattern: key}
			}
			for _, expanded := range refcase.ExpandWildcard(key) {
				if _, err := r.AddSummary(expanded, LoadFailSilent); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (r *Registry) ingestContainer(cfg *configtext.Config) error {
	for _, stmt := range cfg.Occurrences(configtext.KeywordContainer) {
		node, err := r.AddContainer(stmt.Args[0])
		if err != nil {
			return err
		}
		for _, childKey := range stmt.Args[1:] {
			child, err := r.Node(childKey)
			if err != nil {
				return err
			}
			if err := node.AppendContainerChild(child.Key()); err != nil {
				return err
			}
		}
	}
	return nil
}
