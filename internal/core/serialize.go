package core

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"ensemblecore/internal/configtext"
	"ensemblecore/pkg/domain"
)

// Layout used when re-emitting configuration text. The keyword column is
// padded so values align; values are whitespace separated so the emitted
// text parses back through configtext.Parse.
const (
	keywordColumn      = "%-24s"
	summaryKeyColumn   = " %-12s"
	summaryKeysPerLine = 8
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func appendOption(b *strings.Builder, name, value string) {
	if value != "" {
		fmt.Fprintf(b, " %s:%s", name, value)
	}
}

// EncodeConfig re-emits the registry state as configuration text: the tag
// format line, then sorted GEN_KW, FIELD, SUMMARY and GEN_DATA groups.
// Surfaces, containers and static keys have no text representation.
// Re-ingesting the output into a fresh registry reproduces the same keys,
// kinds and payload fields.
func (r *Registry) EncodeConfig(w io.Writer) error {
	done := r.begin("encode_config")
	err := r.encodeConfig(w)
	done(err)
	return err
}

func (r *Registry) encodeConfig(w io.Writer) error {
	var b strings.Builder

	b.WriteString(strings.Repeat("-", 72) + "\n")
	b.WriteString("-- Configuration of the uncertain parameters and response variables.\n")

	r.mu.RLock()
	defer r.mu.RUnlock()

	fmt.Fprintf(&b, keywordColumn+" %s\n", configtext.KeywordGenKWTagFormat, r.tagFormat)

	if keys := r.keysByKindLocked(KindGenKW); len(keys) > 0 {
		for _, key := range keys {
			r.encodeGenKW(&b, r.nodes[key])
		}
		b.WriteString("\n")
	}

	if keys := r.keysByKindLocked(KindField); len(keys) > 0 {
		for _, key := range keys {
			r.encodeField(&b, r.nodes[key])
		}
		b.WriteString("\n")
	}

	if keys := r.keysByKindLocked(KindSummary); len(keys) > 0 {
		for i, key := range keys {
			if i%summaryKeysPerLine == 0 {
				if i > 0 {
					b.WriteString("\n")
				}
				fmt.Fprintf(&b, keywordColumn, configtext.KeywordSummary)
			}
			fmt.Fprintf(&b, summaryKeyColumn, key)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, key := range r.keysByKindLocked(KindGenData) {
		r.encodeGenData(&b, r.nodes[key])
	}
	b.WriteString("\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// keysByKindLocked mirrors KeysByKind without re-acquiring the lock.
func (r *Registry) keysByKindLocked(kind ImplementationKind) []string {
	out := make([]string, 0, len(r.nodes))
	for key, node := range r.nodes {
		if node.ImplementationKind() == kind {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func (r *Registry) encodeGenKW(b *strings.Builder, node *ConfigNode) {
	genKW, err := node.GenKWConfig()
	if err != nil {
		return
	}
	fmt.Fprintf(b, keywordColumn+" %s %s %s %s", configtext.KeywordGenKW,
		node.Key(), genKW.TemplateFile(), genKW.OutputFile(), genKW.ParameterFile())
	appendOption(b, configtext.OptionMinStd, genKW.MinStdFile())
	appendOption(b, configtext.OptionInitFiles, genKW.InitFilePattern())
	b.WriteString("\n")
}

func (r *Registry) encodeField(b *strings.Builder, node *ConfigNode) {
	field, err := node.FieldConfig()
	if err != nil {
		return
	}
	fmt.Fprintf(b, keywordColumn+" %s %s", configtext.KeywordField, node.Key(), field.Usage())
	switch field.Usage() {
	case domain.FieldParameter:
		fmt.Fprintf(b, " %s", field.OutputFile())
	case domain.FieldGeneral:
		fmt.Fprintf(b, " %s %s", field.OutputFile(), field.InputFile())
	}
	appendOption(b, configtext.OptionInitFiles, field.InitFilePattern())
	initTransform, inputTransform, outputTransform := field.Transforms()
	appendOption(b, configtext.OptionInitTransform, initTransform)
	appendOption(b, configtext.OptionInputTransform, inputTransform)
	appendOption(b, configtext.OptionOutputTransform, outputTransform)
	appendOption(b, configtext.OptionMinStd, field.MinStdFile())
	truncation, minValue, maxValue := field.Truncation()
	if truncation&TruncateMin != 0 {
		appendOption(b, configtext.OptionMin, formatFloat(minValue))
	}
	if truncation&TruncateMax != 0 {
		appendOption(b, configtext.OptionMax, formatFloat(maxValue))
	}
	b.WriteString("\n")
}

func (r *Registry) encodeGenData(b *strings.Builder, node *ConfigNode) {
	genData, err := node.GenDataConfig()
	if err != nil {
		return
	}
	fmt.Fprintf(b, keywordColumn+" %s", configtext.KeywordGenData, node.Key())
	inputFormat, outputFormat := genData.Formats()
	appendOption(b, configtext.OptionInputFormat, inputFormat.String())
	appendOption(b, configtext.OptionOutputFormat, outputFormat.String())
	appendOption(b, configtext.OptionInitFiles, genData.InitFilePattern())
	appendOption(b, configtext.OptionTemplate, genData.TemplateFile())
	appendOption(b, configtext.OptionKey, genData.DataKey())
	appendOption(b, configtext.OptionEclFile, genData.OutputFile())
	appendOption(b, configtext.OptionResultFile, genData.ResultFile())
	appendOption(b, configtext.OptionMinStd, genData.MinStdFile())
	b.WriteString("\n")
}
