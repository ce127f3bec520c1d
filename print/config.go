package print

import (
	"github.com/juju/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

// StyleConfig is the YAML-serializable shape of Style. KeywordCase is
// spelled "upper", "lower", or "title" since YAML has no caser scalar.
// IndentIncrementContainerTypes names container kinds by their constant
// name without the "Container" prefix and "Clause" suffix (e.g. "Select",
// "Where", "With", "SetOp").
type StyleConfig struct {
	IndentSize                    int      `yaml:"indentSize"`
	IndentChar                    string   `yaml:"indentChar"`
	Newline                       string   `yaml:"newline"`
	KeywordCase                   string   `yaml:"keywordCase"`
	CommaBreak                    bool     `yaml:"commaBreak"`
	AndBreak                      bool     `yaml:"andBreak"`
	IndentIncrementContainerTypes []string `yaml:"indentIncrementContainerTypes"`
}

var containerTypesByName = map[string]ContainerType{
	"None":     ContainerNone,
	"Select":   ContainerSelectClause,
	"From":     ContainerFromClause,
	"Where":    ContainerWhereClause,
	"GroupBy":  ContainerGroupByClause,
	"Having":   ContainerHavingClause,
	"OrderBy":  ContainerOrderByClause,
	"Limit":    ContainerLimitClause,
	"With":     ContainerWithClause,
	"SetOp":    ContainerSetOp,
	"Paren":    ContainerParen,
	"Lock":     ContainerLockClause,
	"Window":   ContainerWindowClause,
}

// LoadStyleYAML decodes a YAML document into a Style, for callers that
// want to supply a custom print preset file instead of constructing a
// Style by hand.
func LoadStyleYAML(data []byte) (Style, error) {
	var cfg StyleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Style{}, errors.Annotate(err, "decode print style YAML")
	}
	style := Style{
		IndentSize: cfg.IndentSize,
		Newline:    cfg.Newline,
		CommaBreak: cfg.CommaBreak,
		AndBreak:   cfg.AndBreak,
	}
	if cfg.IndentIncrementContainerTypes != nil {
		types := make([]ContainerType, 0, len(cfg.IndentIncrementContainerTypes))
		for _, name := range cfg.IndentIncrementContainerTypes {
			ct, ok := containerTypesByName[name]
			if !ok {
				return Style{}, errors.NotValidf("container type %q", name)
			}
			types = append(types, ct)
		}
		style.IndentIncrementContainerTypes = types
	}
	if style.IndentSize == 0 {
		style.IndentSize = DefaultStyle.IndentSize
	}
	if style.Newline == "" {
		style.Newline = DefaultStyle.Newline
	}
	if cfg.IndentChar != "" {
		style.IndentChar = cfg.IndentChar[0]
	} else {
		style.IndentChar = DefaultStyle.IndentChar
	}
	switch cfg.KeywordCase {
	case "lower":
		style.KeywordCase = cases.Lower(language.Und)
	case "title":
		style.KeywordCase = cases.Title(language.Und)
	default:
		style.KeywordCase = cases.Upper(language.Und)
	}
	return style, nil
}
