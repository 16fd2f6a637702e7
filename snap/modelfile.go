package snap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	snapfs "github.com/dzonerzy/go-snapargs/fs"
)

// modelDocument is the on-disk form of a ParseModel.
type modelDocument struct {
	Delimiters    string             `json:"delimiters" yaml:"delimiters" toml:"delimiters"`
	CaseSensitive bool               `json:"case_sensitive" yaml:"case_sensitive" toml:"case_sensitive"`
	Matching      string             `json:"matching" yaml:"matching" toml:"matching"`
	AllowUnnamed  *bool              `json:"allow_unnamed" yaml:"allow_unnamed" toml:"allow_unnamed"`
	ArgsFile      string             `json:"args_file" yaml:"args_file" toml:"args_file"`
	Arguments     []argumentDocument `json:"arguments" yaml:"arguments" toml:"arguments"`
}

type argumentDocument struct {
	Names       []string `json:"names" yaml:"names" toml:"names"`
	Cardinality string   `json:"cardinality" yaml:"cardinality" toml:"cardinality"`
	Required    bool     `json:"required" yaml:"required" toml:"required"`
	Flags       []string `json:"flags" yaml:"flags" toml:"flags"`
	Description string   `json:"description" yaml:"description" toml:"description"`
}

// LoadModel reads a model document from path. The format follows the file
// extension: .json, .yaml/.yml or .toml. Omitted options take the NewModel
// defaults and an omitted cardinality is "zero".
func LoadModel(fsys snapfs.Filesystem, path string) (*ParseModel, error) {
	data, err := fsys.ReadAllBytes(path)
	if err != nil {
		return nil, NewParseError(ErrorTypeInvalidModel, fmt.Sprintf("cannot read model %s: %v", path, err)).
			WithCause(err)
	}
	var doc modelDocument
	if err := decodeModelDocument(data, filepath.Ext(path), &doc); err != nil {
		return nil, NewParseError(ErrorTypeInvalidModel, fmt.Sprintf("cannot decode model %s: %v", path, err)).
			WithCause(err)
	}
	model, err := doc.model()
	if err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

func decodeModelDocument(data []byte, ext string, doc *modelDocument) error {
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(doc)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(doc)
	case ".toml":
		md, err := toml.Decode(string(data), doc)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
		return nil
	}
	return fmt.Errorf("unsupported model format %q", ext)
}

func (d *modelDocument) model() (*ParseModel, error) {
	b := NewModel()
	if d.Delimiters != "" {
		b.Delimiters([]rune(d.Delimiters)...)
	}
	b.CaseSensitive(d.CaseSensitive)
	if d.AllowUnnamed != nil {
		b.AllowUnnamed(*d.AllowUnnamed)
	}
	mode, err := ParseMatchMode(d.Matching)
	if err != nil {
		return nil, NewParseError(ErrorTypeInvalidModel, err.Error())
	}
	b.Matching(mode)
	if d.ArgsFile != "" {
		r, size := utf8.DecodeRuneInString(d.ArgsFile)
		if size != len(d.ArgsFile) {
			return nil, NewParseError(ErrorTypeInvalidModel,
				fmt.Sprintf("args_file must be a single character, got %q", d.ArgsFile))
		}
		b.ArgsFile(r)
	}

	for _, a := range d.Arguments {
		if len(a.Names) == 0 {
			return nil, NewParseError(ErrorTypeInvalidModel, "argument without names")
		}
		ab := b.Arg(a.Names[0], a.Names[1:]...).Description(a.Description)
		if a.Cardinality != "" {
			c, err := ParseCardinality(a.Cardinality)
			if err != nil {
				return nil, NewParseError(ErrorTypeInvalidModel, err.Error()).WithArgument(a.Names[0])
			}
			ab.cardinality(c)
		}
		if a.Required {
			ab.Required()
		}
		for _, name := range a.Flags {
			f, err := ParseValueFlag(name)
			if err != nil {
				return nil, NewParseError(ErrorTypeInvalidModel, err.Error()).WithArgument(a.Names[0])
			}
			ab.flag(f)
		}
	}
	return b.model, nil
}
