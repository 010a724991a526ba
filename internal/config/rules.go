package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/mdcheck/internal/errors"
)

// Rules is a TOML rule profile: a shareable declaration of the sections,
// tags, and annotations a document set must carry. Profiles layer on top
// of the main config file so teams can pin structural conventions
// separately from tool settings.
type Rules struct {
	Content     ContentRules     `toml:"content"`
	XMLTags     XMLTagRules      `toml:"xmltags"`
	Annotations AnnotationRules  `toml:"annotations"`
	Frontmatter FrontmatterRules `toml:"frontmatter"`
}

// ContentRules constrains the markdown body.
type ContentRules struct {
	RequiredSections []string `toml:"required_sections"`
	Languages        []string `toml:"languages"`
	MaxBlankLines    int      `toml:"max_blank_lines"`
}

// XMLTagRules constrains inline tag usage.
type XMLTagRules struct {
	RequiredTags []string `toml:"required_tags"`
	MaxDepth     int      `toml:"max_depth"`
}

// AnnotationRules constrains annotation usage.
type AnnotationRules struct {
	Required    []string `toml:"required"`
	Repeatable  []string `toml:"repeatable"`
	LenientJSON bool     `toml:"lenient_json"`
}

// FrontmatterRules constrains frontmatter fields.
type FrontmatterRules struct {
	MaxDescriptionLength int `toml:"max_description_length"`
}

// LoadRules reads and decodes a TOML rule profile.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading rules file %q", path)
	}
	var rules Rules
	if err := toml.Unmarshal(data, &rules); err != nil {
		return nil, errors.Wrapf(err, "parsing rules file %q", path)
	}
	return &rules, nil
}

// Apply merges the rule profile into validator options. Profile values
// fill options the config file did not set; explicit validator options
// win.
func (r *Rules) Apply(configs map[string]ValidatorSettings) map[string]ValidatorSettings {
	if configs == nil {
		configs = make(map[string]ValidatorSettings)
	}

	setDefault := func(name, key string, value any) {
		settings := configs[name]
		if settings.Options == nil {
			settings.Options = make(map[string]any)
		}
		if _, set := settings.Options[key]; !set {
			settings.Options[key] = value
		}
		configs[name] = settings
	}

	if len(r.Content.RequiredSections) > 0 {
		setDefault("content", "required_sections", r.Content.RequiredSections)
	}
	if len(r.Content.Languages) > 0 {
		setDefault("content", "languages", r.Content.Languages)
	}
	if r.Content.MaxBlankLines > 0 {
		setDefault("content", "max_blank_lines", r.Content.MaxBlankLines)
	}
	if len(r.XMLTags.RequiredTags) > 0 {
		setDefault("xmltags", "required_tags", r.XMLTags.RequiredTags)
	}
	if r.XMLTags.MaxDepth > 0 {
		setDefault("xmltags", "max_depth", r.XMLTags.MaxDepth)
	}
	if len(r.Annotations.Required) > 0 {
		setDefault("annotations", "required", r.Annotations.Required)
	}
	if len(r.Annotations.Repeatable) > 0 {
		setDefault("annotations", "repeatable", r.Annotations.Repeatable)
	}
	if r.Annotations.LenientJSON {
		setDefault("annotations", "lenient_json", true)
	}
	if r.Frontmatter.MaxDescriptionLength > 0 {
		setDefault("frontmatter", "max_description_length", r.Frontmatter.MaxDescriptionLength)
	}

	return configs
}
