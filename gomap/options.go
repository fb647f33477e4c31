package gomap

// Option fields of the kinds, as decoded from records. Sub-schemas and
// opaque values are decoded separately.

type strictOpts struct {
	Strict bool `mapstructure:"strict"`
}

type sizeOpts struct {
	MinLength *int `mapstructure:"min_length" validate:"omitempty,gte=0"`
	MaxLength *int `mapstructure:"max_length" validate:"omitempty,gte=0"`
	Strict    bool `mapstructure:"strict"`
}

type intOpts struct {
	Gt         *int64 `mapstructure:"gt"`
	Ge         *int64 `mapstructure:"ge"`
	Lt         *int64 `mapstructure:"lt"`
	Le         *int64 `mapstructure:"le"`
	MultipleOf *int64 `mapstructure:"multiple_of" validate:"omitempty,gt=0"`
	Strict     bool   `mapstructure:"strict"`
}

type floatOpts struct {
	Gt          *float64 `mapstructure:"gt"`
	Ge          *float64 `mapstructure:"ge"`
	Lt          *float64 `mapstructure:"lt"`
	Le          *float64 `mapstructure:"le"`
	MultipleOf  *float64 `mapstructure:"multiple_of" validate:"omitempty,gt=0"`
	AllowInfNaN bool     `mapstructure:"allow_inf_nan"`
	Strict      bool     `mapstructure:"strict"`
}

type strOpts struct {
	Pattern         string `mapstructure:"pattern"`
	MinLength       *int   `mapstructure:"min_length" validate:"omitempty,gte=0"`
	MaxLength       *int   `mapstructure:"max_length" validate:"omitempty,gte=0"`
	ToLower         bool   `mapstructure:"to_lower"`
	ToUpper         bool   `mapstructure:"to_upper"`
	StripWhitespace bool   `mapstructure:"strip_whitespace"`
	Strict          bool   `mapstructure:"strict"`
}

type nameOpts struct {
	Name string `mapstructure:"name"`
}

type modeOpts struct {
	Mode string `mapstructure:"mode" validate:"required,oneof=before after plain wrap"`
}
