package plan

import "strconv"

// Env selects the runtime environment a UMD build is substituted for.
type Env string

const (
	EnvDevelopment Env = "development"
	EnvProduction  Env = "production"
)

// envSentinel is the conditional expression UMD builds resolve at build
// time. ES-module and CommonJS outputs leave it untouched, deferring the
// choice to the consumer's own bundler.
const envSentinel = "process.env.NODE_ENV"

// Substitutions returns the single text-replacement rule applied inside UMD
// descriptors: every occurrence of the environment sentinel becomes the
// string-quoted env value. The rule is deliberately not a general
// preprocessor; it matches literal text only.
func Substitutions(env Env) map[string]string {
	return map[string]string{
		envSentinel: strconv.Quote(string(env)),
	}
}

func replaceStep(env Env) Replace {
	return Replace{
		Pattern:     envSentinel,
		Replacement: strconv.Quote(string(env)),
	}
}
