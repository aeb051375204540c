package appconfig

import "regexp"

// fieldRule validates one class of configuration value against a syntactic
// pattern. Keeping the rules in one table avoids scattering regexes and
// error wording across the resolution steps.
type fieldRule struct {
	pattern *regexp.Regexp
	message string
}

func (r fieldRule) check(value string) error {
	if r.pattern.MatchString(value) {
		return nil
	}
	return errorf(r.message, value)
}

var (
	envNameRule = fieldRule{
		pattern: regexp.MustCompile(`^[A-Za-z]\w*$`),
		message: "invalid environment variable name: %q",
	}
	packageNameRule = fieldRule{
		pattern: regexp.MustCompile(`^[\w.-]+$`),
		message: "invalid debian package name: %q",
	}
	cloudSQLNameRule = fieldRule{
		pattern: regexp.MustCompile(`^[\w:.-]+$`),
		message: "invalid cloud sql instance name: %q",
	}
	rubyVersionRule = fieldRule{
		pattern: regexp.MustCompile(`^\d+\.\d+\.[\w.-]+$`),
		message: "invalid ruby version: %q",
	}
)
