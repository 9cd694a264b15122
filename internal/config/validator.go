package config

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	tserrors "github.com/alexisbeaulieu97/tokenscope/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern   = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	cssIdentPattern = regexp.MustCompile(`^-{0,2}[A-Za-z_][A-Za-z0-9_-]*$`)
	sshGitPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+:[a-zA-Z0-9._/~-]+$`)
	logLevels       = map[string]struct{}{"trace": {}, "debug": {}, "info": {}, "warn": {}, "error": {}, "fatal": {}, "panic": {}, "disabled": {}}
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("css_ident", func(fl validator.FieldLevel) bool {
			return cssIdentPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
			_, ok := logLevels[strings.ToLower(fl.Field().String())]
			return ok
		})

		_ = v.RegisterValidation("git_url", func(fl validator.FieldLevel) bool {
			return isGitURL(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// ValidateConfig checks a fully resolved configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return tserrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if strings.ContainsAny(cfg.Selector, "\n\r") {
		return tserrors.NewValidationError("selector", "selector must be a single line", nil)
	}

	return nil
}

// ValidateSourceConfig checks the settings needed to locate and read a
// module, ignoring the prefix.
func ValidateSourceConfig(cfg *Config) error {
	if cfg == nil {
		return tserrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().StructExcept(cfg, "Prefix"); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := ve.Field()
		return tserrors.NewValidationError(field, describe(ve), err)
	}

	return tserrors.NewValidationError("config", err.Error(), err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "semver":
		return fmt.Sprintf("%q is not a valid version", fe.Value())
	case "css_ident":
		return fmt.Sprintf("%q is not a valid CSS variable prefix", fe.Value())
	case "log_level":
		return fmt.Sprintf("%q is not a known log level", fe.Value())
	case "git_url":
		return fmt.Sprintf("%q is not a git URL or local repository path", fe.Value())
	case "excluded_without":
		return fmt.Sprintf("requires %s to be set", strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("%s failed validation for tag '%s'", fe.Field(), fe.Tag())
	}
}

// isGitURL accepts http(s) URLs with a host, scp-style SSH remotes and
// explicit local paths.
func isGitURL(raw string) bool {
	if raw == "" {
		return true
	}
	if strings.TrimSpace(raw) == "" {
		return false
	}

	if parsed, err := url.Parse(raw); err == nil {
		scheme := strings.ToLower(parsed.Scheme)
		if (scheme == "http" || scheme == "https") && parsed.Host != "" {
			return true
		}
	}

	if sshGitPattern.MatchString(raw) {
		return true
	}

	if strings.Contains(raw, "\x00") {
		return false
	}
	if strings.HasPrefix(raw, "/") {
		return !strings.Contains(raw, "/../") && !strings.HasSuffix(raw, "/..")
	}
	return strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../")
}
