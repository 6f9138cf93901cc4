package beast

import (
	"strings"

	"github.com/dmitrymomot/beast/pkg/validator"
)

var messageAliases = map[string]string{
	"minValue":      validator.MsgMinValue,
	"maxValue":      validator.MsgMaxValue,
	"minAge":        validator.MsgMinAge,
	"maxAge":        validator.MsgMaxAge,
	"minChecked":    validator.MsgMinChecked,
	"invalidFormat": validator.MsgInvalidFormat,
	"invalidValue":  validator.MsgInvalidValue,
}

// MessageKey maps a short message name to its table key. "required",
// "min_value" and "minValue" all name validator.MsgRequired-style keys;
// "passwordStrength_weak" and "password_strength.weak" name the weak
// password message. Dotted keys outside the validation table are returned
// unchanged.
func MessageKey(key string) string {
	if alias, ok := messageAliases[key]; ok {
		return alias
	}
	if level, ok := strings.CutPrefix(key, "passwordStrength_"); ok {
		return validator.MsgPasswordPrefix + level
	}
	if strings.Contains(key, ".") && !strings.HasPrefix(key, "password_strength.") {
		return key
	}
	return "validation." + key
}
