package model

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"strata/internal/merge"
)

// Issue is one field-level validation failure.
type Issue struct {
	Path   string
	Reason string
}

// ValidationError reports that a merged configuration does not satisfy the
// settings model. Issues are sorted by path so the same failure always
// renders the same way.
type ValidationError struct {
	Model  string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "configuration for model %q failed validation (%d issue", e.Model, len(e.Issues))
	if len(e.Issues) != 1 {
		b.WriteString("s")
	}
	b.WriteString(")")
	for _, issue := range e.Issues {
		fmt.Fprintf(&b, "\n  %s: %s", issue.Path, issue.Reason)
	}
	return b.String()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Materialize decodes merged onto a fresh defaults-populated instance of desc
// and validates it. Scalars are coerced weakly ("true" becomes a bool, "5432"
// an int) because env-var and dotenv tiers only carry strings. On success the
// typed value is returned; on structural failure the error is a
// *ValidationError.
func Materialize(merged merge.Map, desc *Descriptor) (any, error) {
	target := desc.New()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("build decoder for model %q: %w", desc.Name, err)
	}

	if err := decoder.Decode(merged); err != nil {
		return nil, &ValidationError{Model: desc.Name, Issues: decodeIssues(err)}
	}

	if err := validate.Struct(target); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("validate model %q: %w", desc.Name, err)
		}
		return nil, &ValidationError{Model: desc.Name, Issues: fieldIssues(fieldErrs)}
	}

	return target, nil
}

func decodeIssues(err error) []Issue {
	issues := make([]Issue, 0, 4)
	for _, leaf := range leafErrors(err) {
		msg := leaf.Error()
		issues = append(issues, Issue{Path: quotedPath(msg), Reason: decodeReason(msg)})
	}
	sortIssues(issues)
	return issues
}

// leafErrors flattens the joined error tree the decoder returns, one leaf
// per failed field.
func leafErrors(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, child := range joined.Unwrap() {
		out = append(out, leafErrors(child)...)
	}
	return out
}

// decodeReason trims the raw input value out of a decode message. The
// trailing strconv/time detail and the "value: '...'" suffix both repeat the
// offending value, which may be secret-bearing.
func decodeReason(msg string) string {
	if idx := strings.Index(msg, ", value:"); idx >= 0 {
		msg = msg[:idx]
	}
	if idx := strings.Index(msg, ": strconv."); idx >= 0 {
		msg = msg[:idx]
	}
	if idx := strings.Index(msg, ": time: "); idx >= 0 {
		msg = msg[:idx]
	}
	return msg
}

// quotedPath pulls the field reference out of a mapstructure message, which
// leads with the quoted field name ('db.port' expected type ...).
func quotedPath(msg string) string {
	start := strings.IndexByte(msg, '\'')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(msg[start+1:], '\'')
	if end < 0 {
		return ""
	}
	return strings.ToLower(msg[start+1 : start+1+end])
}

func fieldIssues(fieldErrs validator.ValidationErrors) []Issue {
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{Path: fieldPath(fe.Namespace()), Reason: fieldReason(fe)})
	}
	sortIssues(issues)
	return issues
}

// fieldPath strips the root struct name from a validator namespace
// (AppSettings.db.host -> db.host).
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return strings.ToLower(namespace)
	}
	return strings.ToLower(rest)
}

// fieldReason names the failed rule without echoing the offending value,
// which may be secret-bearing.
func fieldReason(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("failed %q validation (param %q)", fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}

func sortIssues(issues []Issue) {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Reason < issues[j].Reason
	})
}
