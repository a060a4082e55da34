// Package eventsource validates the values of the event source creation
// form.
package eventsource

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/giantswarm/microerror"
)

const (
	maxLength = 253

	maxLengthMessage = "Cannot be longer than 253 characters."
	nameMessage      = "Name must consist of lower-case letters, numbers and hyphens. It must start with a letter and end with a letter or number."
	requiredMessage  = "Required"
)

var nameRegexp = regexp.MustCompile(`^([a-z]([-a-z0-9]*[a-z0-9])?)*$`)

// FieldErrors maps the dotted path of a form field to its error message.
type FieldErrors map[string]string

// Valid reports whether no field failed validation.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Paths returns the failed field paths in sorted order.
func (e FieldErrors) Paths() []string {
	paths := make([]string, 0, len(e))
	for p := range e {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return paths
}

func (e FieldErrors) String() string {
	var lines []string
	for _, p := range e.Paths() {
		lines = append(lines, fmt.Sprintf("%s: %s", p, e[p]))
	}

	return strings.Join(lines, ", ")
}

// Validate evaluates all constraints against v. The result only depends on
// v, so switching the form type never keeps errors of the previous type.
func Validate(v FormValues) FieldErrors {
	errs := FieldErrors{}

	if msg := validateName(v.Project.Name); msg != "" {
		errs["project.name"] = msg
	}
	if v.Application.SelectedKey == CreateApplicationKey {
		if msg := validateName(v.Application.Name); msg != "" {
			errs["application.name"] = msg
		}
	}
	if msg := validateName(v.Name); msg != "" {
		errs["name"] = msg
	}
	if v.Sink.KnativeService == "" {
		errs["sink.knativeService"] = requiredMessage
	}

	if v.Data != nil {
		v.Data.validate(errs)
	}

	return errs
}

// ValidateForm returns a validationError describing every failed field.
func ValidateForm(v FormValues) error {
	errs := Validate(v)
	if !errs.Valid() {
		return microerror.Maskf(validationError, "%s", errs.String())
	}

	return nil
}

func (s *CronJobSource) validate(errs FieldErrors) {
	if msg := validateString(s.Data); msg != "" {
		errs["data.cronjobsource.data"] = msg
	}
	if msg := validateString(s.Schedule); msg != "" {
		errs["data.cronjobsource.schedule"] = msg
	}
}

func (s *SinkBinding) validate(errs FieldErrors) {
	if msg := validateString(s.Subject.APIVersion); msg != "" {
		errs["data.sinkbinding.subject.apiVersion"] = msg
	}
	if msg := validateString(s.Subject.Kind); msg != "" {
		errs["data.sinkbinding.subject.kind"] = msg
	}
}

func (s *OtherSource) validate(errs FieldErrors) {}

// validateString checks a required string of limited length. Length is
// counted in runes, so characters outside the Basic Multilingual Plane count
// once here while a browser counts them as two UTF-16 code units.
func validateString(s string) string {
	if s == "" {
		return requiredMessage
	}
	if utf8.RuneCountInString(s) > maxLength {
		return maxLengthMessage
	}

	return ""
}

// validateName checks a resource name. Names use the DNS-1035 label
// alphabet but are only limited by maxLength.
func validateName(s string) string {
	if msg := validateString(s); msg != "" {
		return msg
	}
	if !nameRegexp.MatchString(s) {
		return nameMessage
	}

	return ""
}
