package eventsource

import (
	"encoding/json"

	"github.com/giantswarm/microerror"
)

// Type is the discriminant of the event source form. It selects which
// source specific fields are validated.
type Type string

const (
	APIServerSourceType Type = "ApiServerSource"
	CamelSourceType     Type = "CamelSource"
	CronJobSourceType   Type = "CronJobSource"
	KafkaSourceType     Type = "KafkaSource"
	SinkBindingType     Type = "SinkBinding"
)

// CreateApplicationKey is the application selection that asks for a new
// application to be created. Only then the application name is validated.
const CreateApplicationKey = "#CREATE_APPLICATION_KEY#"

// Types returns the known event source types.
func Types() []Type {
	return []Type{
		APIServerSourceType,
		CamelSourceType,
		CronJobSourceType,
		KafkaSourceType,
		SinkBindingType,
	}
}

type FormValues struct {
	Project     Project     `json:"project"`
	Application Application `json:"application"`
	Name        string      `json:"name"`
	Sink        Sink        `json:"sink"`
	// Data holds the source specific fields. Its concrete type always
	// matches the form type.
	Data Source `json:"-"`
}

type Project struct {
	Name string `json:"name"`
}

type Application struct {
	Name        string `json:"name"`
	SelectedKey string `json:"selectedKey"`
}

type Sink struct {
	KnativeService string `json:"knativeService"`
}

// Source is implemented by every event source variant.
type Source interface {
	Type() Type
	validate(errs FieldErrors)
}

type CronJobSource struct {
	Data     string `json:"data"`
	Schedule string `json:"schedule"`
}

func (s *CronJobSource) Type() Type {
	return CronJobSourceType
}

type SinkBinding struct {
	Subject SinkBindingSubject `json:"subject"`
}

func (s *SinkBinding) Type() Type {
	return SinkBindingType
}

type SinkBindingSubject struct {
	APIVersion string                  `json:"apiVersion"`
	Kind       string                  `json:"kind"`
	Selector   SinkBindingSubjectLabel `json:"selector"`
}

type SinkBindingSubjectLabel struct {
	MatchLabels map[string]string `json:"matchLabels,omitempty"`
}

// OtherSource is any source type without specific constraints.
type OtherSource struct {
	SourceType Type
}

func (s *OtherSource) Type() Type {
	return s.SourceType
}

// Type returns the discriminant of the form. Forms without data have an
// empty type.
func (v FormValues) Type() Type {
	if v.Data == nil {
		return ""
	}

	return v.Data.Type()
}

func (v *FormValues) UnmarshalJSON(b []byte) error {
	type plain FormValues

	var raw struct {
		plain
		Type Type `json:"type"`
		Data struct {
			CronJobSource *CronJobSource `json:"cronjobsource"`
			SinkBinding   *SinkBinding   `json:"sinkbinding"`
		} `json:"data"`
	}

	err := json.Unmarshal(b, &raw)
	if err != nil {
		return microerror.Maskf(decodeFailedError, "%s", err)
	}

	*v = FormValues(raw.plain)

	switch raw.Type {
	case CronJobSourceType:
		if raw.Data.CronJobSource == nil {
			raw.Data.CronJobSource = &CronJobSource{}
		}
		v.Data = raw.Data.CronJobSource
	case SinkBindingType:
		if raw.Data.SinkBinding == nil {
			raw.Data.SinkBinding = &SinkBinding{}
		}
		v.Data = raw.Data.SinkBinding
	default:
		v.Data = &OtherSource{SourceType: raw.Type}
	}

	return nil
}

func (v FormValues) MarshalJSON() ([]byte, error) {
	type plain FormValues

	out := struct {
		plain
		Type Type                   `json:"type"`
		Data map[string]interface{} `json:"data"`
	}{
		plain: plain(v),
		Type:  v.Type(),
		Data:  map[string]interface{}{},
	}

	switch s := v.Data.(type) {
	case *CronJobSource:
		out.Data["cronjobsource"] = s
	case *SinkBinding:
		out.Data["sinkbinding"] = s
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return b, nil
}
