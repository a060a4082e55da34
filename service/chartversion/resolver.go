// Package chartversion resolves the versions of a chart from the chart
// repository index and publishes the user's selection into form state.
package chartversion

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	"sigs.k8s.io/yaml"

	"github.com/giantswarm/app-console/pkg/formstate"
	"github.com/giantswarm/app-console/service/internal/helmapi"
)

// FieldSetter is the write side of the shared form state.
type FieldSetter interface {
	SetFieldValue(key string, value interface{})
}

type Config struct {
	Client helmapi.Interface
	Form   FieldSetter
	Logger micrologger.Logger
}

// Resolver holds the index data of a single chart. A Resolver belongs to one
// form and must be closed when the form goes away.
type Resolver struct {
	client helmapi.Interface
	form   FieldSetter
	logger micrologger.Logger

	mutex sync.Mutex
	// loadGeneration identifies the most recent Load. Index results of older
	// generations are discarded.
	loadGeneration uint64
	// selectGeneration identifies the most recent SelectVersion. Values
	// results of older generations are discarded.
	selectGeneration uint64
	closed           bool

	chartName string
	entries   []helmapi.Entry
	loaded    bool
	selected  string
	versions  map[string]string
}

func New(config Config) (*Resolver, error) {
	if config.Client == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Client must not be empty", config)
	}
	if config.Form == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Form must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	r := &Resolver{
		client: config.Client,
		form:   config.Form,
		logger: config.Logger,

		versions: map[string]string{},
	}

	return r, nil
}

// Load fetches the chart index and retains the entries of chartName. Fetch
// and parse failures are logged and leave the held data untouched. When
// another Load starts, or the resolver is closed, before this one finishes
// its result is dropped.
func (r *Resolver) Load(ctx context.Context, chartName string) {
	r.mutex.Lock()
	r.loadGeneration++
	generation := r.loadGeneration
	r.mutex.Unlock()

	index, err := r.client.GetIndex(ctx)
	if err != nil {
		r.logger.Debugf(ctx, "failed to get chart index for chart %#q: %s", chartName, err)
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed || generation != r.loadGeneration {
		r.logger.Debugf(ctx, "dropping stale chart index result for chart %#q", chartName)
		return
	}

	var entries []helmapi.Entry
	if index != nil {
		entries = index.Entries[chartName]
	}

	r.chartName = chartName
	r.entries = entries
	r.loaded = true
	r.versions = chartVersions(entries)

	r.logger.Debugf(ctx, "loaded %d versions for chart %#q", len(r.versions), chartName)
}

// SelectVersion publishes version and its artifact URL to the form state and
// then fetches the default values of the chart. Values fetch failures are
// logged and leave the published values untouched.
func (r *Resolver) SelectVersion(ctx context.Context, version string) error {
	r.mutex.Lock()
	entry, found := findEntry(r.entries, version)
	chartURL := artifactURL(entry)

	r.selected = version
	r.form.SetFieldValue(formstate.ChartVersion, version)
	r.form.SetFieldValue(formstate.HelmChartURL, chartURL)

	r.selectGeneration++
	generation := r.selectGeneration
	chartName := r.chartName
	r.mutex.Unlock()

	if !found {
		return microerror.Maskf(versionNotFoundError, "version %#q of chart %#q", version, chartName)
	}
	if chartURL == "" {
		r.logger.Debugf(ctx, "version %#q of chart %#q has no artifact URL", version, chartName)
		return nil
	}

	chart, err := r.client.GetChart(ctx, chartURL)
	if err != nil {
		r.logger.Errorf(ctx, err, "failed to get values for chart %#q", chartURL)
		return nil
	}

	var valuesYAML interface{} = formstate.Absent
	if chart != nil && len(chart.Values) > 0 {
		b, err := yaml.Marshal(chart.Values)
		if err != nil {
			r.logger.Errorf(ctx, err, "failed to serialize values for chart %#q", chartURL)
			return nil
		}

		valuesYAML = string(b)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed || generation != r.selectGeneration {
		r.logger.Debugf(ctx, "dropping stale values for chart %#q", chartURL)
		return nil
	}

	r.form.SetFieldValue(formstate.ChartValuesYAML, valuesYAML)

	return nil
}

// Close tears the resolver down. Results of requests still in flight are
// dropped.
func (r *Resolver) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.closed = true
	r.loadGeneration++
	r.selectGeneration++
}

func (r *Resolver) ChartName() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.chartName
}

// Loaded reports whether any Load has applied an index. It stays false while
// every index fetch failed.
func (r *Resolver) Loaded() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.loaded
}

// Entries returns the raw index entries of the loaded chart.
func (r *Resolver) Entries() []helmapi.Entry {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return append([]helmapi.Entry(nil), r.entries...)
}

// Selected returns the version passed to the last SelectVersion call.
func (r *Resolver) Selected() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.selected
}

// Versions maps every known version to its display label.
func (r *Resolver) Versions() map[string]string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	versions := make(map[string]string, len(r.versions))
	for k, v := range r.versions {
		versions[k] = v
	}

	return versions
}

// SortedVersions returns the known versions with the highest semver first.
// Versions that are not valid semver come last in lexical order.
func (r *Resolver) SortedVersions() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return sortVersions(r.versions)
}

func chartVersions(entries []helmapi.Entry) map[string]string {
	versions := make(map[string]string, len(entries))
	for _, e := range entries {
		versions[e.Version] = fmt.Sprintf("%s / App Version %s", e.Version, e.AppVersion)
	}

	return versions
}

func artifactURL(e helmapi.Entry) string {
	if len(e.Urls) == 0 {
		return ""
	}

	return e.Urls[0]
}

func findEntry(entries []helmapi.Entry, version string) (helmapi.Entry, bool) {
	for _, e := range entries {
		if e.Version == version {
			return e, true
		}
	}

	return helmapi.Entry{}, false
}

func sortVersions(versions map[string]string) []string {
	var valid []*semver.Version
	original := map[*semver.Version]string{}
	var invalid []string

	for v := range versions {
		sv, err := semver.NewVersion(v)
		if err != nil {
			invalid = append(invalid, v)
			continue
		}

		valid = append(valid, sv)
		original[sv] = v
	}

	sort.Slice(valid, func(i, j int) bool {
		if valid[i].Equal(valid[j]) {
			return original[valid[i]] < original[valid[j]]
		}

		return valid[i].GreaterThan(valid[j])
	})
	sort.Strings(invalid)

	sorted := make([]string, 0, len(versions))
	for _, sv := range valid {
		sorted = append(sorted, original[sv])
	}
	sorted = append(sorted, invalid...)

	return sorted
}
