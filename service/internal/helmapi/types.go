package helmapi

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

type Index struct {
	APIVersion string             `json:"apiVersion"`
	Entries    map[string][]Entry `json:"entries"`
	Generated  string             `json:"generated"`
}

type Entry struct {
	AppVersion  string      `json:"appVersion"`
	Created     metav1.Time `json:"created"`
	Description string      `json:"description"`
	Name        string      `json:"name"`
	Urls        []string    `json:"urls"`
	Version     string      `json:"version"`
}

type Chart struct {
	Metadata *ChartMetadata         `json:"metadata,omitempty"`
	Values   map[string]interface{} `json:"values,omitempty"`
}

type ChartMetadata struct {
	AppVersion  string `json:"appVersion"`
	Description string `json:"description"`
	Name        string `json:"name"`
	Version     string `json:"version"`
}
