package samas

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ExpandMode selects how recognized compounds are substituted in the input text.
type ExpandMode string

const (
	// ExpandModeSpans replaces exactly the recognized token positions of the input.
	ExpandModeSpans ExpandMode = "spans"
	// ExpandModeReplaceAll replaces every occurrence of each matched word, in match order,
	// against the progressively rewritten text.
	ExpandModeReplaceAll ExpandMode = "replace-all"
)

// DatasetRow is one known compound word and its decomposition.
type DatasetRow struct {
	Word    string `json:"word"`
	Sangna1 string `json:"sangna1"`
	Middle  string `json:"middle"`
	Sangna2 string `json:"sangna2"`
	Label   string `json:"label"`
}

// Meaning joins the three decomposition fragments with single spaces.
func (r DatasetRow) Meaning() string {
	return fmt.Sprintf("%s %s %s", r.Sangna1, r.Middle, r.Sangna2)
}

// Result holds the outputs of one processed text.
type Result struct {
	Input       string        `json:"-"`
	Expanded    string        `json:"expanded"`
	Compounds   []string      `json:"compounds"`
	Annotations []string      `json:"annotations"`
	Elapsed     time.Duration `json:"-"`
}

// Listing returns the annotation lines joined by newlines.
func (r Result) Listing() string {
	return strings.Join(r.Annotations, "\n")
}

// ElapsedSeconds formats the processing time in seconds with four decimals.
func (r Result) ElapsedSeconds() string {
	return fmt.Sprintf("%.4f", r.Elapsed.Seconds())
}

// ColumnConfig names explicit dataset columns. Empty fields fall back to auto-detection.
type ColumnConfig struct {
	Word    string `json:"word,omitempty"`
	Sangna1 string `json:"sangna1,omitempty"`
	Middle  string `json:"middle,omitempty"`
	Sangna2 string `json:"sangna2,omitempty"`
	Label   string `json:"label,omitempty"`
	Sheet   string `json:"sheet,omitempty"`
	Table   string `json:"table,omitempty"`
}

// ModelConfig points at the optional classifier artifact.
type ModelConfig struct {
	OrtDLL        string `json:"ortDll"`
	ModelPath     string `json:"modelPath"`
	TokenizerPath string `json:"tokenizerPath"`
}

// S3Config configures access to datasets stored in S3-compatible object storage.
type S3Config struct {
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint,omitempty"`
	PathStyle       bool   `json:"pathStyle,omitempty"`
	AccessKeyID     string `json:"accessKeyId,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty"`
}

// ServerConfig holds the HTTP front end settings.
type ServerConfig struct {
	Addr           string   `json:"addr"`
	AllowedOrigins []string `json:"allowedOrigins"`
}

// Config aggregates runtime settings persisted to config.json.
type Config struct {
	Dataset        string       `json:"dataset"`
	Columns        ColumnConfig `json:"columns"`
	CategoriesPath string       `json:"categoriesPath,omitempty"`
	ExpandMode     ExpandMode   `json:"expandMode"`
	Model          ModelConfig  `json:"model"`
	S3             S3Config     `json:"s3"`
	Server         ServerConfig `json:"server"`

	// ColumnCandidates replaces the header names tried by auto-detection.
	ColumnCandidates *ColumnCandidates `json:"columnCandidates,omitempty"`
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Dataset == "" {
		c.Dataset = "samas_hindi_dataset.xlsx"
	}
	switch c.ExpandMode {
	case ExpandModeSpans, ExpandModeReplaceAll:
	default:
		c.ExpandMode = ExpandModeSpans
	}
	if c.Model.ModelPath == "" {
		c.Model.ModelPath = "gbc_best_model_hindi.onnx"
	}
	if c.S3.Region == "" {
		c.S3.Region = "us-east-1"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.AllowedOrigins == nil {
		c.Server.AllowedOrigins = []string{"*"}
	}
}
