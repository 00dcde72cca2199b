package samas

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Service annotates texts against a loaded dataset. The dataset and category mapping
// are never modified after construction, so a Service is safe for concurrent use.
type Service struct {
	cfg     Config
	source  string
	dataset *Dataset
	mapping CategoryMapping

	model  *Model
	status ModelStatus

	logger *log.Logger
}

// NewService constructs a service around an already loaded dataset.
func NewService(ds *Dataset, mapping CategoryMapping, cfg Config, logger *log.Logger) (*Service, error) {
	if ds.Len() == 0 {
		return nil, ErrNoRows
	}
	if mapping.Len() == 0 {
		mapping = DefaultCategoryMapping()
	}
	cfg.ApplyDefaults()
	s := &Service{
		cfg:     cfg,
		source:  cfg.Dataset,
		dataset: ds,
		mapping: mapping,
		status:  ModelStatus{Reason: ErrModelDisabled.Error()},
		logger:  logger,
	}
	if unknown := mapping.UnknownLabels(ds); len(unknown) > 0 {
		s.logf("Labels without a category name (shown as-is): %s", strings.Join(unknown, ", "))
	}
	return s, nil
}

// Open loads everything cfg points at: the dataset, the optional category override
// file and the optional model. Only the dataset is required.
func Open(ctx context.Context, cfg Config, logger *log.Logger) (*Service, error) {
	cfg.ApplyDefaults()
	if cfg.ColumnCandidates != nil {
		SetColumnCandidates(*cfg.ColumnCandidates)
	} else {
		SetColumnCandidates(ColumnCandidates{})
	}
	ds, err := LoadDataset(ctx, cfg.Dataset, DatasetOptions{Columns: cfg.Columns, S3: cfg.S3})
	if err != nil {
		return nil, err
	}
	mapping := DefaultCategoryMapping()
	if cfg.CategoriesPath != "" {
		mapping, err = LoadCategoryMapping(cfg.CategoriesPath)
		if err != nil {
			return nil, err
		}
	}
	s, err := NewService(ds, mapping, cfg, logger)
	if err != nil {
		return nil, loadErr(cfg.Dataset, err)
	}
	s.logf("Loaded %d compounds from %s", ds.Len(), DescribeSource(cfg.Dataset))
	s.AttachModel(LoadModel(cfg.Model))
	return s, nil
}

// AttachModel records the outcome of LoadModel. A load failure only marks the model
// as unavailable.
func (s *Service) AttachModel(m *Model, err error) {
	if err != nil {
		s.status = ModelStatus{Reason: err.Error()}
		if errors.Is(err, ErrModelDisabled) {
			return
		}
		s.logf("Model not loaded: %v", err)
		return
	}
	if m == nil {
		return
	}
	s.model = m
	s.status = ModelStatus{Available: true}
	s.logf("Model loaded: %s", m.Describe())
}

// Close releases model resources.
func (s *Service) Close() error {
	if s.model != nil {
		err := s.model.Close()
		s.model = nil
		return err
	}
	return nil
}

// Process recognizes compounds in text, expands them and lists their categories.
// Blank input returns ErrEmptyInput.
func (s *Service) Process(text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{Input: text}, ErrEmptyInput
	}
	start := time.Now()
	var (
		matched  []string
		expanded string
	)
	switch s.cfg.ExpandMode {
	case ExpandModeReplaceAll:
		matched = Match(Tokenize(text), s.dataset)
		expanded = Expand(text, matched, s.dataset)
	default:
		spans := MatchSpans(TokenSpans(text), s.dataset)
		matched = spanWords(spans)
		expanded = ExpandSpans(text, spans, s.dataset)
	}
	annotations := Annotate(matched, s.dataset, s.mapping)
	return Result{
		Input:       text,
		Expanded:    expanded,
		Compounds:   matched,
		Annotations: annotations,
		Elapsed:     time.Since(start),
	}, nil
}

// Lookup returns the dataset row for word.
func (s *Service) Lookup(word string) (DatasetRow, bool) {
	return s.dataset.Lookup(strings.TrimSpace(word))
}

// Dataset returns the loaded dataset.
func (s *Service) Dataset() *Dataset { return s.dataset }

// Mapping returns the category mapping in use.
func (s *Service) Mapping() CategoryMapping { return s.mapping }

// ModelStatus reports whether the optional model is loaded.
func (s *Service) ModelStatus() ModelStatus { return s.status }

// Config returns a copy of the configuration the service was built with.
func (s *Service) Config() Config { return s.cfg.Clone() }

// Summary describes the loaded state in one line.
func (s *Service) Summary() string {
	return fmt.Sprintf("%s: %d compounds, %d categories, model %s",
		DescribeSource(s.source), s.dataset.Len(), s.mapping.Len(), s.status)
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
